// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/48d31kh413k/NavixAI/internal/activity"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/common/validation"
	"github.com/48d31kh413k/NavixAI/internal/models"
	"github.com/48d31kh413k/NavixAI/internal/preferences"
)

// WeatherSource is the handler-facing slice of the weather provider.
type WeatherSource interface {
	Current(ctx context.Context, coord models.Coordinate) (*models.WeatherSnapshot, error)
}

// SuggestionPipeline runs the full activity-suggestion flow.
type SuggestionPipeline interface {
	GetActivities(ctx context.Context, req activity.Request) (*models.AggregateResult, error)
}

// PlaceDetailsSource fetches the full record for one place.
type PlaceDetailsSource interface {
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// PreferenceStore persists and lists user place preferences.
type PreferenceStore interface {
	Upsert(ctx context.Context, in preferences.UpsertInput) (*models.PreferenceRecord, error)
	List(ctx context.Context, userID string) (*preferences.UserPreferences, error)
	Delete(ctx context.Context, userID, placeID string) error
}

// Handler binds the API routes to the domain components.
type Handler struct {
	weather  WeatherSource
	pipeline SuggestionPipeline
	places   PlaceDetailsSource
	prefs    PreferenceStore
	logger   logger.Logger
}

func NewHandler(weather WeatherSource, pipeline SuggestionPipeline, places PlaceDetailsSource, prefs PreferenceStore, log logger.Logger) *Handler {
	return &Handler{
		weather:  weather,
		pipeline: pipeline,
		places:   places,
		prefs:    prefs,
		logger:   log.With(map[string]interface{}{"component": "server"}),
	}
}

func errorResponse(c echo.Context, err error) error {
	return c.JSON(apperrors.HTTPStatus(err), map[string]string{
		"error": err.Error(),
	})
}

// Health answers the connectivity probe.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "API is running",
	})
}

type coordinateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// WeatherSuggestion returns the cached weather snapshot for a coordinate.
func (h *Handler) WeatherSuggestion(c echo.Context) error {
	var req coordinateRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, apperrors.NewBadRequestError("invalid JSON body"))
	}
	if req.Latitude == nil || req.Longitude == nil {
		return errorResponse(c, apperrors.NewBadRequestError("latitude and longitude are required"))
	}

	snapshot, err := h.weather.Current(c.Request().Context(), models.Coordinate{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		h.logger.Error("weather lookup failed", map[string]interface{}{"error": err.Error()})
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"weather": snapshot,
	})
}

// ActivitySuggestion runs the suggestion pipeline. The body is
// schema-validated before binding so type violations surface as 400s with a
// useful message instead of bind errors.
func (h *Handler) ActivitySuggestion(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorResponse(c, apperrors.NewBadRequestError("unreadable request body"))
	}

	if err := validation.ValidateSuggestionRequest(body); err != nil {
		return errorResponse(c, apperrors.NewBadRequestError(err.Error()))
	}

	var req activity.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return errorResponse(c, apperrors.NewBadRequestError("invalid JSON body"))
	}

	result, err := h.pipeline.GetActivities(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("activity suggestion failed", map[string]interface{}{"error": err.Error()})
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// PlaceDetails returns the full record for one place id.
func (h *Handler) PlaceDetails(c echo.Context) error {
	placeID := c.Param("place_id")
	if placeID == "" {
		return errorResponse(c, apperrors.NewBadRequestError("place_id is required"))
	}

	details, err := h.places.Details(c.Request().Context(), placeID)
	if err != nil {
		if !apperrors.IsCode(err, apperrors.ErrCodePlaceNotFound) {
			h.logger.Error("place details failed", map[string]interface{}{
				"place_id": placeID,
				"error":    err.Error(),
			})
		}
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, details)
}

// UpsertPreference records a like/dislike for a place.
func (h *Handler) UpsertPreference(c echo.Context) error {
	var in preferences.UpsertInput
	if err := c.Bind(&in); err != nil {
		return errorResponse(c, apperrors.NewBadRequestError("invalid JSON body"))
	}

	record, err := h.prefs.Upsert(c.Request().Context(), in)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, record)
}

// ListPreferences returns a user's liked and disliked places. The user id
// comes from the query string, defaulting to the anonymous user.
func (h *Handler) ListPreferences(c echo.Context) error {
	out, err := h.prefs.List(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// DeletePreference removes a user's preference for one place.
func (h *Handler) DeletePreference(c echo.Context) error {
	placeID := c.Param("place_id")
	if err := h.prefs.Delete(c.Request().Context(), c.QueryParam("user_id"), placeID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
