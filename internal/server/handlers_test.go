// internal/server/handlers_test.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/48d31kh413k/NavixAI/internal/activity"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/models"
	"github.com/48d31kh413k/NavixAI/internal/preferences"
)

type stubWeather struct {
	snapshot *models.WeatherSnapshot
	err      error
}

func (s *stubWeather) Current(_ context.Context, _ models.Coordinate) (*models.WeatherSnapshot, error) {
	return s.snapshot, s.err
}

type stubPipeline struct {
	result *models.AggregateResult
	err    error
	got    activity.Request
}

func (s *stubPipeline) GetActivities(_ context.Context, req activity.Request) (*models.AggregateResult, error) {
	s.got = req
	return s.result, s.err
}

type stubDetails struct {
	details *models.PlaceDetails
	err     error
}

func (s *stubDetails) Details(_ context.Context, _ string) (*models.PlaceDetails, error) {
	return s.details, s.err
}

type stubPrefs struct {
	record  *models.PreferenceRecord
	list    *preferences.UserPreferences
	err     error
	deleted []string
}

func (s *stubPrefs) Upsert(_ context.Context, _ preferences.UpsertInput) (*models.PreferenceRecord, error) {
	return s.record, s.err
}

func (s *stubPrefs) List(_ context.Context, _ string) (*preferences.UserPreferences, error) {
	return s.list, s.err
}

func (s *stubPrefs) Delete(_ context.Context, _, placeID string) error {
	s.deleted = append(s.deleted, placeID)
	return s.err
}

type testComponents struct {
	weather  *stubWeather
	pipeline *stubPipeline
	details  *stubDetails
	prefs    *stubPrefs
}

func newTestServer(t *testing.T) (*Server, *testComponents) {
	t.Helper()
	c := &testComponents{
		weather:  &stubWeather{snapshot: &models.WeatherSnapshot{ConditionCode: "Clear", LocationName: "Springfield"}},
		pipeline: &stubPipeline{result: &models.AggregateResult{Activities: []models.ActivityBundle{}}},
		details:  &stubDetails{details: &models.PlaceDetails{PlaceID: "p1", Name: "Alpha"}},
		prefs: &stubPrefs{
			record: &models.PreferenceRecord{ID: "id-1", PlaceID: "p1"},
			list:   &preferences.UserPreferences{Liked: []models.PreferenceRecord{}, Disliked: []models.PreferenceRecord{}},
		},
	}
	log := logger.NewNoOpLogger()
	h := NewHandler(c.weather, c.pipeline, c.details, c.prefs, log)
	return New(config.ServerConfig{Port: 0}, h, log), c
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/test", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestWeatherSuggestion(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/weather-suggestion", `{"latitude": 40.7, "longitude": -74.0}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Springfield")
}

func TestWeatherSuggestionMissingCoordinates(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/weather-suggestion", `{"latitude": 40.7}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, errorField(t, rec))
}

func TestActivitySuggestionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing longitude", `{"latitude": 40.7}`},
		{"latitude out of range", `{"latitude": 120, "longitude": 0}`},
		{"wrong type", `{"latitude": "40.7", "longitude": -74.0}`},
		{"max_activities too large", `{"latitude": 40.7, "longitude": -74.0, "max_activities": 50}`},
		{"not json", `latitude=40.7`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/activity-suggestion", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, errorField(t, rec))
		})
	}
}

func TestActivitySuggestionSuccess(t *testing.T) {
	srv, c := newTestServer(t)
	c.pipeline.result = &models.AggregateResult{
		Activities: []models.ActivityBundle{
			{Keyword: "cafe", DisplayName: "Cafe", TotalFound: 4, Places: []models.PlaceRecord{}},
		},
		Weather:  models.WeatherSnapshot{ConditionCode: "Clear"},
		Location: models.LocationMeta{City: "Springfield"},
	}

	body := `{"latitude": 40.7, "longitude": -74.0, "max_activities": 4, "activities": {"culinaryDelights": true}}`
	rec := doJSON(t, srv, http.MethodPost, "/api/activity-suggestion", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"activity_type":"cafe"`)

	require.NotNil(t, c.pipeline.got.Latitude)
	assert.InDelta(t, 40.7, *c.pipeline.got.Latitude, 0.001)
	assert.Equal(t, 4, c.pipeline.got.MaxActivities)
	assert.True(t, c.pipeline.got.Preferences.CulinaryDelights)
}

func TestActivitySuggestionPipelineError(t *testing.T) {
	srv, c := newTestServer(t)
	c.pipeline.result = nil
	c.pipeline.err = apperrors.NewUpstreamUnavailableError("weather", nil)

	rec := doJSON(t, srv, http.MethodPost, "/api/activity-suggestion", `{"latitude": 40.7, "longitude": -74.0}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, errorField(t, rec))
}

func TestPlaceDetails(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/place-details/p1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alpha")
}

func TestPlaceDetailsNotFound(t *testing.T) {
	srv, c := newTestServer(t)
	c.details.details = nil
	c.details.err = apperrors.NewPlaceNotFoundError("nope")

	rec := doJSON(t, srv, http.MethodGet, "/api/place-details/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertPreference(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/preferences", `{"place_id": "p1", "preference": "like"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "id-1")
}

func TestUpsertPreferenceInvalid(t *testing.T) {
	srv, c := newTestServer(t)
	c.prefs.record = nil
	c.prefs.err = apperrors.NewBadRequestError("preference must be 'like' or 'dislike'")

	rec := doJSON(t, srv, http.MethodPost, "/api/preferences", `{"place_id": "p1", "preference": "love"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPreferences(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/preferences?user_id=u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "liked_places")
}

func TestDeletePreference(t *testing.T) {
	srv, c := newTestServer(t)

	rec := doJSON(t, srv, http.MethodDelete, "/api/preferences/p1?user_id=u1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"p1"}, c.prefs.deleted)
}
