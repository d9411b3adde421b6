// internal/preferences/store.go
package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/48d31kh413k/NavixAI/internal/common/cache"
	"github.com/48d31kh413k/NavixAI/internal/common/config"
	apperrors "github.com/48d31kh413k/NavixAI/internal/common/errors"
	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

// maxHistoryEntries caps the per-user history list; older entries fall off
// the tail.
const maxHistoryEntries = 100

// Store persists user place preferences in the cache backend: one record per
// (user, place) plus a per-user history list deduplicated by place.
type Store struct {
	cacheCfg config.CacheConfig
	cache    cache.Store
	logger   logger.Logger
}

func NewStore(cacheCfg config.CacheConfig, store cache.Store, log logger.Logger) *Store {
	return &Store{
		cacheCfg: cacheCfg,
		cache:    store,
		logger:   log.With(map[string]interface{}{"component": "preferences"}),
	}
}

// UpsertInput is the inbound payload for recording a preference.
type UpsertInput struct {
	UserID       string `json:"user_id"`
	PlaceID      string `json:"place_id"`
	PlaceName    string `json:"place_name"`
	ActivityType string `json:"activity_type"`
	Preference   string `json:"preference"`
}

func prefKey(userID, placeID string) string {
	return fmt.Sprintf("user_pref_%s_%s", userID, placeID)
}

func historyKey(userID string) string {
	return fmt.Sprintf("user_history_%s", userID)
}

// Upsert records one like/dislike. A repeated preference for the same place
// overwrites the previous one, both in the per-place record and in the
// history list.
func (s *Store) Upsert(ctx context.Context, in UpsertInput) (*models.PreferenceRecord, error) {
	if in.PlaceID == "" {
		return nil, apperrors.NewBadRequestError("place_id is required")
	}
	if in.Preference != models.PreferenceLike && in.Preference != models.PreferenceDislike {
		return nil, apperrors.NewBadRequestError("preference must be 'like' or 'dislike'")
	}
	if in.UserID == "" {
		in.UserID = "anonymous"
	}

	record := &models.PreferenceRecord{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		PlaceID:      in.PlaceID,
		PlaceName:    in.PlaceName,
		ActivityType: in.ActivityType,
		Preference:   in.Preference,
		Timestamp:    time.Now().UTC(),
	}

	ttl := s.cacheCfg.PreferenceTTLDuration()
	if err := s.cache.Set(ctx, prefKey(in.UserID, in.PlaceID), record, ttl); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	history, err := s.loadHistory(ctx, in.UserID)
	if err != nil {
		s.logger.Warn("history read failed, starting fresh", map[string]interface{}{
			"user_id": in.UserID,
			"error":   err.Error(),
		})
		history = nil
	}

	// Newest first, deduplicated by place.
	updated := []models.PreferenceRecord{*record}
	for _, h := range history {
		if h.PlaceID == in.PlaceID {
			continue
		}
		updated = append(updated, h)
	}
	if len(updated) > maxHistoryEntries {
		updated = updated[:maxHistoryEntries]
	}

	if err := s.cache.Set(ctx, historyKey(in.UserID), updated, ttl); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("preference recorded", map[string]interface{}{
		"user_id":    in.UserID,
		"place_id":   in.PlaceID,
		"preference": in.Preference,
	})
	return record, nil
}

// UserPreferences splits a user's history into liked and disliked places.
type UserPreferences struct {
	Liked    []models.PreferenceRecord `json:"liked_places"`
	Disliked []models.PreferenceRecord `json:"disliked_places"`
}

// List returns the user's recorded preferences, newest first.
func (s *Store) List(ctx context.Context, userID string) (*UserPreferences, error) {
	if userID == "" {
		userID = "anonymous"
	}

	history, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	out := &UserPreferences{
		Liked:    []models.PreferenceRecord{},
		Disliked: []models.PreferenceRecord{},
	}
	for _, h := range history {
		switch h.Preference {
		case models.PreferenceLike:
			out.Liked = append(out.Liked, h)
		case models.PreferenceDislike:
			out.Disliked = append(out.Disliked, h)
		}
	}
	return out, nil
}

// Delete removes a user's preference for one place, from both the per-place
// record and the history list. Deleting an absent preference is not an error.
func (s *Store) Delete(ctx context.Context, userID, placeID string) error {
	if placeID == "" {
		return apperrors.NewBadRequestError("place_id is required")
	}
	if userID == "" {
		userID = "anonymous"
	}

	if err := s.cache.Delete(ctx, prefKey(userID, placeID)); err != nil {
		return apperrors.NewInternalError(err)
	}

	history, err := s.loadHistory(ctx, userID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	var updated []models.PreferenceRecord
	for _, h := range history {
		if h.PlaceID == placeID {
			continue
		}
		updated = append(updated, h)
	}

	if len(updated) == len(history) {
		return nil
	}

	if err := s.cache.Set(ctx, historyKey(userID), updated, s.cacheCfg.PreferenceTTLDuration()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (s *Store) loadHistory(ctx context.Context, userID string) ([]models.PreferenceRecord, error) {
	raw, ok, err := s.cache.Get(ctx, historyKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var history []models.PreferenceRecord
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, err
	}
	return history, nil
}
