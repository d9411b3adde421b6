// internal/models/preference.go
package models

import "time"

const (
	PreferenceLike    = "like"
	PreferenceDislike = "dislike"
)

// PreferenceRecord is one like/dislike event for a place by a user.
type PreferenceRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	PlaceID      string    `json:"place_id"`
	PlaceName    string    `json:"place_name"`
	ActivityType string    `json:"activity_type"`
	Preference   string    `json:"preference"`
	Timestamp    time.Time `json:"timestamp"`
}
