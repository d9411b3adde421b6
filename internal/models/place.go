// internal/models/place.go
package models

// TravelLeg is one human-readable travel estimate between the user and a
// place.
type TravelLeg struct {
	DurationText string `json:"duration_text"`
	DistanceText string `json:"distance_text"`
}

// PlaceRecord is the normalized view of one place returned by the search
// client. PlaceID is the dedup key across search strategies.
type PlaceRecord struct {
	PlaceID     string      `json:"place_id"`
	Name        string      `json:"name"`
	Vicinity    string      `json:"vicinity"`
	Rating      *float64    `json:"rating,omitempty"`
	RatingCount int         `json:"user_ratings_total"`
	Categories  []string    `json:"types"`
	PhotoURLs   []string    `json:"photos"`
	PriceLevel  *int        `json:"price_level,omitempty"`
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Walking     *TravelLeg  `json:"walking,omitempty"`
	Driving     *TravelLeg  `json:"driving,omitempty"`
}

// PlaceReview is one user review attached to a place-details lookup.
type PlaceReview struct {
	AuthorName              string  `json:"author_name"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	Time                    int64   `json:"time"`
	RelativeTimeDescription string  `json:"relative_time_description"`
}

// PlaceOpeningHours is the schedule block of a place-details lookup.
type PlaceOpeningHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

// PlaceDetails is the full record served by the place-details endpoint.
type PlaceDetails struct {
	PlaceID                  string             `json:"place_id"`
	Name                     string             `json:"name"`
	Vicinity                 string             `json:"vicinity"`
	FormattedAddress         string             `json:"formatted_address"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number"`
	InternationalPhoneNumber string             `json:"international_phone_number"`
	Website                  string             `json:"website"`
	URL                      string             `json:"url"`
	Rating                   *float64           `json:"rating,omitempty"`
	RatingCount              int                `json:"user_ratings_total"`
	PriceLevel               *int               `json:"price_level,omitempty"`
	OpeningHours             *PlaceOpeningHours `json:"opening_hours,omitempty"`
	PhotoURLs                []string           `json:"photos"`
	Reviews                  []PlaceReview      `json:"reviews"`
}
