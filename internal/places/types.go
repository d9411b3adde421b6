// internal/places/types.go
package places

// Wire types for the places provider's nearby-search and details responses.
// Only the consumed fields are modelled.

type searchResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Photos           []photo  `json:"photos,omitempty"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location *location `json:"location,omitempty"`
}

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type photo struct {
	Height         int    `json:"height"`
	Width          int    `json:"width"`
	PhotoReference string `json:"photo_reference"`
}

type detailsResponse struct {
	Result *detailsResult `json:"result,omitempty"`
	Status string         `json:"status"`
}

type detailsResult struct {
	PlaceID                  string        `json:"place_id"`
	Name                     string        `json:"name"`
	Vicinity                 string        `json:"vicinity"`
	FormattedAddress         string        `json:"formatted_address"`
	FormattedPhoneNumber     string        `json:"formatted_phone_number"`
	InternationalPhoneNumber string        `json:"international_phone_number"`
	Website                  string        `json:"website"`
	URL                      string        `json:"url"`
	Rating                   *float64      `json:"rating,omitempty"`
	UserRatingsTotal         int           `json:"user_ratings_total"`
	PriceLevel               *int          `json:"price_level,omitempty"`
	OpeningHours             *openingHours `json:"opening_hours,omitempty"`
	Photos                   []photo       `json:"photos,omitempty"`
	Reviews                  []review      `json:"reviews,omitempty"`
}

type openingHours struct {
	OpenNow     bool     `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

type review struct {
	AuthorName              string  `json:"author_name"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	Time                    int64   `json:"time"`
	RelativeTimeDescription string  `json:"relative_time_description"`
}
