// internal/places/mock.go
package places

import "github.com/48d31kh413k/NavixAI/internal/models"

// mockPlaces returns fixture data for a keyword, used when the places
// credential is absent or a search fails completely. Unrecognized keywords
// fall back to the restaurant set.
func mockPlaces(keyword string) []models.PlaceRecord {
	if set, ok := mockData[keyword]; ok {
		return clonePlaces(set)
	}
	return clonePlaces(mockData["restaurant"])
}

func clonePlaces(in []models.PlaceRecord) []models.PlaceRecord {
	out := make([]models.PlaceRecord, len(in))
	copy(out, in)
	return out
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

var mockData = map[string][]models.PlaceRecord{
	"restaurant": {
		{
			PlaceID:     "r1",
			Name:        "Gourmet Bistro",
			Vicinity:    "Downtown",
			Rating:      floatPtr(4.5),
			RatingCount: 120,
			Categories:  []string{"restaurant"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Gourmet+Bistro"},
			PriceLevel:  intPtr(3),
			Walking:     &models.TravelLeg{DurationText: "15 mins", DistanceText: "1.2 km"},
			Driving:     &models.TravelLeg{DurationText: "5 mins", DistanceText: "0.8 km"},
		},
		{
			PlaceID:     "r2",
			Name:        "Cozy Corner Diner",
			Vicinity:    "Main St",
			Rating:      floatPtr(4.2),
			RatingCount: 89,
			Categories:  []string{"restaurant"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Cozy+Corner+Diner"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "8 mins", DistanceText: "0.6 km"},
			Driving:     &models.TravelLeg{DurationText: "3 mins", DistanceText: "0.4 km"},
		},
	},
	"cafe": {
		{
			PlaceID:     "c1",
			Name:        "Artisan Coffee House",
			Vicinity:    "Arts District",
			Rating:      floatPtr(4.7),
			RatingCount: 203,
			Categories:  []string{"cafe"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Artisan+Coffee+House"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "12 mins", DistanceText: "0.9 km"},
			Driving:     &models.TravelLeg{DurationText: "4 mins", DistanceText: "0.6 km"},
		},
		{
			PlaceID:     "c2",
			Name:        "Morning Brew",
			Vicinity:    "Central Ave",
			Rating:      floatPtr(4.3),
			RatingCount: 156,
			Categories:  []string{"cafe"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Morning+Brew"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "6 mins", DistanceText: "0.4 km"},
			Driving:     &models.TravelLeg{DurationText: "2 mins", DistanceText: "0.3 km"},
		},
	},
	"museum": {
		{
			PlaceID:     "m1",
			Name:        "City Art Museum",
			Vicinity:    "Cultural District",
			Rating:      floatPtr(4.6),
			RatingCount: 340,
			Categories:  []string{"museum"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=City+Art+Museum"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "20 mins", DistanceText: "1.5 km"},
			Driving:     &models.TravelLeg{DurationText: "7 mins", DistanceText: "1.0 km"},
		},
		{
			PlaceID:     "m2",
			Name:        "Natural History Museum",
			Vicinity:    "University Area",
			Rating:      floatPtr(4.4),
			RatingCount: 267,
			Categories:  []string{"museum"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Natural+History+Museum"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "25 mins", DistanceText: "1.8 km"},
			Driving:     &models.TravelLeg{DurationText: "10 mins", DistanceText: "1.2 km"},
		},
	},
	"park": {
		{
			PlaceID:     "p1",
			Name:        "Riverside Park",
			Vicinity:    "River District",
			Rating:      floatPtr(4.5),
			RatingCount: 178,
			Categories:  []string{"park"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Riverside+Park"},
			PriceLevel:  intPtr(0),
			Walking:     &models.TravelLeg{DurationText: "18 mins", DistanceText: "1.3 km"},
			Driving:     &models.TravelLeg{DurationText: "6 mins", DistanceText: "0.9 km"},
		},
		{
			PlaceID:     "p2",
			Name:        "Central Gardens",
			Vicinity:    "City Center",
			Rating:      floatPtr(4.3),
			RatingCount: 234,
			Categories:  []string{"park"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Central+Gardens"},
			PriceLevel:  intPtr(0),
			Walking:     &models.TravelLeg{DurationText: "10 mins", DistanceText: "0.7 km"},
			Driving:     &models.TravelLeg{DurationText: "4 mins", DistanceText: "0.5 km"},
		},
	},
	"cinema": {
		{
			PlaceID:     "ci1",
			Name:        "Grand Theater",
			Vicinity:    "Entertainment District",
			Rating:      floatPtr(4.2),
			RatingCount: 145,
			Categories:  []string{"movie_theater"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Grand+Theater"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "22 mins", DistanceText: "1.6 km"},
			Driving:     &models.TravelLeg{DurationText: "8 mins", DistanceText: "1.1 km"},
		},
		{
			PlaceID:     "ci2",
			Name:        "Multiplex Cinema",
			Vicinity:    "Shopping Center",
			Rating:      floatPtr(4.0),
			RatingCount: 298,
			Categories:  []string{"movie_theater"},
			PhotoURLs:   []string{"https://via.placeholder.com/800x600/cccccc/666666?text=Multiplex+Cinema"},
			PriceLevel:  intPtr(2),
			Walking:     &models.TravelLeg{DurationText: "16 mins", DistanceText: "1.1 km"},
			Driving:     &models.TravelLeg{DurationText: "5 mins", DistanceText: "0.7 km"},
		},
	},
}
