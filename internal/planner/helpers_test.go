package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

// validPayloadJSON builds a schema-complete model response for the given
// number of days.
func validPayloadJSON(days int) string {
	var dayEntries []string
	for d := 1; d <= days; d++ {
		dayEntries = append(dayEntries, fmt.Sprintf(`{
			"day": %d,
			"date": "2025-01-0%d",
			"activities": [
				{
					"name": "Morning temple walk",
					"description": "Guided walk through the old town",
					"duration": "2 hours",
					"startTime": "09:00",
					"location": {"name": "Old Town", "coordinates": {"lat": 35.0116, "lng": 135.7681}},
					"cost": 20,
					"bookingUrl": "https://example.com/book",
					"photoSpot": true,
					"weatherDependent": false,
					"intensity": "low"
				}
			],
			"meals": [
				{
					"time": "12:30",
					"venue": "Noodle House",
					"description": "Local lunch",
					"bookingUrl": "https://example.com/noodles",
					"priceRange": {"min": 10, "max": 25, "currency": "JPY"},
					"cuisine": "Japanese",
					"dietaryOptions": ["vegetarian"]
				}
			],
			"transportation": ["metro"],
			"photoSpots": ["river bank"],
			"timeOfDay": "morning",
			"notes": ["arrive early"]
		}`, d, d))
	}

	accommodation := `{
		"id": "a%d",
		"name": "Hotel %d",
		"description": "Comfortable stay",
		"pricePerNight": 180,
		"amenities": ["wifi"],
		"bookingUrl": "https://example.com/hotel",
		"imageUrl": "https://example.com/hotel.jpg",
		"location": {"address": "1 Main St", "coordinates": {"lat": 35.0, "lng": 135.7}}
	}`
	var accommodations []string
	for i := 1; i <= 3; i++ {
		accommodations = append(accommodations, fmt.Sprintf(accommodation, i, i))
	}

	return fmt.Sprintf(`{
		"recommendedDuration": {"minimum": 2, "maximum": 4, "optimal": 3, "note": "spring is ideal", "factors": ["weather"]},
		"localCurrency": {"code": "JPY", "symbol": "¥", "exchangeRate": 150.5},
		"accommodationOptions": [%s],
		"transportInfo": {
			"taxiServices": [{"name": "City Taxi", "description": "24h", "bookingUrl": "https://example.com/taxi", "priceRange": {"min": 5, "max": 40, "currency": "JPY"}}],
			"averageCosts": [{"type": "metro", "amount": 2.5, "notes": "per ride"}],
			"publicTransport": {"available": true, "options": ["metro", "bus"], "dayPassCost": 8}
		},
		"days": [%s],
		"essentialInfo": {"healthAndSafety": "tap water is safe", "visaRequirements": "visa-free 90 days", "localEmergencyContacts": "110 police, 119 ambulance"},
		"seasonalInfo": {"weather": "mild", "bestTimeToVisit": "spring", "peakTouristSeason": "April"},
		"costBreakdown": {"totalEstimatedCost": 1500, "categories": {"accommodation": 600, "transportation": 200, "activities": 400, "meals": 300}},
		"dailyBudgetSpent": 120
	}`, strings.Join(accommodations, ","), strings.Join(dayEntries, ","))
}

// validCandidate parses validPayloadJSON into a Candidate for mutation in
// validator tests.
func validCandidate(t *testing.T, days int) Candidate {
	t.Helper()
	var c Candidate
	if err := json.Unmarshal([]byte(validPayloadJSON(days)), &c); err != nil {
		t.Fatalf("fixture payload does not parse: %v", err)
	}
	return c
}

func kyotoRequest(days int) TravelRequest {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return TravelRequest{
		Destination: Destination{Name: "Kyoto", Country: "Japan"},
		Preferences: TripPreferences{
			Budget:         "moderate",
			ActivityLevel:  "moderate",
			TravelStyle:    "solo",
			GroupSize:      1,
			PacePreference: "balanced",
			DateRange: DateRange{
				Start: start,
				End:   start.AddDate(0, 0, days-1),
			},
		},
		Duration: days,
		Mode:     ModeLuxury,
	}
}
