package planner

import (
	"fmt"
	"strings"
	"time"
)

// BuildPrompt renders the full instruction string for one generation request.
// It is a pure function of the request: identical requests yield identical
// prompts, which also keeps the cache key honest.
func BuildPrompt(req TravelRequest) string {
	prefs := req.Preferences
	start := prefs.DateRange.Start
	end := prefs.DateRange.End
	duration := req.ActualDuration()

	var b strings.Builder

	fmt.Fprintf(&b,
		"You are a travel itinerary planning assistant. Your task is to create a detailed %d-day itinerary for %s, %s from %s to %s during %s season.\n",
		duration, req.Destination.Name, req.Destination.Country,
		formatDetailedDate(start), formatDetailedDate(end), season(start))

	if framing := budgetFraming(req.Mode, prefs.Budget); framing != "" {
		b.WriteString(framing + "\n")
	}
	if req.HasRoute() {
		b.WriteString(routePrompt(*prefs.Route))
	}

	b.WriteString(`
Please follow these strict guidelines:
1. Provide output in valid JSON format only
2. No markdown code blocks or decorators
3. No comments or explanatory text
4. Use double quotes for all strings
5. Include all required fields
6. Ensure all arrays have at least one item
7. Use consistent date formats (ISO 8601)
8. All numerical values should be actual numbers, not strings
9. All URLs should be valid https:// URLs
10. All coordinates should be valid numbers within range
`)

	if req.HasRoute() {
		b.WriteString(`
If a route is specified, include detailed transportation information in the response, including:
- Schedule details for transportation options
- Connection information at major hubs
- Local transfer options at both origin and destination
- Cost breakdown for each transportation mode
`)
	}

	fmt.Fprintf(&b, `
Travel Parameters:
- Style: %s travel for %d person(s)
- Budget Preference: %s
- Activity Level: %s
- Interests: %s
- Dietary: %s
- Languages: %s
- Preferred Times: %s
- Pace: %s
- Cultural Immersion: %s
- Fitness Level: %s
- Guide Need: %s
`,
		prefs.TravelStyle, prefs.GroupSize, prefs.Budget, prefs.ActivityLevel,
		joinList(prefs.SpecialInterests), joinOrNone(prefs.DietaryRestrictions),
		joinList(prefs.Language), joinList(prefs.TimeOfDay),
		prefs.PacePreference, prefs.CulturalImmersion, prefs.FitnessLevel,
		prefs.GuidePreference)
	if prefs.PhotoOpportunities {
		b.WriteString("- Include photo spots\n")
	}
	if prefs.RestDays {
		b.WriteString("- Include rest periods\n")
	}

	fmt.Fprintf(&b, `
Key Preferences:
- Accommodation: %s
- Dining: %s
- Transportation: %s
- Weather: %s
- Shopping: %s
- Nightlife: %s
`,
		joinList(prefs.Accommodation), joinList(prefs.Dining),
		joinList(prefs.Transportation), prefs.WeatherPreference,
		joinList(prefs.ShoppingPrefs), joinList(prefs.NightlifePrefs))
	if len(prefs.Accessibility) > 0 {
		fmt.Fprintf(&b, "- Accessibility: %s\n", joinList(prefs.Accessibility))
	}

	fmt.Fprintf(&b, `
Please consider the following temporal factors:
- Time of year: %s
- Season: %s
- Day of week start: %s
- Day of week end: %s

Travel Dates: %s to %s
`,
		start.Format("January"), season(start),
		start.Format("Monday"), end.Format("Monday"),
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	fmt.Fprintf(&b, `
Key Requirements:
1. Focus on %s experiences
2. Include specific venues and locations
3. Provide transportation options
4. Include photo opportunities
5. Consider weather and seasonal factors
6. Account for local customs
7. Include meal recommendations
8. Provide local currency pricing
9. Must include at least 3 accommodation recommendations
`, experienceType(req.Mode))
	if prefs.RestDays {
		b.WriteString("10. Balance activities with rest\n")
	}
	if prefs.PhotoOpportunities {
		b.WriteString("11. Highlight photography spots\n")
	}

	b.WriteString("\nRequired JSON Structure:\n{\n")
	if req.HasRoute() {
		b.WriteString(transportationDetailsSchema)
	}
	b.WriteString(itinerarySchema)
	b.WriteString("}\n")

	b.WriteString("\nRespond with only the JSON data structure. No additional text, comments, or markdown.\n")

	return b.String()
}

// budgetFraming adapts the budget instruction to the experience mode.
func budgetFraming(mode Mode, budget string) string {
	if mode == ModeLuxury {
		switch budget {
		case "luxury", "ultra-luxury":
			return "Set a high budget barrier to include premium accommodations and exclusive activities."
		case "moderate":
			return "Set a medium budget barrier to balance comfort with cost-effective options."
		case "budget":
			return "Set a low budget barrier to prioritize essential experiences over luxury."
		}
		return ""
	}
	switch budget {
	case "luxury", "ultra-luxury":
		return "Set a high budget barrier to include quality accommodations while maintaining affordability."
	case "moderate":
		return "Set a medium budget barrier to balance between cost and experience."
	case "budget":
		return "Set a low budget barrier to maximize affordability with basic accommodations and activities."
	}
	return ""
}

func experienceType(mode Mode) string {
	if mode == ModeBackpacking {
		return "authentic and budget-friendly"
	}
	return "premium and exclusive"
}

func routePrompt(route TravelRoute) string {
	if route.From == nil {
		return ""
	}
	return fmt.Sprintf(`
Transportation Between Cities:
1. Consider transportation options from %s to %s
2. Include the following details:
   - Available modes of transportation (air, rail, road, sea)
   - Approximate travel times for each mode
   - Cost ranges for each option
   - Major transportation hubs (airports, train stations, bus terminals)
   - Recommended routes and carriers
   - Seasonal considerations for travel between these cities
3. For each transportation mode, provide:
   - Schedule frequency
   - Comfort level
   - Booking recommendations
   - Required documentation
4. Include nearby stations and transportation hubs:
   - Major airports within 100km
   - Main train stations
   - Bus terminals
   - Port facilities if applicable
5. Consider factors like:
   - Peak vs. off-peak pricing
   - Baggage restrictions
   - Transfer requirements
   - Visa/immigration considerations for transit
`, route.From.Name, route.To.Name)
}

func season(t time.Time) string {
	switch m := int(t.Month()); {
	case m >= 3 && m <= 5:
		return "Spring"
	case m >= 6 && m <= 8:
		return "Summer"
	case m >= 9 && m <= 11:
		return "Autumn"
	default:
		return "Winter"
	}
}

func formatDetailedDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

const transportationDetailsSchema = `  "transportationDetails": {
    "routes": [
      {
        "type": string,
        "provider": string,
        "schedule": string,
        "duration": string,
        "cost": number,
        "bookingUrl": string,
        "notes": string[]
      }
    ],
    "hubs": [
      {
        "name": string,
        "type": string,
        "location": {
          "coordinates": {
            "lat": number,
            "lng": number
          }
        },
        "transportOptions": string[],
        "facilities": string[],
        "distance": number
      }
    ]
  },
`

const itinerarySchema = `  "recommendedDuration": {
    "minimum": number,
    "maximum": number,
    "optimal": number,
    "note": string,
    "factors": string[]
  },
  "localCurrency": {
    "code": string,
    "symbol": string,
    "exchangeRate": number
  },
  "accommodationOptions": [
    {
      "id": string,
      "name": string,
      "description": string,
      "pricePerNight": number,
      "amenities": string[],
      "bookingUrl": string,
      "imageUrl": string,
      "location": {
        "address": string,
        "coordinates": {
          "lat": number,
          "lng": number
        }
      }
    }
  ],
  "transportInfo": {
    "taxiServices": [
      {
        "name": string,
        "description": string,
        "bookingUrl": string,
        "priceRange": {
          "min": number,
          "max": number,
          "currency": string
        }
      }
    ],
    "averageCosts": [
      {
        "type": string,
        "amount": number,
        "notes": string
      }
    ],
    "publicTransport": {
      "available": boolean,
      "options": string[],
      "dayPassCost": number
    }
  },
  "days": [
    {
      "day": number,
      "date": string,
      "activities": [
        {
          "name": string,
          "description": string,
          "duration": string,
          "startTime": string,
          "location": {
            "name": string,
            "coordinates": {
              "lat": number,
              "lng": number
            }
          },
          "cost": number,
          "bookingUrl": string,
          "photoSpot": boolean,
          "weatherDependent": boolean,
          "intensity": string
        }
      ],
      "meals": [
        {
          "time": string,
          "venue": string,
          "description": string,
          "bookingUrl": string,
          "priceRange": {
            "min": number,
            "max": number,
            "currency": string
          },
          "cuisine": string,
          "dietaryOptions": string[]
        }
      ],
      "transportation": string[],
      "photoSpots": string[],
      "timeOfDay": string,
      "notes": string[]
    }
  ],
  "essentialInfo": {
    "healthAndSafety": string,
    "visaRequirements": string,
    "localEmergencyContacts": string
  },
  "seasonalInfo": {
    "weather": string,
    "bestTimeToVisit": string,
    "peakTouristSeason": string
  },
  "costBreakdown": {
    "totalEstimatedCost": number,
    "categories": {
      "accommodation": number,
      "transportation": number,
      "activities": number,
      "meals": number
    }
  },
  "dailyBudgetSpent": number
`
