// README: Travel request and itinerary aggregates for the generation pipeline.
package planner

import "time"

// Mode selects the experience framing for a generated itinerary.
type Mode string

const (
	ModeLuxury      Mode = "luxury"
	ModeBackpacking Mode = "backpacking"
)

// Pipeline limits. Parse, validation, and end-to-end attempts are counted
// independently; transport attempts live inside the model client.
const (
	MaxDays              = 4
	MaxParseRetries      = 3
	MaxValidationRetries = 3
	MaxGenerateAttempts  = 3
)

// DefaultImagePath is served when the photo collaborator has nothing for us.
const DefaultImagePath = "/default-destination.jpg"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Destination struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Description string       `json:"description,omitempty"`
	Timezone    string       `json:"timezone,omitempty"`
}

// TravelRoute is an optional origin→destination pair. A non-nil From triggers
// the stricter transportation-detail schema requirements.
type TravelRoute struct {
	From *Destination `json:"from"`
	To   Destination  `json:"to"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type TripPreferences struct {
	Interests           []string     `json:"interests"`
	Budget              string       `json:"budget"`
	BudgetPerDay        float64      `json:"budgetPerDay"`
	ActivityLevel       string       `json:"activityLevel"`
	DateRange           DateRange    `json:"dateRange"`
	TravelStyle         string       `json:"travelStyle"`
	GroupSize           int          `json:"groupSize"`
	Accommodation       []string     `json:"accommodation"`
	Transportation      []string     `json:"transportation"`
	Dining              []string     `json:"dining"`
	DietaryRestrictions []string     `json:"dietaryRestrictions"`
	SpecialInterests    []string     `json:"specialInterests"`
	CulturalImmersion   string       `json:"culturalImmersion"`
	PhotoOpportunities  bool         `json:"photoOpportunities"`
	NightlifePrefs      []string     `json:"nightlifePreferences"`
	TimeOfDay           []string     `json:"timeOfDay"`
	PacePreference      string       `json:"pacePreference"`
	RestDays            bool         `json:"restDays"`
	FitnessLevel        string       `json:"fitnessLevel"`
	Accessibility       []string     `json:"accessibility"`
	GuidePreference     string       `json:"guidePreference"`
	Language            []string     `json:"language"`
	WeatherPreference   string       `json:"weatherPreference"`
	ShoppingPrefs       []string     `json:"shoppingPreferences"`
	Route               *TravelRoute `json:"route,omitempty"`
}

// TravelRequest is the immutable input to one generation. Duration is the
// caller's hint; the date range is authoritative (see ActualDuration).
type TravelRequest struct {
	Destination Destination     `json:"destination"`
	Preferences TripPreferences `json:"preferences"`
	Duration    int             `json:"duration"`
	Mode        Mode            `json:"mode"`
}

// ActualDuration resolves the trip length in days from the date range,
// inclusive of both endpoints.
func (r TravelRequest) ActualDuration() int {
	start := r.Preferences.DateRange.Start
	end := r.Preferences.DateRange.End
	if end.Before(start) {
		return r.Duration
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// HasRoute reports whether the request carries an origin, which switches on
// the transportation-detail requirements.
func (r TravelRequest) HasRoute() bool {
	return r.Preferences.Route != nil && r.Preferences.Route.From != nil
}

type AccommodationOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"pricePerNight"`
	Amenities     []string `json:"amenities"`
	BookingURL    string   `json:"bookingUrl"`
	ImageURL      string   `json:"imageUrl"`
	Location      struct {
		Address     string      `json:"address"`
		Coordinates Coordinates `json:"coordinates"`
	} `json:"location"`
}

type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

type TransportService struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BookingURL  string     `json:"bookingUrl"`
	PriceRange  PriceRange `json:"priceRange"`
}

type TransportCost struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

type TransportInfo struct {
	TaxiServices    []TransportService `json:"taxiServices"`
	AverageCosts    []TransportCost    `json:"averageCosts"`
	PublicTransport struct {
		Available   bool     `json:"available"`
		Options     []string `json:"options"`
		DayPassCost float64  `json:"dayPassCost"`
	} `json:"publicTransport"`
}

type Meal struct {
	Time           string     `json:"time"`
	Venue          string     `json:"venue"`
	Description    string     `json:"description"`
	BookingURL     string     `json:"bookingUrl,omitempty"`
	PriceRange     PriceRange `json:"priceRange"`
	Cuisine        string     `json:"cuisine"`
	DietaryOptions []string   `json:"dietaryOptions"`
}

type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	StartTime   string `json:"startTime"`
	Location    struct {
		Name        string      `json:"name"`
		Coordinates Coordinates `json:"coordinates"`
	} `json:"location"`
	Cost             float64 `json:"cost"`
	BookingURL       string  `json:"bookingUrl,omitempty"`
	PhotoSpot        bool    `json:"photoSpot"`
	WeatherDependent bool    `json:"weatherDependent"`
	Intensity        string  `json:"intensity"`
}

// ItineraryDay is one calendar day of the plan. Date is stamped by the
// orchestrator as YYYY-MM-DD from the request's start date, not taken from
// the model.
type ItineraryDay struct {
	Day            int        `json:"day"`
	Date           string     `json:"date"`
	Activities     []Activity `json:"activities"`
	Meals          []Meal     `json:"meals"`
	Transportation []string   `json:"transportation"`
	PhotoSpots     []string   `json:"photoSpots"`
	TimeOfDay      string     `json:"timeOfDay"`
	Notes          []string   `json:"notes"`
}

type LocalCurrency struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	ExchangeRate float64 `json:"exchangeRate"`
}

type RecommendedDuration struct {
	Minimum int      `json:"minimum"`
	Maximum int      `json:"maximum"`
	Optimal int      `json:"optimal"`
	Note    string   `json:"note"`
	Factors []string `json:"factors"`
}

type SeasonalInfo struct {
	Weather           string `json:"weather"`
	BestTimeToVisit   string `json:"bestTimeToVisit"`
	PeakTouristSeason string `json:"peakTouristSeason"`
}

type CostBreakdown struct {
	TotalEstimatedCost float64 `json:"totalEstimatedCost"`
	Categories         struct {
		Accommodation  float64 `json:"accommodation"`
		Transportation float64 `json:"transportation"`
		Activities     float64 `json:"activities"`
		Meals          float64 `json:"meals"`
	} `json:"categories"`
}

type EssentialInfo struct {
	HealthAndSafety        string `json:"healthAndSafety"`
	VisaRequirements       string `json:"visaRequirements"`
	LocalEmergencyContacts string `json:"localEmergencyContacts"`
}

type TransportationRoute struct {
	Type       string   `json:"type"`
	Provider   string   `json:"provider"`
	Schedule   string   `json:"schedule"`
	Duration   string   `json:"duration"`
	Cost       float64  `json:"cost"`
	BookingURL string   `json:"bookingUrl"`
	Notes      []string `json:"notes"`
}

type TransportationHub struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location struct {
		Coordinates Coordinates `json:"coordinates"`
	} `json:"location"`
	TransportOptions []string `json:"transportOptions"`
	Facilities       []string `json:"facilities"`
	Distance         float64  `json:"distance"`
}

type TransportationDetails struct {
	Routes []TransportationRoute `json:"routes"`
	Hubs   []TransportationHub   `json:"hubs"`
}

// Itinerary is the validated, date-stamped result returned to callers. It is
// never mutated after assembly.
type Itinerary struct {
	Destination           Destination            `json:"destination"`
	Route                 *TravelRoute           `json:"route,omitempty"`
	Duration              int                    `json:"duration"`
	Preferences           TripPreferences        `json:"preferences"`
	Mode                  Mode                   `json:"mode"`
	RecommendedDuration   RecommendedDuration    `json:"recommendedDuration"`
	LocalCurrency         LocalCurrency          `json:"localCurrency"`
	AccommodationOptions  []AccommodationOption  `json:"accommodationOptions"`
	TransportInfo         TransportInfo          `json:"transportInfo"`
	Days                  []ItineraryDay         `json:"days"`
	TransportationDetails *TransportationDetails `json:"transportationDetails,omitempty"`
	EssentialInfo         EssentialInfo          `json:"essentialInfo"`
	SeasonalInfo          SeasonalInfo           `json:"seasonalInfo"`
	CostBreakdown         CostBreakdown          `json:"costBreakdown"`
}

// generatedPayload is the shape the model is asked to return, decoded after
// rule validation passes.
type generatedPayload struct {
	RecommendedDuration   RecommendedDuration    `json:"recommendedDuration"`
	LocalCurrency         LocalCurrency          `json:"localCurrency"`
	AccommodationOptions  []AccommodationOption  `json:"accommodationOptions"`
	TransportInfo         TransportInfo          `json:"transportInfo"`
	TransportationDetails *TransportationDetails `json:"transportationDetails"`
	Days                  []ItineraryDay         `json:"days"`
	EssentialInfo         EssentialInfo          `json:"essentialInfo"`
	SeasonalInfo          SeasonalInfo           `json:"seasonalInfo"`
	CostBreakdown         CostBreakdown          `json:"costBreakdown"`
	DailyBudgetSpent      float64                `json:"dailyBudgetSpent"`
}
