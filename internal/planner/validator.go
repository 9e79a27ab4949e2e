package planner

import (
	"fmt"
	"regexp"
)

// RuleError names the first schema rule a candidate failed. The orchestrator
// logs it and decides whether to re-invoke the model.
type RuleError struct {
	Rule   string
	Detail string
}

func (e *RuleError) Error() string {
	if e.Detail == "" {
		return "itinerary rejected: " + e.Rule
	}
	return fmt.Sprintf("itinerary rejected: %s (%s)", e.Rule, e.Detail)
}

var startTimeRe = regexp.MustCompile(`^(?:[0-9]|[01]\d|2[0-3]):[0-5]\d$`)

var requiredFields = []string{
	"recommendedDuration",
	"localCurrency",
	"accommodationOptions",
	"transportInfo",
	"days",
	"essentialInfo",
	"seasonalInfo",
	"costBreakdown",
	"dailyBudgetSpent",
}

// Validate checks a parsed candidate against the itinerary contract. It never
// panics on missing or mistyped fields; any violation degrades to a RuleError.
// hasRoute adds the transportation-detail requirements for requests that
// carried an origin.
func Validate(c Candidate, hasRoute bool) error {
	if c == nil {
		return &RuleError{Rule: "empty-candidate"}
	}

	required := requiredFields
	if hasRoute {
		required = append(append([]string{}, required...), "transportationDetails")
	}
	for _, field := range required {
		if _, ok := c[field]; !ok {
			return &RuleError{Rule: "required-field", Detail: field}
		}
	}

	days, ok := asSlice(c["days"])
	if !ok || len(days) == 0 {
		return &RuleError{Rule: "days", Detail: "must be a non-empty array"}
	}
	if len(days) > MaxDays {
		return &RuleError{Rule: "days", Detail: fmt.Sprintf("%d days exceeds maximum of %d", len(days), MaxDays)}
	}

	for i, rawDay := range days {
		if err := validateDay(i, rawDay); err != nil {
			return err
		}
	}

	if err := validateCurrency(c["localCurrency"]); err != nil {
		return err
	}
	if err := validateCostBreakdown(c["costBreakdown"]); err != nil {
		return err
	}

	accommodations, ok := asSlice(c["accommodationOptions"])
	if !ok || len(accommodations) < 3 {
		return &RuleError{Rule: "accommodationOptions", Detail: "need at least 3 options"}
	}

	if budget, ok := asNumber(c["dailyBudgetSpent"]); !ok || budget <= 0 {
		return &RuleError{Rule: "dailyBudgetSpent", Detail: "must be a positive number"}
	}

	if hasRoute {
		if err := validateTransportationDetails(c["transportationDetails"]); err != nil {
			return err
		}
	}

	return nil
}

func validateDay(i int, raw any) error {
	day, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "day", Detail: fmt.Sprintf("days[%d] is not an object", i)}
	}
	if n, ok := asNumber(day["day"]); !ok || n < 1 || n != float64(int(n)) {
		return &RuleError{Rule: "day", Detail: fmt.Sprintf("days[%d].day must be a positive integer", i)}
	}
	if s, ok := asString(day["date"]); !ok || s == "" {
		return &RuleError{Rule: "day", Detail: fmt.Sprintf("days[%d].date missing", i)}
	}

	activities, ok := asSlice(day["activities"])
	if !ok || len(activities) == 0 {
		return &RuleError{Rule: "activities", Detail: fmt.Sprintf("days[%d] needs at least one activity", i)}
	}
	for j, rawAct := range activities {
		if err := validateActivity(i, j, rawAct); err != nil {
			return err
		}
	}

	if rawMeals, ok := day["meals"]; ok {
		if meals, ok := asSlice(rawMeals); ok {
			for j, rawMeal := range meals {
				if err := validateMeal(i, j, rawMeal); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateActivity(i, j int, raw any) error {
	where := fmt.Sprintf("days[%d].activities[%d]", i, j)
	act, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "activity", Detail: where + " is not an object"}
	}
	if s, ok := asString(act["name"]); !ok || s == "" {
		return &RuleError{Rule: "activity", Detail: where + ".name missing"}
	}
	if s, ok := asString(act["duration"]); !ok || s == "" {
		return &RuleError{Rule: "activity", Detail: where + ".duration missing"}
	}
	loc, ok := asMap(act["location"])
	if !ok {
		return &RuleError{Rule: "activity", Detail: where + ".location missing"}
	}
	if err := validateCoordinates(loc["coordinates"], where+".location"); err != nil {
		return err
	}
	if s, ok := asString(act["startTime"]); !ok || !startTimeRe.MatchString(s) {
		return &RuleError{Rule: "activity", Detail: where + ".startTime must be 24-hour HH:MM"}
	}
	if _, ok := asNumber(act["cost"]); !ok {
		return &RuleError{Rule: "activity", Detail: where + ".cost must be a number"}
	}
	if _, ok := asBool(act["photoSpot"]); !ok {
		return &RuleError{Rule: "activity", Detail: where + ".photoSpot must be a boolean"}
	}
	if _, ok := asBool(act["weatherDependent"]); !ok {
		return &RuleError{Rule: "activity", Detail: where + ".weatherDependent must be a boolean"}
	}
	return nil
}

func validateMeal(i, j int, raw any) error {
	where := fmt.Sprintf("days[%d].meals[%d]", i, j)
	meal, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "meal", Detail: where + " is not an object"}
	}
	if s, ok := asString(meal["time"]); !ok || s == "" {
		return &RuleError{Rule: "meal", Detail: where + ".time missing"}
	}
	if s, ok := asString(meal["venue"]); !ok || s == "" {
		return &RuleError{Rule: "meal", Detail: where + ".venue missing"}
	}
	pr, ok := asMap(meal["priceRange"])
	if !ok {
		return &RuleError{Rule: "meal", Detail: where + ".priceRange missing"}
	}
	if _, ok := asNumber(pr["min"]); !ok {
		return &RuleError{Rule: "meal", Detail: where + ".priceRange.min must be a number"}
	}
	if _, ok := asNumber(pr["max"]); !ok {
		return &RuleError{Rule: "meal", Detail: where + ".priceRange.max must be a number"}
	}
	return nil
}

func validateCurrency(raw any) error {
	cur, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "localCurrency", Detail: "not an object"}
	}
	if s, ok := asString(cur["code"]); !ok || s == "" {
		return &RuleError{Rule: "localCurrency", Detail: "code missing"}
	}
	if s, ok := asString(cur["symbol"]); !ok || s == "" {
		return &RuleError{Rule: "localCurrency", Detail: "symbol missing"}
	}
	if _, ok := asNumber(cur["exchangeRate"]); !ok {
		return &RuleError{Rule: "localCurrency", Detail: "exchangeRate must be a number"}
	}
	return nil
}

func validateCostBreakdown(raw any) error {
	cb, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "costBreakdown", Detail: "not an object"}
	}
	if total, ok := asNumber(cb["totalEstimatedCost"]); !ok || total <= 0 {
		return &RuleError{Rule: "costBreakdown", Detail: "totalEstimatedCost must be positive"}
	}
	if _, ok := asMap(cb["categories"]); !ok {
		return &RuleError{Rule: "costBreakdown", Detail: "categories missing"}
	}
	return nil
}

func validateTransportationDetails(raw any) error {
	td, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "transportationDetails", Detail: "not an object"}
	}
	routes, ok := asSlice(td["routes"])
	if !ok {
		return &RuleError{Rule: "transportationDetails", Detail: "routes must be an array"}
	}
	hubs, ok := asSlice(td["hubs"])
	if !ok {
		return &RuleError{Rule: "transportationDetails", Detail: "hubs must be an array"}
	}

	for i, rawRoute := range routes {
		where := fmt.Sprintf("transportationDetails.routes[%d]", i)
		route, ok := asMap(rawRoute)
		if !ok {
			return &RuleError{Rule: "route", Detail: where + " is not an object"}
		}
		for _, field := range []string{"type", "provider", "schedule"} {
			if s, ok := asString(route[field]); !ok || s == "" {
				return &RuleError{Rule: "route", Detail: where + "." + field + " missing"}
			}
		}
		if _, ok := asNumber(route["cost"]); !ok {
			return &RuleError{Rule: "route", Detail: where + ".cost must be a number"}
		}
		if _, ok := asSlice(route["notes"]); !ok {
			return &RuleError{Rule: "route", Detail: where + ".notes must be an array"}
		}
	}

	for i, rawHub := range hubs {
		where := fmt.Sprintf("transportationDetails.hubs[%d]", i)
		hub, ok := asMap(rawHub)
		if !ok {
			return &RuleError{Rule: "hub", Detail: where + " is not an object"}
		}
		for _, field := range []string{"name", "type"} {
			if s, ok := asString(hub[field]); !ok || s == "" {
				return &RuleError{Rule: "hub", Detail: where + "." + field + " missing"}
			}
		}
		loc, ok := asMap(hub["location"])
		if !ok {
			return &RuleError{Rule: "hub", Detail: where + ".location missing"}
		}
		if err := validateCoordinates(loc["coordinates"], where+".location"); err != nil {
			return err
		}
		if _, ok := asNumber(hub["distance"]); !ok {
			return &RuleError{Rule: "hub", Detail: where + ".distance must be a number"}
		}
		if _, ok := asSlice(hub["transportOptions"]); !ok {
			return &RuleError{Rule: "hub", Detail: where + ".transportOptions must be an array"}
		}
		if _, ok := asSlice(hub["facilities"]); !ok {
			return &RuleError{Rule: "hub", Detail: where + ".facilities must be an array"}
		}
	}
	return nil
}

func validateCoordinates(raw any, where string) error {
	coords, ok := asMap(raw)
	if !ok {
		return &RuleError{Rule: "coordinates", Detail: where + ".coordinates missing"}
	}
	lat, latOK := asNumber(coords["lat"])
	lng, lngOK := asNumber(coords["lng"])
	if !latOK || !lngOK || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return &RuleError{Rule: "coordinates", Detail: where + " out of range"}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func asNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
