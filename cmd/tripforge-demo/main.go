// README: One-shot CLI; generates a single itinerary and prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"tripforge/internal/ai"
	"tripforge/internal/planner"
)

func main() {
	dest := flag.String("dest", "Kyoto", "destination city")
	country := flag.String("country", "Japan", "destination country")
	start := flag.String("start", "", "start date (YYYY-MM-DD, default: a week from now)")
	days := flag.Int("days", 3, "trip length in days (max 4)")
	mode := flag.String("mode", "luxury", "experience mode: luxury or backpacking")
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	startDate := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	if *start != "" {
		parsed, err := time.Parse("2006-01-02", *start)
		if err != nil {
			log.Fatalf("invalid -start date: %v", err)
		}
		startDate = parsed
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	llm, err := ai.NewGeminiClient(ctx, apiKey, os.Getenv("TRIPFORGE_GEMINI_MODEL"), logger)
	if err != nil {
		log.Fatalf("gemini init failed: %v", err)
	}
	defer llm.Close()

	gen := planner.NewPlanner(llm, nil, planner.NewMemoryCache(0), logger)

	req := planner.TravelRequest{
		Destination: planner.Destination{Name: *dest, Country: *country},
		Preferences: planner.TripPreferences{
			Budget:        "moderate",
			ActivityLevel: "moderate",
			TravelStyle:   "solo",
			GroupSize:     1,
			DateRange: planner.DateRange{
				Start: startDate,
				End:   startDate.AddDate(0, 0, *days-1),
			},
			PacePreference: "balanced",
		},
		Duration: *days,
		Mode:     planner.Mode(*mode),
	}

	it, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	out, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
