package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripforge/internal/planner"
)

type GenerateRequest struct {
	Destination planner.Destination     `json:"destination" binding:"required"`
	Preferences planner.TripPreferences `json:"preferences" binding:"required"`
	Duration    int                     `json:"duration"`
	Mode        planner.Mode            `json:"mode"`
}

type GenerateResponse struct {
	ID        string             `json:"id,omitempty"`
	Itinerary *planner.Itinerary `json:"itinerary"`
}

// HandleGenerate runs the full generation pipeline for one travel request.
func (s *Server) HandleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Destination.Name == "" || req.Destination.Country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination name and country are required"})
		return
	}
	if req.Mode == "" {
		req.Mode = planner.ModeLuxury
	}
	if req.Mode != planner.ModeLuxury && req.Mode != planner.ModeBackpacking {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be luxury or backpacking"})
		return
	}
	if req.Preferences.DateRange.Start.IsZero() || req.Preferences.DateRange.End.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferences.dateRange.start and .end are required"})
		return
	}

	travelReq := planner.TravelRequest{
		Destination: req.Destination,
		Preferences: req.Preferences,
		Duration:    req.Duration,
		Mode:        req.Mode,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.genTimeout)
	defer cancel()

	it, err := s.planner.Generate(ctx, travelReq)
	if err != nil {
		var genErr *planner.GenerationError
		switch {
		case errors.As(err, &genErr):
			s.log.Error("generation failed",
				zap.String("stage", genErr.Stage),
				zap.Int("attempts", genErr.Attempts),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "itinerary generation failed",
				"stage": genErr.Stage,
			})
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "itinerary generation timed out"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "itinerary generation failed"})
		}
		return
	}

	resp := GenerateResponse{Itinerary: it}
	if s.archive != nil {
		// Archiving is best-effort: the user still gets their itinerary.
		id, err := s.archive.Save(c.Request.Context(), it)
		if err != nil {
			s.log.Warn("failed to archive itinerary", zap.Error(err))
		} else {
			resp.ID = id
		}
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) HandleGetItinerary(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "archive not configured"})
		return
	}
	it, err := s.archive.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, planner.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "itinerary not found"})
		return
	}
	if err != nil {
		s.log.Error("archive lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive lookup failed"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (s *Server) HandleListRecent(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusOK, []planner.ArchiveSummary{})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := s.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("archive listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "archive listing failed"})
		return
	}
	if items == nil {
		items = []planner.ArchiveSummary{}
	}
	c.JSON(http.StatusOK, items)
}
