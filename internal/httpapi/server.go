// README: HTTP surface; registers the generation and archive routes on gin.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripforge/internal/planner"
)

// Generator produces a validated itinerary or a terminal error.
type Generator interface {
	Generate(ctx context.Context, req planner.TravelRequest) (*planner.Itinerary, error)
}

// Archive persists and retrieves generated itineraries. Nil-able: archiving
// is best-effort and never blocks a generation response.
type Archive interface {
	Save(ctx context.Context, it *planner.Itinerary) (string, error)
	Get(ctx context.Context, id string) (*planner.Itinerary, error)
	ListRecent(ctx context.Context, limit int) ([]planner.ArchiveSummary, error)
}

type Server struct {
	planner    Generator
	archive    Archive
	log        *zap.Logger
	genTimeout time.Duration
}

func NewServer(gen Generator, archive Archive, log *zap.Logger, genTimeout time.Duration) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if genTimeout <= 0 {
		genTimeout = 2 * time.Minute
	}
	return &Server{planner: gen, archive: archive, log: log, genTimeout: genTimeout}
}

// Router builds the gin engine with CORS, request logging, and all routes.
// allowedOrigins is a comma-separated list; empty means localhost dev origins
// only.
func (s *Server) Router(allowedOrigins string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.log))

	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.POST("/itineraries", s.HandleGenerate)
		api.GET("/itineraries", s.HandleListRecent)
		api.GET("/itineraries/:id", s.HandleGetItinerary)
	}
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return r
}
