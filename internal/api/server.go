package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/prospect-tracker/internal/enrich"
	"github.com/david/prospect-tracker/internal/registry"
)

// Server is the HTTP boundary: request/response translation only, all
// pipeline logic lives in the registries.
type Server struct {
	Echo      *echo.Echo
	Searches  *registry.SearchRegistry
	Prospects *registry.ProspectRegistry
	Pitches   *registry.PitchRegistry
	Intake    *registry.Intake
	Stats     *registry.Aggregator
	Enricher  *enrich.Enricher
}

// NewServer wires the registries over store and registers all routes.
// extraOrigins extends the localhost CORS default for deployed dashboards.
func NewServer(store registry.Store, enricher *enrich.Enricher, extraOrigins []string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	allowedOrigins := append([]string{"http://localhost:5173"}, extraOrigins...)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	searches := registry.NewSearchRegistry(store)
	prospects := registry.NewProspectRegistry(store)
	pitches := registry.NewPitchRegistry(store, store)

	s := &Server{
		Echo:      e,
		Searches:  searches,
		Prospects: prospects,
		Pitches:   pitches,
		Intake:    registry.NewIntake(searches, prospects),
		Stats:     registry.NewAggregator(prospects, pitches),
		Enricher:  enricher,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api")

	// Write endpoints used by the discovery and pitch-generation agents.
	api.POST("/prospect", s.handleIntake)
	api.POST("/prospect/status", s.handleUpdateProspectStatus)
	api.POST("/pitch", s.handleCreatePitch)

	// Read endpoints for the dashboard.
	api.GET("/prospects", s.handleListProspects)
	api.GET("/prospects/:id", s.handleGetProspect)
	api.DELETE("/prospects/:id", s.handleDeleteProspect)
	api.POST("/prospects/:id/enrich", s.handleEnrichProspect)
	api.GET("/pitches", s.handleListPitches)
	api.GET("/pitches/:id", s.handleGetPitch)
	api.DELETE("/pitches/:id", s.handleDeletePitch)
	api.GET("/searches", s.handleListSearches)
	api.GET("/searches/:id", s.handleGetSearch)
	api.GET("/stats", s.handleGetStats)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}
