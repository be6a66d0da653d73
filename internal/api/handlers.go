package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/david/prospect-tracker/internal/models"
	"github.com/david/prospect-tracker/internal/registry"
)

// bulkSearchLimit is the default for the bulk searches listing; the recent
// listing inside the registry defaults to 10. The two intentionally differ.
const bulkSearchLimit = 100

const enrichTimeout = 30 * time.Second

// translateError maps registry error kinds to wire responses. Everything
// unexpected is a 500 with the detail kept server-side.
func (s *Server) translateError(c echo.Context, err error) error {
	var ve *registry.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Validation error: '%s' %s", ve.Field, ve.Reason),
		})
	}

	var ce *registry.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":          fmt.Sprintf("A pitch already exists for this website (%s). Use GET /api/pitches?website=... to retrieve it.", ce.Value),
			"existingPitchId": ce.ExistingID,
		})
	}

	if errors.Is(err, registry.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}

// parseBool reads "true"/"false" query values; anything else means unset.
func parseBool(v string) *bool {
	switch v {
	case "true":
		val := true
		return &val
	case "false":
		val := false
		return &val
	}
	return nil
}

// parseLimit reads a non-negative limit; absent or invalid falls back to def.
func parseLimit(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// POST /api/prospect

func (s *Server) handleIntake(c echo.Context) error {
	var req registry.IntakeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	result, err := s.Intake.Run(c.Request().Context(), req)
	if err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// POST /api/prospect/status

type updateStatusRequest struct {
	ProspectID string `json:"prospectId"`
	Status     string `json:"status"`
}

func (s *Server) handleUpdateProspectStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.ProspectID == "" || req.Status == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Validation error: 'prospectId' and 'status' are required",
		})
	}
	if !models.ValidProspectStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Validation error: 'status' must be one of: " + strings.Join(models.ProspectStatuses, ", "),
		})
	}

	id, err := uuid.Parse(req.ProspectID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid prospect ID"})
	}

	if err := s.Prospects.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"prospectId": req.ProspectID, "status": req.Status})
}

// POST /api/pitch

func (s *Server) handleCreatePitch(c echo.Context) error {
	var in registry.PitchInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	result, err := s.Pitches.Create(c.Request().Context(), in)
	if err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"pitchId":                  result.PitchID,
		"prospectId":               result.ProspectID,
		"linkedToExistingProspect": result.Linked,
	})
}

// GET /api/prospects

func (s *Server) handleListProspects(c echo.Context) error {
	filter := registry.ProspectFilter{
		Status:         strPtr(c.QueryParam("status")),
		IsLocal:        parseBool(c.QueryParam("isLocal")),
		Limit:          parseLimit(c.QueryParam("limit"), 0),
		IncludeDeleted: c.QueryParam("includeDeleted") == "true",
	}

	prospects, err := s.Prospects.ListFiltered(c.Request().Context(), filter)
	if err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"prospects": prospects,
		"total":     len(prospects),
	})
}

func (s *Server) handleGetProspect(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid prospect ID"})
	}

	p, err := s.Prospects.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.translateError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeleteProspect(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid prospect ID"})
	}

	if err := s.Prospects.SoftDelete(c.Request().Context(), id); err != nil {
		return s.translateError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// POST /api/prospects/:id/enrich

func (s *Server) handleEnrichProspect(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid prospect ID"})
	}

	p, err := s.Prospects.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.translateError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), enrichTimeout)
	defer cancel()

	findings, err := s.Enricher.Enrich(ctx, p.URL)
	if err != nil {
		c.Logger().Errorf("enrichment failed for %s: %v", p.URL, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to fetch prospect website"})
	}

	summary := findings.Summary()
	if err := s.Prospects.AppendNotes(c.Request().Context(), id, summary); err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"prospectId": id,
		"findings":   findings,
		"summary":    summary,
	})
}

// GET /api/pitches

func (s *Server) handleListPitches(c echo.Context) error {
	opts := registry.ListOptions{
		Industry:       strPtr(c.QueryParam("industry")),
		IsLocal:        parseBool(c.QueryParam("isLocal")),
		Website:        strPtr(c.QueryParam("website")),
		Limit:          parseLimit(c.QueryParam("limit"), 0),
		IncludeDeleted: c.QueryParam("includeDeleted") == "true",
	}

	pitches, err := s.Pitches.ListFiltered(c.Request().Context(), opts)
	if err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pitches": pitches,
		"total":   len(pitches),
	})
}

func (s *Server) handleGetPitch(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid pitch ID"})
	}

	p, err := s.Pitches.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.translateError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) handleDeletePitch(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid pitch ID"})
	}

	if err := s.Pitches.SoftDelete(c.Request().Context(), id); err != nil {
		return s.translateError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

// GET /api/searches

func (s *Server) handleListSearches(c echo.Context) error {
	filter := registry.SearchFilter{
		Industry: strPtr(c.QueryParam("industry")),
		Location: strPtr(c.QueryParam("location")),
		Limit:    parseLimit(c.QueryParam("limit"), bulkSearchLimit),
	}
	if filter.Limit == 0 {
		filter.Limit = bulkSearchLimit
	}

	searches, err := s.Searches.List(c.Request().Context(), filter)
	if err != nil {
		return s.translateError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"searches": searches,
		"total":    len(searches),
	})
}

func (s *Server) handleGetSearch(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid search ID"})
	}

	search, err := s.Searches.GetByID(c.Request().Context(), id)
	if err != nil {
		return s.translateError(c, err)
	}
	if search == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
	}
	return c.JSON(http.StatusOK, search)
}

// GET /api/stats

func (s *Server) handleGetStats(c echo.Context) error {
	overview, err := s.Stats.Overview(c.Request().Context())
	if err != nil {
		return s.translateError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}
