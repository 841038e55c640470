package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/profile-extractor/internal/db"
	"github.com/jonathan/profile-extractor/internal/pipeline"
	"github.com/jonathan/profile-extractor/internal/strategy"
	"github.com/jonathan/profile-extractor/internal/types"
)

// RunStore is the subset of the database layer the run endpoints depend on.
// Declared here so tests can substitute an in-memory implementation.
type RunStore interface {
	CreateRun(ctx context.Context, sourceURL, locale string, textLength int) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	ListRuns(ctx context.Context, filters db.RunFilters) ([]db.Run, error)
	DeleteRun(ctx context.Context, runID uuid.UUID) error
	SaveProfile(ctx context.Context, runID uuid.UUID, profile *types.Profile) error
	GetProfile(ctx context.Context, runID uuid.UUID) (*types.Profile, error)
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, text string) error
	GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error)
	Close()
}

// ParseRequest represents the request body for /profile/parse and /runs
type ParseRequest struct {
	ProfileText string `json:"profile_text"`
	ProfileHTML string `json:"profile_html,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

// ParseResponse represents the response for /profile/parse
type ParseResponse struct {
	Success    bool           `json:"success"`
	Data       *types.Profile `json:"data"`
	TextLength int            `json:"text_length"`
}

// RunResponse represents the response for /runs
type RunResponse struct {
	RunID   string         `json:"run_id"`
	Status  string         `json:"status"`
	Profile *types.Profile `json:"profile,omitempty"`
}

// LinesResponse represents the response for /runs/{id}/lines
type LinesResponse struct {
	RunID string                 `json:"run_id"`
	Lines []types.ClassifiedLine `json:"lines"`
}

// extract runs the extraction pipeline over one captured page.
func (s *Server) extract(ctx context.Context, req *ParseRequest) (*pipeline.Result, error) {
	loc := req.Locale
	if loc == "" {
		loc = s.locale
	}
	in := strategy.Input{Text: req.ProfileText, HTML: req.ProfileHTML}
	return pipeline.Run(ctx, in, pipeline.RunOptions{
		Locale:  loc,
		Windows: s.windows,
		APIKey:  s.apiKey,
	})
}

// decodeParseRequest decodes and validates the shared request body.
func (s *Server) decodeParseRequest(w http.ResponseWriter, r *http.Request) *ParseRequest {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil
	}
	if strings.TrimSpace(req.ProfileText) == "" && strings.TrimSpace(req.ProfileHTML) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Either profile_text or profile_html is required")
		return nil
	}
	return &req
}

// handleParse extracts a profile from a captured page without persisting it
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req := s.decodeParseRequest(w, r)
	if req == nil {
		return
	}

	result, err := s.extract(r.Context(), req)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ParseResponse{
		Success:    true,
		Data:       result.Profile,
		TextLength: len(req.ProfileText),
	})
}

// handleCreateRun extracts a profile and records the run with its artifacts
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	req := s.decodeParseRequest(w, r)
	if req == nil {
		return
	}

	loc := req.Locale
	if loc == "" {
		loc = s.locale
	}

	ctx := r.Context()
	runID, err := s.store.CreateRun(ctx, req.SourceURL, loc, len(req.ProfileText))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create run: "+err.Error())
		return
	}

	if req.ProfileText != "" {
		if err := s.store.SaveTextArtifact(ctx, runID, db.StepCaptureText, req.ProfileText); err != nil {
			log.Printf("Failed to save text artifact for run %s: %v", runID, err)
		}
	}
	if req.ProfileHTML != "" {
		if err := s.store.SaveTextArtifact(ctx, runID, db.StepCaptureHTML, req.ProfileHTML); err != nil {
			log.Printf("Failed to save html artifact for run %s: %v", runID, err)
		}
	}

	result, err := s.extract(ctx, req)
	if err != nil {
		if completeErr := s.store.CompleteRun(ctx, runID, db.StatusFailed); completeErr != nil {
			log.Printf("Failed to mark run %s failed: %v", runID, completeErr)
		}
		s.errorResponse(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}

	if err := s.store.SaveProfile(ctx, runID, result.Profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile: "+err.Error())
		return
	}
	if err := s.store.CompleteRun(ctx, runID, db.StatusCompleted); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to complete run: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, RunResponse{
		RunID:   runID.String(),
		Status:  db.StatusCompleted,
		Profile: result.Profile,
	})
}

// handleListRuns returns recorded extraction runs, newest first
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	filters := db.RunFilters{
		SourceURL: r.URL.Query().Get("source_url"),
		Status:    r.URL.Query().Get("status"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	runs, err := s.store.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"count": len(runs),
	})
}

// handleGetRun returns one recorded run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	runID, ok := s.pathRunID(w, r)
	if !ok {
		return
	}

	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get run: "+err.Error())
		return
	}
	if run == nil {
		s.serviceError(w, &ErrRunNotFound{RunID: runID})
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleDeleteRun deletes a run and its artifacts
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	runID, ok := s.pathRunID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteRun(r.Context(), runID); err != nil {
		s.serviceError(w, &ErrRunNotFound{RunID: runID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Run deleted"})
}

// handleGetRunProfile returns the extracted profile stored for a run
func (s *Server) handleGetRunProfile(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	runID, ok := s.pathRunID(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetProfile(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get profile: "+err.Error())
		return
	}
	if profile == nil {
		s.serviceError(w, &ErrArtifactNotFound{RunID: runID, Step: db.StepProfile})
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetRunLines re-derives the classified line sequence from the stored
// text capture. Useful for debugging association decisions after the fact.
func (s *Server) handleGetRunLines(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.serviceError(w, &ErrPersistenceDisabled{})
		return
	}

	runID, ok := s.pathRunID(w, r)
	if !ok {
		return
	}

	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get run: "+err.Error())
		return
	}
	if run == nil {
		s.serviceError(w, &ErrRunNotFound{RunID: runID})
		return
	}

	text, err := s.store.GetTextArtifact(r.Context(), runID, db.StepCaptureText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get text artifact: "+err.Error())
		return
	}
	if text == "" {
		s.serviceError(w, &ErrArtifactNotFound{RunID: runID, Step: db.StepCaptureText})
		return
	}

	s.jsonResponse(w, http.StatusOK, LinesResponse{
		RunID: runID.String(),
		Lines: pipeline.NormalizeAndClassify(text, run.Locale),
	})
}

// pathRunID parses the {id} path segment as a run UUID.
func (s *Server) pathRunID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID: "+idStr)
		return uuid.Nil, false
	}
	return runID, true
}
