// Package api exposes the solver over HTTP.
//
// The surface is small: POST /solve runs the backtracking search on an
// instance document, GET /puzzles serves previously generated puzzles, and
// GET /healthz reports liveness. Solutions are cached by instance
// fingerprint, so identical requests skip the search.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/cache"
	apperrors "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/errors"
	puzzleio "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/io"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/storage"
)

// defaultSolveTimeout bounds a single search request.
const defaultSolveTimeout = 30 * time.Second

// Server holds the dependencies shared by all handlers.
type Server struct {
	logger  *log.Logger
	store   storage.Store
	cache   cache.Cache
	timeout time.Duration
}

// NewServer creates an API server. The store serves the puzzle endpoints and
// the cache short-circuits repeated solves; pass a MemoryStore and NullCache
// to run without external services.
func NewServer(logger *log.Logger, store storage.Store, solutions cache.Cache) *Server {
	return &Server{
		logger:  logger,
		store:   store,
		cache:   solutions,
		timeout: defaultSolveTimeout,
	}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/solve", s.handleSolve)
	r.Get("/puzzles", s.handleListPuzzles)
	r.Get("/puzzles/{id}", s.handleGetPuzzle)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// solveResponse is the JSON body returned by POST /solve.
type solveResponse struct {
	Moves      int               `json:"moves"`
	Placements []board.Placement `json:"placements"`
	Nodes      int               `json:"nodes,omitempty"`
	Cached     bool              `json:"cached"`
}

// handleSolve decodes an instance document, runs the search and returns the
// covering. The optional ?rule= query parameter selects the adjacency rule
// ("color", "count", or "both"; default "color").
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	def, err := puzzleio.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ruleName := r.URL.Query().Get("rule")
	if ruleName == "" {
		ruleName = "color"
	}
	rule, err := ruleByName(ruleName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	inst, err := puzzle.New(def, puzzle.WithRule(rule))
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := cache.SolutionKey(inst.Fingerprint() + ":" + ruleName)
	if data, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		if sol, err := puzzleio.ReadSolutionJSON(bytes.NewReader(data)); err == nil {
			s.writeJSON(w, http.StatusOK, solveResponse{
				Moves:      sol.Moves(),
				Placements: sol.Placements,
				Cached:     true,
			})
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	start := time.Now()
	sol, stats, err := inst.Solve(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Infof("Solved %dx%d instance: %d placements, %d nodes (%s)",
		def.Width, def.Height, sol.Moves(), stats.Nodes, time.Since(start).Round(time.Millisecond))

	var buf bytes.Buffer
	if err := puzzleio.WriteSolutionJSON(&buf, sol); err == nil {
		if err := s.cache.Set(r.Context(), key, buf.Bytes(), cache.DefaultTTL); err != nil {
			s.logger.Debugf("Cache store failed: %v", err)
		}
	}

	s.writeJSON(w, http.StatusOK, solveResponse{
		Moves:      sol.Moves(),
		Placements: sol.Placements,
		Nodes:      stats.Nodes,
	})
}

func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []storage.Record{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

// errorResponse is the JSON body returned for all error statuses.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP statuses: validation failures are
// 400, an exhausted search is 422, a missing puzzle is 404, everything else
// is 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.ErrCodeInternal

	switch {
	case apperrors.IsValidation(err):
		status = http.StatusBadRequest
		code = apperrors.GetCode(err)
	case errors.Is(err, solver.ErrNoSolution):
		status = http.StatusUnprocessableEntity
		code = apperrors.ErrCodeNotFound
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
		code = apperrors.ErrCodePuzzleNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
		code = apperrors.ErrCodeInternal
	}

	if status == http.StatusInternalServerError {
		s.logger.Errorf("Request failed: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: apperrors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Encode response: %v", err)
	}
}

// ruleByName maps a rule name to an adjacency rule.
func ruleByName(name string) (board.Rule, error) {
	switch name {
	case "color":
		return board.ColorRule{}, nil
	case "count":
		return board.CountRule{}, nil
	case "both":
		return board.Rules{board.ColorRule{}, board.CountRule{}}, nil
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidRule, "unknown rule %q", name)
	}
}
