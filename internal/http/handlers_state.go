package http

import (
	"log/slog"
	"net/http"

	"bilancio/internal/core"
	"bilancio/internal/log"
)

// getState handles GET /api/state, creating the default state on first
// access.
func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	state, err := s.state.Get(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "State load failed", log.FieldError, err)
		internalError(w, "failed to load application state")
		return
	}
	toJSON(w, http.StatusOK, state)
}

// saveState handles PUT /api/state.
func (s *Server) saveState(w http.ResponseWriter, r *http.Request) {
	var state core.AppState
	if err := decodeJSON(w, r, &state); err != nil {
		badRequest(w, "invalid state payload: "+err.Error())
		return
	}
	if state.Month < 1 || state.Month > 12 {
		writeErr(w, http.StatusUnprocessableEntity, "month must be between 1 and 12")
		return
	}
	if state.Year < 1 {
		writeErr(w, http.StatusUnprocessableEntity, "year must be positive")
		return
	}

	saved, err := s.state.Save(r.Context(), state)
	if err != nil {
		slog.ErrorContext(r.Context(), "State save failed", log.FieldError, err)
		internalError(w, "failed to save application state")
		return
	}

	toJSON(w, http.StatusOK, okResult(saved.ID, "state saved"))
}

// resetState handles POST /api/state/reset and returns the fresh state
// so clients can re-render without a second round trip.
func (s *Server) resetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.state.Reset(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "State reset failed", log.FieldError, err)
		internalError(w, "failed to reset application state")
		return
	}
	toJSON(w, http.StatusOK, state)
}
