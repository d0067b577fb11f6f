package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// Result is the acknowledgement payload for write operations and the
// error payload everywhere else. ID is set when a write produced or
// touched a single document.
type Result struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	ID      *uuid.UUID `json:"id,omitempty"`
}

func okResult(id uuid.UUID, message string) Result {
	return Result{Success: true, Message: message, ID: &id}
}

// decodeJSON reads a size-capped JSON body into v, rejecting fields the
// target type does not declare.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	toJSON(w, status, Result{Success: false, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusNotFound, msg)
}

func internalError(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusInternalServerError, msg)
}
