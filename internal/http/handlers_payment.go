package http

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/log"
)

// paymentYears handles GET /api/payments/years.
func (s *Server) paymentYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.payments.DistinctYears(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment years query failed", log.FieldError, err)
		internalError(w, "failed to list payment years")
		return
	}
	toJSON(w, http.StatusOK, years)
}

// createPayment handles POST /api/payments.
func (s *Server) createPayment(w http.ResponseWriter, r *http.Request) {
	var item core.PaymentItem
	if err := decodeJSON(w, r, &item); err != nil {
		badRequest(w, "invalid payment payload: "+err.Error())
		return
	}
	if item.BudgetID == uuid.Nil {
		writeErr(w, http.StatusUnprocessableEntity, "budget_id is required")
		return
	}

	stored, err := s.payments.Insert(r.Context(), item)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment insert failed",
			log.FieldError, err, log.FieldBudgetID, item.BudgetID)
		internalError(w, "failed to record payment")
		return
	}

	toJSON(w, http.StatusCreated, okResult(stored.ID, "payment recorded"))
}

// updatePayment handles PUT /api/payments/{id}. The path id wins over
// any id carried in the body.
func (s *Server) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid payment id")
		return
	}

	var item core.PaymentItem
	if err := decodeJSON(w, r, &item); err != nil {
		badRequest(w, "invalid payment payload: "+err.Error())
		return
	}
	item.ID = id

	updated, err := s.payments.Update(r.Context(), item)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment update failed",
			log.FieldError, err, log.FieldPaymentID, id)
		internalError(w, "failed to update payment")
		return
	}
	if !updated {
		notFound(w, "payment not found")
		return
	}

	toJSON(w, http.StatusOK, okResult(id, "payment updated"))
}

// deletePayment handles DELETE /api/payments/{id}.
func (s *Server) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid payment id")
		return
	}

	deleted, err := s.payments.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Payment delete failed",
			log.FieldError, err, log.FieldPaymentID, id)
		internalError(w, "failed to delete payment")
		return
	}
	if !deleted {
		notFound(w, "payment not found")
		return
	}

	toJSON(w, http.StatusOK, okResult(id, "payment deleted"))
}
