package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bilancio/internal/core"
	"bilancio/internal/export"
	"bilancio/internal/log"
	"bilancio/internal/services"
	"bilancio/internal/storage"
)

const (
	defaultDueWindowDays = 30
	maxDueWindowDays     = 365
)

// listBudgets handles GET /api/budgets.
func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.All(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget list failed", log.FieldError, err)
		internalError(w, "failed to list budgets")
		return
	}
	toJSON(w, http.StatusOK, budgets)
}

// saveBudget handles POST /api/budgets. The body is a full budget
// document; a zero id creates, a known id overwrites.
func (s *Server) saveBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if err := decodeJSON(w, r, &b); err != nil {
		badRequest(w, "invalid budget payload: "+err.Error())
		return
	}
	if b.AnnualSalary.IsNegative() {
		writeErr(w, http.StatusUnprocessableEntity, "annual salary cannot be negative")
		return
	}

	saved, err := s.budgets.Save(r.Context(), b)
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget save failed", log.FieldError, err, log.FieldBudgetID, b.ID)
		internalError(w, "failed to save budget")
		return
	}

	s.invalidateSummary(saved.ID)
	toJSON(w, http.StatusOK, okResult(saved.ID, "budget saved"))
}

// latestBudget handles GET /api/budgets/latest.
func (s *Server) latestBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.budgets.Latest(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			notFound(w, "no budgets saved yet")
			return
		}
		slog.ErrorContext(r.Context(), "Latest budget lookup failed", log.FieldError, err)
		internalError(w, "failed to load latest budget")
		return
	}
	toJSON(w, http.StatusOK, b)
}

// getBudget handles GET /api/budgets/{id}.
func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	b, ok := s.budgetFromPath(w, r)
	if !ok {
		return
	}
	toJSON(w, http.StatusOK, b)
}

// deleteBudget handles DELETE /api/budgets/{id}.
func (s *Server) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return
	}

	deleted, err := s.budgets.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Budget delete failed", log.FieldError, err, log.FieldBudgetID, id)
		internalError(w, "failed to delete budget")
		return
	}
	if !deleted {
		notFound(w, "budget not found")
		return
	}

	s.invalidateSummary(id)
	toJSON(w, http.StatusOK, okResult(id, "budget deleted"))
}

// budgetSummary handles GET /api/budgets/{id}/summary.
func (s *Server) budgetSummary(w http.ResponseWriter, r *http.Request) {
	b, ok := s.budgetFromPath(w, r)
	if !ok {
		return
	}
	toJSON(w, http.StatusOK, s.summaryFor(r.Context(), b))
}

// upcomingBills handles GET /api/budgets/{id}/due. The optional days
// parameter widens or narrows the lookahead window.
func (s *Server) upcomingBills(w http.ResponseWriter, r *http.Request) {
	b, ok := s.budgetFromPath(w, r)
	if !ok {
		return
	}

	days := defaultDueWindowDays
	if v := r.URL.Query().Get("days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d > 0 {
			days = d
		}
	}
	if days > maxDueWindowDays {
		days = maxDueWindowDays
	}

	toJSON(w, http.StatusOK, services.UpcomingBills(b, s.now(), days))
}

// exportBudget handles GET /api/budgets/{id}/export. The report is
// rendered fully before any byte is sent so failures still produce a
// clean error response.
func (s *Server) exportBudget(w http.ResponseWriter, r *http.Request) {
	b, ok := s.budgetFromPath(w, r)
	if !ok {
		return
	}

	format := export.JSON
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		format = f
	}

	report := export.NewReport(b, s.now())
	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		slog.ErrorContext(r.Context(), "Budget export failed",
			log.FieldError, err, log.FieldBudgetID, b.ID, log.FieldFormat, string(format))
		internalError(w, "failed to render export")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(report, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// listPayments handles GET /api/budgets/{id}/payments. With no query it
// returns everything recorded against the budget; month+year or date
// narrow the result.
func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	budgetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return
	}

	q := r.URL.Query()
	ctx := r.Context()

	var items []core.PaymentItem
	switch {
	case q.Get("date") != "":
		date, err := time.Parse("2006-01-02", q.Get("date"))
		if err != nil {
			badRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		items, err = s.payments.ByDate(ctx, budgetID, date)
		if err != nil {
			slog.ErrorContext(ctx, "Payment date query failed", log.FieldError, err, log.FieldBudgetID, budgetID)
			internalError(w, "failed to list payments")
			return
		}
	case q.Get("month") != "" || q.Get("year") != "":
		month, err := strconv.Atoi(q.Get("month"))
		if err != nil || month < 1 || month > 12 {
			badRequest(w, "invalid month, expected 1-12")
			return
		}
		year, err := strconv.Atoi(q.Get("year"))
		if err != nil {
			badRequest(w, "invalid year")
			return
		}
		items, err = s.payments.ByMonthYear(ctx, budgetID, month, year)
		if err != nil {
			slog.ErrorContext(ctx, "Payment month query failed", log.FieldError, err, log.FieldBudgetID, budgetID)
			internalError(w, "failed to list payments")
			return
		}
	default:
		items, err = s.payments.AllForBudget(ctx, budgetID)
		if err != nil {
			slog.ErrorContext(ctx, "Payment list failed", log.FieldError, err, log.FieldBudgetID, budgetID)
			internalError(w, "failed to list payments")
			return
		}
	}

	toJSON(w, http.StatusOK, items)
}

// budgetFromPath loads the budget named by the {id} path segment,
// answering the request itself when the id is malformed or unknown.
func (s *Server) budgetFromPath(w http.ResponseWriter, r *http.Request) (core.Budget, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid budget id")
		return core.Budget{}, false
	}

	b, err := s.budgets.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			notFound(w, "budget not found")
			return core.Budget{}, false
		}
		slog.ErrorContext(r.Context(), "Budget lookup failed", log.FieldError, err, log.FieldBudgetID, id)
		internalError(w, "failed to load budget")
		return core.Budget{}, false
	}
	return b, true
}
