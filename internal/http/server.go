package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"bilancio/internal/cache"
	"bilancio/internal/core"
	"bilancio/internal/log"
)

const (
	requestsPerMinute = 60
	maxSummaryEntries = 100
	maxBodyBytes      = 1 << 20
)

// Server is the JSON API over the budget, payment, and state stores.
type Server struct {
	http.Server

	budgets  BudgetStore
	payments PaymentStore
	state    StateStore

	summaries *cache.TTLCache[uuid.UUID, core.Summary]
	limiter   *rateLimiter
	now       func() time.Time
}

// NewServer wires middleware and routes, returning a ready-to-run server.
// summaryTTL bounds how long a computed summary may be served from cache.
func NewServer(addr string, budgets BudgetStore, payments PaymentStore, state StateStore, summaryTTL time.Duration, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		budgets:   budgets,
		payments:  payments,
		state:     state,
		summaries: cache.New[uuid.UUID, core.Summary](maxSummaryEntries, summaryTTL),
		limiter:   newRateLimiter(requestsPerMinute),
		now:       time.Now,
	}

	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(securityHeaders)
	r.Use(rateLimit(s.limiter))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", s.listBudgets)
			r.Post("/", s.saveBudget)
			r.Get("/latest", s.latestBudget)
			r.Get("/{id}", s.getBudget)
			r.Delete("/{id}", s.deleteBudget)
			r.Get("/{id}/summary", s.budgetSummary)
			r.Get("/{id}/due", s.upcomingBills)
			r.Get("/{id}/export", s.exportBudget)
			r.Get("/{id}/payments", s.listPayments)
		})
		r.Route("/payments", func(r chi.Router) {
			r.Get("/years", s.paymentYears)
			r.Post("/", s.createPayment)
			r.Put("/{id}", s.updatePayment)
			r.Delete("/{id}", s.deletePayment)
		})
		r.Route("/state", func(r chi.Router) {
			r.Get("/", s.getState)
			r.Put("/", s.saveState)
			r.Post("/reset", s.resetState)
		})
	})

	return s
}

// Shutdown stops background goroutines, then drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.stop()
	return s.Server.Shutdown(ctx)
}

// Caches exposes the server's caches for periodic sweeping.
func (s *Server) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.summaries}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// summaryFor returns the cached summary for b, computing and caching it
// on a miss. Writes invalidate through invalidateSummary.
func (s *Server) summaryFor(ctx context.Context, b core.Budget) core.Summary {
	if sum, ok := s.summaries.Get(b.ID); ok {
		slog.DebugContext(ctx, "Summary cache hit", log.FieldBudgetID, b.ID)
		return sum
	}
	sum := b.Summarize()
	s.summaries.Set(b.ID, sum)
	return sum
}

func (s *Server) invalidateSummary(id uuid.UUID) {
	s.summaries.Delete(id)
}
