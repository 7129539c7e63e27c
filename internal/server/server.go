// Package server exposes the ledger core over REST and serves the
// embedded web UI. It is a thin adapter: requests are translated into
// ledger calls and results serialized into the data/error envelope.
package server

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/web"
)

// Server holds the REST adapter's dependencies.
type Server struct {
	ledger   *ledger.Ledger
	logger   *slog.Logger
	validate *validator.Validate
	cfg      *config.Config
}

// New creates a Server around a ledger.
func New(cfg *config.Config, logger *slog.Logger, l *ledger.Ledger) *Server {
	return &Server{
		ledger:   l,
		logger:   logger,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// NewLogger returns a slog.Logger configured per the LOG_FORMAT setting.
func NewLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// Router builds the chi router with middleware, API routes, the hidden
// test reset, and the embedded UI.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	if s.cfg != nil && s.cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(s.cfg.RateLimit, time.Minute))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", s.listAccounts)
			r.Post("/", s.createAccount)
			r.Get("/{id}", s.getAccount)
			r.Put("/{id}", s.updateAccount)
			r.Delete("/{id}", s.deleteAccount)
			r.Get("/{id}/balance", s.accountBalance)
			r.Get("/{id}/t-account", s.tAccount)
			r.Get("/{id}/t-account.csv", s.tAccountCSV)
		})
		r.Route("/journal-entries", func(r chi.Router) {
			r.Get("/", s.listEntries)
			r.Post("/", s.createEntry)
			r.Get("/{id}", s.getEntry)
			r.Put("/{id}", s.updateEntry)
			r.Delete("/{id}", s.deleteEntry)
			r.Post("/{id}/close", s.closeEntry)
			r.Post("/{id}/reopen", s.reopenEntry)
		})
		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", s.trialBalance)
			r.Get("/trial-balance.csv", s.trialBalanceCSV)
			r.Get("/balance-sheet", s.balanceSheet)
			r.Get("/income-statement", s.incomeStatement)
		})
	})

	// Test harness hook. Not part of the production contract.
	r.Post("/test/reset", s.reset)

	static, err := fs.Sub(web.Static, "static")
	if err == nil {
		r.Handle("/*", http.FileServer(http.FS(static)))
	}

	return r
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	if err := s.ledger.Reset(); err != nil {
		s.logger.Error("reset ledger", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
