// Package handler implements the HTTP surface of the attendance server.
// Handlers are a thin projection layer: they resolve the visitor's session,
// translate JSON event payloads into state-machine events, and render state
// snapshots back. No form or wizard logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ropiclub/attendance/internal/domain"
	"github.com/ropiclub/attendance/internal/form"
	"github.com/ropiclub/attendance/internal/schedule"
	"github.com/ropiclub/attendance/internal/session"
	"github.com/ropiclub/attendance/internal/wizard"
	"github.com/ropiclub/attendance/spec"
)

// sessionCookie carries the visitor's session ID.
const sessionCookie = "attendance_session"

// Submitter defines the orchestrator operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the gateway or service layer.
type Submitter interface {
	SubmitPersonal(ctx context.Context, st form.State, submittedAt string) (domain.SubmissionResult, error)
	SubmitBulk(ctx context.Context, st wizard.State, submittedAt string) (domain.SubmissionResult, error)
}

// CounterReader is the gateway surface the read-only endpoints need.
type CounterReader interface {
	// ReadCounter returns the headcount display value, sentinels included.
	ReadCounter(ctx context.Context) string

	// Connected reports whether the row store is reachable right now.
	Connected(ctx context.Context) bool
}

// Server holds the handlers' dependencies. Methods are split into
// domain-specific files (form.go, admin.go, counter.go, health.go) but all
// share this struct.
type Server struct {
	submissions Submitter
	counter     CounterReader
	sessions    *session.Store
	dates       *schedule.Generator
	roster      domain.Roster
}

// NewServer constructs the Server with all its dependencies.
func NewServer(submissions Submitter, counter CounterReader, sessions *session.Store, dates *schedule.Generator, roster domain.Roster) *Server {
	return &Server{
		submissions: submissions,
		counter:     counter,
		sessions:    sessions,
		dates:       dates,
		roster:      roster,
	}
}

// Routes returns the router with every endpoint registered. Middleware is
// applied by the caller (main), not here, so tests exercise the handlers
// without the logging noise.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/counter", s.GetCounter)

		r.Route("/form", func(r chi.Router) {
			r.Get("/", s.GetForm)
			r.Post("/events", s.PostFormEvent)
			r.Post("/submit", s.PostFormSubmit)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/", s.GetAdmin)
			r.Post("/events", s.PostAdminEvent)
			r.Post("/submit", s.PostAdminSubmit)
		})
	})

	return r
}

// GetOpenAPI serves the embedded API document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// session resolves the visitor's session from the cookie, issuing a fresh
// session (and cookie) when the ID is missing, unknown, or expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess
		}
	}

	id, sess := s.sessions.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
