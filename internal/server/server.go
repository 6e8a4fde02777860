// Package server exposes the stateless JSON API and the chat webhook
// over one chi router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lunchbot/internal/chat"
	"lunchbot/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	groups *service.Groups
	events *service.Events
	chat   *chat.Machine
}

// New creates a Server over the given services and chat machine.
func New(groups *service.Groups, events *service.Events, machine *chat.Machine) *Server {
	return &Server{groups: groups, events: events, chat: machine}
}

// Router assembles the route table with logging, CORS and panic
// recovery applied to everything.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/groups", s.handleListGroups)
		r.Post("/groups", s.handleCreateGroup)
		r.Post("/groups/join", s.handleJoinGroup)

		r.Get("/events", s.handleListEvents)
		r.Post("/events", s.handleCreateEvent)
		r.Delete("/events/{id}", s.handleDeleteEvent)

		r.Post("/chat", s.handleChat)
	})

	return r
}
