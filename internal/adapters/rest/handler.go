// Package rest exposes the application over HTTP.
package rest

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/crescendo-labs/backend/internal/core/ports"
	"github.com/crescendo-labs/backend/internal/core/services"
)

// Handler manages the HTTP interface for the application.
type Handler struct {
	discovery *services.Discovery
	users     *services.Users
	groups    *services.Groups
	events    *services.Events
	verifier  ports.TokenVerifier
	logger    *log.Logger
	router    chi.Router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(
	discovery *services.Discovery,
	users *services.Users,
	groups *services.Groups,
	events *services.Events,
	verifier ports.TokenVerifier,
	logger *log.Logger,
) *Handler {
	h := &Handler{
		discovery: discovery,
		users:     users,
		groups:    groups,
		events:    events,
		verifier:  verifier,
		logger:    logger,
		router:    chi.NewRouter(),
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	r := h.router

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Health check
	r.Get("/health", h.HealthCheck)

	// Playlist discovery
	r.Post("/search", h.SearchPlaylists)
	r.Get("/search", h.SearchPlaylistsQuery)
	r.Get("/playlists/{id}", h.GetPlaylist)

	r.Route("/api", func(r chi.Router) {
		// Token verification is the entry point and cannot require a
		// session of its own.
		r.Post("/auth/verify", h.VerifyToken)

		r.Group(func(r chi.Router) {
			r.Use(h.requireIdentity)

			r.Post("/auth/refresh", h.RefreshToken)
			r.Get("/auth/status", h.AuthStatus)
			r.Get("/user/profile", h.UserProfile)

			// Users
			r.Get("/users", h.ListUsers)
			r.Get("/users/{id}", h.GetUser)
			r.Delete("/users/{id}", h.DeleteUser)

			// Groups
			r.Post("/groups", h.CreateGroup)
			r.Get("/groups", h.ListGroups)
			r.Post("/groups/join", h.JoinGroup)
			r.Get("/groups/{id}", h.GetGroup)
			r.Patch("/groups/{id}", h.UpdateGroup)
			r.Delete("/groups/{id}", h.DeleteGroup)
			r.Get("/groups/{id}/members", h.ListGroupMembers)
			r.Post("/groups/{id}/members", h.AddGroupMember)
			r.Delete("/groups/{id}/members/{userID}", h.RemoveGroupMember)
			r.Post("/groups/{id}/invite-code", h.RegenerateInviteCode)
			r.Put("/groups/{id}/event", h.AssignGroupEvent)

			// Events
			r.Post("/events", h.CreateEvent)
			r.Get("/events", h.ListEvents)
			r.Get("/events/{id}", h.GetEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
			r.Get("/events/{id}/attendees", h.ListEventAttendees)
			r.Post("/events/{id}/attendance", h.ConfirmAttendance)
			r.Delete("/events/{id}/attendance", h.CancelAttendance)
			r.Post("/events/{id}/attendance/group", h.ConfirmGroupAttendance)
		})
	})
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
