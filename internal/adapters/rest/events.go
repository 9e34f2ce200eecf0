package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
}

// CreateEvent handles POST /api/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	event, err := h.events.Create(r.Context(), req.Title, req.Description, req.Date, req.Location, req.Category)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/events with optional category, location,
// attendeeId, and upcoming=true filters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		events any
		err    error
	)
	switch {
	case q.Get("upcoming") == "true":
		events, err = h.events.Upcoming(r.Context())
	case q.Get("category") != "":
		events, err = h.events.ByCategory(r.Context(), q.Get("category"))
	case q.Get("location") != "":
		events, err = h.events.ByLocation(r.Context(), q.Get("location"))
	case q.Get("attendeeId") != "":
		events, err = h.events.ByAttendee(r.Context(), q.Get("attendeeId"))
	default:
		events, err = h.events.All(r.Context())
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEventAttendees handles GET /api/events/{id}/attendees
func (h *Handler) ListEventAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.events.Attendees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if attendees == nil {
		attendees = []string{}
	}
	h.writeJSON(w, http.StatusOK, attendees)
}

// ConfirmAttendance handles POST /api/events/{id}/attendance for the
// authenticated user.
func (h *Handler) ConfirmAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	event, err := h.events.ConfirmAttendance(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}

// CancelAttendance handles DELETE /api/events/{id}/attendance for the
// authenticated user.
func (h *Handler) CancelAttendance(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	event, err := h.events.CancelAttendance(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}

// ConfirmGroupAttendance handles POST /api/events/{id}/attendance/group,
// confirming every current member of the named group.
func (h *Handler) ConfirmGroupAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID string `json:"groupId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	group, err := h.groups.ByID(r.Context(), req.GroupID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	event, err := h.events.ConfirmGroupAttendance(r.Context(), chi.URLParam(r, "id"), group.MemberIDs)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, event)
}
