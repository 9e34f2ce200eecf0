package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EventID     string `json:"eventId"`
}

type updateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxMembers  *int    `json:"maxMembers"`
}

type joinGroupRequest struct {
	InviteCode string `json:"inviteCode"`
}

type memberRequest struct {
	UserID string `json:"userId"`
}

// CreateGroup handles POST /api/groups. The authenticated user becomes
// the creator and first member.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, ok := UserFrom(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	group, err := h.groups.Create(r.Context(), req.Name, req.Description, user.ID, req.EventID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if _, err := h.users.AddToGroup(r.Context(), user.ID, group.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, group)
}

// ListGroups handles GET /api/groups with optional creatorId, eventId,
// and mine=true filters.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch {
	case q.Get("mine") == "true":
		user, ok := UserFrom(r.Context())
		if !ok {
			h.writeError(w, http.StatusUnauthorized, "missing session")
			return
		}
		h.listGroupsBy(w, r, func() (any, error) {
			return h.groups.ByMember(r.Context(), user.ID)
		})
	case q.Get("creatorId") != "":
		h.listGroupsBy(w, r, func() (any, error) {
			return h.groups.ByCreator(r.Context(), q.Get("creatorId"))
		})
	case q.Get("eventId") != "":
		h.listGroupsBy(w, r, func() (any, error) {
			return h.groups.ByEvent(r.Context(), q.Get("eventId"))
		})
	default:
		h.listGroupsBy(w, r, func() (any, error) {
			return h.groups.All(r.Context())
		})
	}
}

func (h *Handler) listGroupsBy(w http.ResponseWriter, r *http.Request, list func() (any, error)) {
	groups, err := list()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, groups)
}

// GetGroup handles GET /api/groups/{id}
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}

// JoinGroup handles POST /api/groups/join. Membership is recorded on
// both the group and the user.
func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, ok := UserFrom(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	group, err := h.groups.Join(r.Context(), req.InviteCode, user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if _, err := h.users.AddToGroup(r.Context(), user.ID, group.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, group)
}

// UpdateGroup handles PATCH /api/groups/{id}
func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req updateGroupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	group, err := h.groups.Update(r.Context(), chi.URLParam(r, "id"), req.Name, req.Description, req.MaxMembers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /api/groups/{id}
func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.groups.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGroupMembers handles GET /api/groups/{id}/members
func (h *Handler) ListGroupMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.users.ByGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, members)
}

// AddGroupMember handles POST /api/groups/{id}/members
func (h *Handler) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	groupID := chi.URLParam(r, "id")
	group, err := h.groups.AddMember(r.Context(), groupID, req.UserID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if _, err := h.users.AddToGroup(r.Context(), req.UserID, groupID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, group)
}

// RemoveGroupMember handles DELETE /api/groups/{id}/members/{userID}
func (h *Handler) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	userID := chi.URLParam(r, "userID")

	group, err := h.groups.RemoveMember(r.Context(), groupID, userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if _, err := h.users.RemoveFromGroup(r.Context(), userID, groupID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, group)
}

// RegenerateInviteCode handles POST /api/groups/{id}/invite-code
func (h *Handler) RegenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.groups.RegenerateInviteCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"inviteCode": code})
}

// AssignGroupEvent handles PUT /api/groups/{id}/event. An empty eventId
// clears the association.
func (h *Handler) AssignGroupEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventID string `json:"eventId"`
	}
	if !h.decodeBody(w, r, &req) {
		return
	}

	group, err := h.groups.AssignEvent(r.Context(), chi.URLParam(r, "id"), req.EventID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}
