package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

type searchRequest struct {
	Genre  string `json:"genre"`
	Artist string `json:"artist"`
	Limit  int    `json:"limit"`
}

// SearchPlaylists handles POST /search
func (h *Handler) SearchPlaylists(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.runSearch(w, r, domain.SearchCriteria{
		Genre:  req.Genre,
		Artist: req.Artist,
		Limit:  req.Limit,
	})
}

// SearchPlaylistsQuery handles GET /search?genre=&artist=&limit=
func (h *Handler) SearchPlaylistsQuery(w http.ResponseWriter, r *http.Request) {
	criteria := domain.SearchCriteria{
		Genre:  r.URL.Query().Get("genre"),
		Artist: r.URL.Query().Get("artist"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		criteria.Limit = limit
	}

	h.runSearch(w, r, criteria)
}

func (h *Handler) runSearch(w http.ResponseWriter, r *http.Request, criteria domain.SearchCriteria) {
	candidates, err := h.discovery.SearchPlaylists(r.Context(), criteria)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	// An empty result is a valid answer, not an error. Encode a concrete
	// empty array rather than null.
	if candidates == nil {
		candidates = []domain.PlaylistCandidate{}
	}
	h.writeJSON(w, http.StatusOK, candidates)
}

// GetPlaylist handles GET /playlists/{id}
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.discovery.PlaylistByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, candidate)
}
