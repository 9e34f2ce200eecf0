package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// GetPlaylist fetches one playlist's full record, follower count
// included. A catalog 404 maps to domain.ErrNotFound.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (domain.PlaylistDetail, error) {
	reqURL := fmt.Sprintf("%s/playlists/%s", c.baseURL, url.PathEscape(playlistID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.PlaylistDetail{}, fmt.Errorf("spotify adapter: failed to create playlist request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.PlaylistDetail{}, fmt.Errorf("spotify adapter: playlist request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.PlaylistDetail{}, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.PlaylistDetail{}, fmt.Errorf("spotify adapter: playlist status %d", resp.StatusCode)
	}

	var playlist wirePlaylistFull
	if err := json.NewDecoder(resp.Body).Decode(&playlist); err != nil {
		return domain.PlaylistDetail{}, fmt.Errorf("spotify adapter: playlist decode error: %w", err)
	}

	return playlist.toDomain(), nil
}

// GetPlaylistTracks fetches the leading entries of a playlist's track
// listing. Entries whose track is null come back without artists and
// never match.
func (c *Client) GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]domain.PlaylistEntry, error) {
	reqURL, err := url.Parse(fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, url.PathEscape(playlistID)))
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid playlist tracks url: %w", err)
	}

	params := reqURL.Query()
	params.Set("limit", strconv.Itoa(limit))
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create playlist tracks request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: playlist tracks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: playlist tracks status %d", resp.StatusCode)
	}

	var body struct {
		Items []wirePlaylistItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: playlist tracks decode error: %w", err)
	}

	entries := make([]domain.PlaylistEntry, 0, len(body.Items))
	for _, item := range body.Items {
		entries = append(entries, item.toDomain())
	}
	return entries, nil
}
