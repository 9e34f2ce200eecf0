package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// SearchPlaylists runs a keyword playlist search. Spotify pads search
// pages with null entries; those are dropped here rather than surfaced
// to the core.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]domain.PlaylistSummary, error) {
	body, err := c.search(ctx, query, "playlist", limit)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var searchBody struct {
		Playlists struct {
			Items []*wirePlaylistSimple `json:"items"`
		} `json:"playlists"`
	}
	if err := json.NewDecoder(body).Decode(&searchBody); err != nil {
		return nil, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	summaries := make([]domain.PlaylistSummary, 0, len(searchBody.Playlists.Items))
	for _, item := range searchBody.Playlists.Items {
		if item == nil {
			continue
		}
		summaries = append(summaries, item.toDomain())
	}
	return summaries, nil
}

// SearchArtists runs a keyword artist search.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]domain.ArtistSummary, error) {
	body, err := c.search(ctx, query, "artist", limit)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var searchBody struct {
		Artists struct {
			Items []*wireArtist `json:"items"`
		} `json:"artists"`
	}
	if err := json.NewDecoder(body).Decode(&searchBody); err != nil {
		return nil, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	artists := make([]domain.ArtistSummary, 0, len(searchBody.Artists.Items))
	for _, item := range searchBody.Artists.Items {
		if item == nil {
			continue
		}
		artists = append(artists, item.toDomain())
	}
	return artists, nil
}

func (c *Client) search(ctx context.Context, query, kind string, limit int) (io.ReadCloser, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	params := searchURL.Query()
	params.Set("q", query)
	params.Set("type", kind)
	params.Set("limit", strconv.Itoa(limit))
	searchURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create search request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
