package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// ArtistTopTracks fetches an artist's top tracks for a fixed market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.TrackSummary, error) {
	reqURL, err := url.Parse(fmt.Sprintf("%s/artists/%s/top-tracks", c.baseURL, url.PathEscape(artistID)))
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid top tracks url: %w", err)
	}

	params := reqURL.Query()
	params.Set("market", market)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create top tracks request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: top tracks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: top tracks status %d", resp.StatusCode)
	}

	var body struct {
		Tracks []wireTrack `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: top tracks decode error: %w", err)
	}

	tracks := make([]domain.TrackSummary, 0, len(body.Tracks))
	for _, t := range body.Tracks {
		tracks = append(tracks, domain.TrackSummary{ID: t.ID, Name: t.Name})
	}
	return tracks, nil
}
