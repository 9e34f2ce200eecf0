package ports

import (
	"context"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// Catalog is the capability set the discovery engine consumes from the
// external music catalog. Every call is a blocking network round-trip
// and may fail with a transport or authorization error; the engine
// treats those as "no data from this call" except Authenticate, whose
// failure aborts the request.
type Catalog interface {
	// Authenticate obtains a short-lived access credential. Called once
	// per top-level request before any other call.
	Authenticate(ctx context.Context) error

	SearchPlaylists(ctx context.Context, query string, limit int) ([]domain.PlaylistSummary, error)
	SearchArtists(ctx context.Context, query string, limit int) ([]domain.ArtistSummary, error)
	ArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.TrackSummary, error)
	GetPlaylist(ctx context.Context, playlistID string) (domain.PlaylistDetail, error)
	GetPlaylistTracks(ctx context.Context, playlistID string, limit int) ([]domain.PlaylistEntry, error)
}
