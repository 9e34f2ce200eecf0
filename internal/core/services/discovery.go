package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
	"github.com/crescendo-labs/backend/internal/worker"
)

// DiscoveryConfig carries the engine's sampling thresholds and
// over-fetch factors. The defaults are empirical; they are configurable
// rather than re-derived.
type DiscoveryConfig struct {
	// SampleSize is the number of leading tracks sampled per candidate.
	SampleSize int `koanf:"sample_size"`
	// MinArtistPresence is the inclusive acceptance threshold for the
	// fraction of sampled tracks attributable to the target artist.
	MinArtistPresence float64 `koanf:"min_artist_presence"`
	// CandidateFactor bounds candidate-id accumulation at limit*factor.
	CandidateFactor int `koanf:"candidate_factor"`
	// GenreFetchFactor and GenreFetchCap size the genre search
	// over-fetch: min(limit*factor, cap).
	GenreFetchFactor int `koanf:"genre_fetch_factor"`
	GenreFetchCap    int `koanf:"genre_fetch_cap"`
	// TopTrackCount is how many of the artist's top tracks seed
	// track-scoped playlist searches.
	TopTrackCount int `koanf:"top_track_count"`
	// PerTrackLimit bounds results per track-scoped search.
	PerTrackLimit int `koanf:"per_track_limit"`
	// DirectSearchLimit bounds the raw artist-name search.
	DirectSearchLimit int `koanf:"direct_search_limit"`
	// TopTracksMarket fixes the region for top-track lookups.
	TopTracksMarket string `koanf:"top_tracks_market"`
	// VerifyWorkers bounds concurrent per-candidate verification
	// fetches. 1 means sequential.
	VerifyWorkers int `koanf:"verify_workers"`
}

// DefaultDiscoveryConfig returns the engine's reference thresholds.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		SampleSize:        20,
		MinArtistPresence: 0.15,
		CandidateFactor:   3,
		GenreFetchFactor:  2,
		GenreFetchCap:     50,
		TopTrackCount:     5,
		PerTrackLimit:     10,
		DirectSearchLimit: 30,
		TopTracksMarket:   "US",
		VerifyWorkers:     4,
	}
}

func (c DiscoveryConfig) withDefaults() DiscoveryConfig {
	def := DefaultDiscoveryConfig()
	if c.SampleSize <= 0 {
		c.SampleSize = def.SampleSize
	}
	if c.MinArtistPresence <= 0 {
		c.MinArtistPresence = def.MinArtistPresence
	}
	if c.CandidateFactor <= 0 {
		c.CandidateFactor = def.CandidateFactor
	}
	if c.GenreFetchFactor <= 0 {
		c.GenreFetchFactor = def.GenreFetchFactor
	}
	if c.GenreFetchCap <= 0 {
		c.GenreFetchCap = def.GenreFetchCap
	}
	if c.TopTrackCount <= 0 {
		c.TopTrackCount = def.TopTrackCount
	}
	if c.PerTrackLimit <= 0 {
		c.PerTrackLimit = def.PerTrackLimit
	}
	if c.DirectSearchLimit <= 0 {
		c.DirectSearchLimit = def.DirectSearchLimit
	}
	if c.TopTracksMarket == "" {
		c.TopTracksMarket = def.TopTracksMarket
	}
	if c.VerifyWorkers <= 0 {
		c.VerifyWorkers = def.VerifyWorkers
	}
	return c
}

// Discovery is the playlist discovery and content-verification engine.
// All working data is request-scoped; the engine holds no mutable state
// beyond its injected collaborators.
type Discovery struct {
	catalog ports.Catalog
	cfg     DiscoveryConfig
	pool    *worker.Pool
	logger  *log.Logger
}

// NewDiscovery constructs the engine with its catalog collaborator and
// thresholds.
func NewDiscovery(catalog ports.Catalog, cfg DiscoveryConfig, logger *log.Logger) *Discovery {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &Discovery{
		catalog: catalog,
		cfg:     cfg,
		pool:    worker.NewPool(cfg.VerifyWorkers),
		logger:  logger.With("service", "discovery"),
	}
}

// SearchPlaylists resolves criteria to a ranked, bounded set of
// candidate playlists. Genre and artist paths are mutually exclusive;
// the artist path verifies candidate content by sampling.
func (d *Discovery) SearchPlaylists(ctx context.Context, criteria domain.SearchCriteria) ([]domain.PlaylistCandidate, error) {
	crit, err := criteria.Normalized()
	if err != nil {
		return nil, err
	}

	if err := d.catalog.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAuth, err)
	}

	var candidates []domain.PlaylistCandidate
	if crit.Genre != "" {
		candidates = d.searchByGenre(ctx, crit.Genre, crit.Limit)
	} else {
		candidates = d.searchByArtist(ctx, crit.Artist, crit.Limit)
	}

	return domain.RankCandidates(candidates, crit.Limit), nil
}

// PlaylistByID fetches one playlist's full detail, bypassing discovery
// and verification. Unlike aggregate search, a miss here is an error.
func (d *Discovery) PlaylistByID(ctx context.Context, playlistID string) (domain.PlaylistCandidate, error) {
	if strings.TrimSpace(playlistID) == "" {
		return domain.PlaylistCandidate{}, domain.InvalidCriteriaError{Reason: "playlist id is required"}
	}

	if err := d.catalog.Authenticate(ctx); err != nil {
		return domain.PlaylistCandidate{}, fmt.Errorf("%w: %v", domain.ErrCatalogAuth, err)
	}

	detail, err := d.catalog.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PlaylistCandidate{}, domain.ErrNotFound
		}
		return domain.PlaylistCandidate{}, fmt.Errorf("fetch playlist %s: %w", playlistID, err)
	}

	return detail.Candidate(), nil
}

// searchByGenre issues one over-fetched catalog search and maps the
// simplified results. Catalog failure degrades to zero candidates.
func (d *Discovery) searchByGenre(ctx context.Context, genre string, limit int) []domain.PlaylistCandidate {
	fetch := limit * d.cfg.GenreFetchFactor
	if fetch > d.cfg.GenreFetchCap {
		fetch = d.cfg.GenreFetchCap
	}

	summaries, err := d.catalog.SearchPlaylists(ctx, genre, fetch)
	if err != nil {
		d.logger.Warn("genre search failed", "genre", genre, "err", err)
		return nil
	}

	candidates := make([]domain.PlaylistCandidate, 0, len(summaries))
	for _, s := range summaries {
		candidates = append(candidates, s.Candidate())
	}
	return candidates
}

// searchByArtist resolves the artist identity, gathers candidate ids
// from both discovery strategies, and keeps only content-verified
// playlists. An unresolvable artist yields an empty result, not an
// error.
func (d *Discovery) searchByArtist(ctx context.Context, artistName string, limit int) []domain.PlaylistCandidate {
	identity, err := d.resolveArtist(ctx, artistName)
	if err != nil {
		d.logger.Info("artist did not resolve", "artist", artistName, "err", err)
		return nil
	}

	ids := d.gatherCandidateIDs(ctx, identity, artistName, limit)
	if len(ids) == 0 {
		return nil
	}

	return d.verifyCandidates(ctx, ids, identity, limit)
}

// resolveArtist maps a raw artist name to its canonical identity via a
// single best-match search.
func (d *Discovery) resolveArtist(ctx context.Context, artistName string) (domain.ArtistIdentity, error) {
	artists, err := d.catalog.SearchArtists(ctx, artistName, 1)
	if err != nil {
		d.logger.Warn("artist search failed", "artist", artistName, "err", err)
		return domain.ArtistIdentity{}, domain.ArtistNotFoundError{Name: artistName}
	}
	if len(artists) == 0 {
		return domain.ArtistIdentity{}, domain.ArtistNotFoundError{Name: artistName}
	}
	return domain.ArtistIdentity{ID: artists[0].ID, Name: artists[0].Name}, nil
}

// gatherCandidateIDs unions two discovery strategies into a candidate
// id set. Strategy 1 searches playlists scoped to the artist's top
// tracks, stopping once limit*CandidateFactor ids have accumulated.
// Strategy 2 always runs one raw-name search: it surfaces
// differently-ranked playlists that verification may accept and the
// track-scoped searches may miss.
func (d *Discovery) gatherCandidateIDs(ctx context.Context, identity domain.ArtistIdentity, artistName string, limit int) []string {
	maxCandidates := limit * d.cfg.CandidateFactor
	found := make(map[string]struct{})

	tracks, err := d.catalog.ArtistTopTracks(ctx, identity.ID, d.cfg.TopTracksMarket)
	if err != nil {
		d.logger.Warn("top tracks lookup failed", "artist", identity.ID, "err", err)
	}
	if len(tracks) > d.cfg.TopTrackCount {
		tracks = tracks[:d.cfg.TopTrackCount]
	}

	for _, track := range tracks {
		if len(found) >= maxCandidates {
			break
		}
		summaries, err := d.catalog.SearchPlaylists(ctx, "track:"+track.ID, d.cfg.PerTrackLimit)
		if err != nil {
			// Skip this track, the remaining ones may still surface candidates.
			d.logger.Debug("track-scoped search failed", "track", track.ID, "err", err)
			continue
		}
		for _, s := range summaries {
			found[s.ID] = struct{}{}
		}
	}

	summaries, err := d.catalog.SearchPlaylists(ctx, artistName, d.cfg.DirectSearchLimit)
	if err != nil {
		d.logger.Warn("direct-name search failed", "artist", artistName, "err", err)
	}
	for _, s := range summaries {
		found[s.ID] = struct{}{}
	}

	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	return ids
}

// verifyCandidates fans candidate ids out to the verification pool and
// collects up to limit accepted playlists in full detail.
func (d *Discovery) verifyCandidates(ctx context.Context, ids []string, identity domain.ArtistIdentity, limit int) []domain.PlaylistCandidate {
	return d.pool.Run(ctx, ids, limit, func(ctx context.Context, id string) (domain.PlaylistCandidate, bool) {
		outcome, detail, err := d.verifyCandidate(ctx, id, identity)
		if err != nil {
			d.logger.Warn("candidate skipped", "playlist", id, "err", err)
			return domain.PlaylistCandidate{}, false
		}
		d.logger.Debug("candidate verified",
			"playlist", id,
			"sampled", outcome.SampledCount,
			"matched", outcome.MatchedCount,
			"accepted", outcome.Accepted)
		if !outcome.Accepted {
			return domain.PlaylistCandidate{}, false
		}
		return detail.Candidate(), true
	})
}

// verifyCandidate fetches one candidate's detail and track sample and
// scores the target artist's presence.
func (d *Discovery) verifyCandidate(ctx context.Context, playlistID string, identity domain.ArtistIdentity) (domain.VerificationOutcome, domain.PlaylistDetail, error) {
	detail, err := d.catalog.GetPlaylist(ctx, playlistID)
	if err != nil {
		return domain.VerificationOutcome{CandidateID: playlistID}, domain.PlaylistDetail{}, fmt.Errorf("fetch playlist: %w", err)
	}

	entries, err := d.catalog.GetPlaylistTracks(ctx, playlistID, d.cfg.SampleSize)
	if err != nil {
		return domain.VerificationOutcome{CandidateID: playlistID}, domain.PlaylistDetail{}, fmt.Errorf("fetch playlist tracks: %w", err)
	}

	return scorePresence(playlistID, entries, identity, d.cfg.SampleSize, d.cfg.MinArtistPresence), detail, nil
}

// scorePresence samples up to sampleSize leading entries and computes
// the fraction attributable to the target artist. A track matches when
// any credited artist matches by id, or by name case-insensitively;
// multiple matching artists on one track still count once. An empty
// sample is always rejected.
func scorePresence(candidateID string, entries []domain.PlaylistEntry, identity domain.ArtistIdentity, sampleSize int, threshold float64) domain.VerificationOutcome {
	if len(entries) > sampleSize {
		entries = entries[:sampleSize]
	}

	matched := 0
	for _, entry := range entries {
		for _, artist := range entry.Artists {
			if artist.ID == identity.ID || strings.EqualFold(artist.Name, identity.Name) {
				matched++
				break
			}
		}
	}

	outcome := domain.VerificationOutcome{
		CandidateID:  candidateID,
		SampledCount: len(entries),
		MatchedCount: matched,
	}
	if outcome.SampledCount == 0 {
		return outcome
	}
	outcome.PresenceRatio = float64(outcome.MatchedCount) / float64(outcome.SampledCount)
	outcome.Accepted = outcome.PresenceRatio >= threshold
	return outcome
}
