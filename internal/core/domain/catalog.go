package domain

// Catalog read models. These are the shapes the core consumes from the
// external music catalog; the spotify adapter maps wire responses into
// them.

// PlaylistSummary is the simplified playlist representation returned by
// catalog search. It carries no follower count; TrackCount stands in as
// a popularity proxy for genre results.
type PlaylistSummary struct {
	ID          string
	Name        string
	ExternalURL string
	ImageURL    string
	TrackCount  int
}

// PlaylistDetail is the full playlist record, including the true
// follower count when the catalog reports one.
type PlaylistDetail struct {
	ID          string
	Name        string
	ExternalURL string
	ImageURL    string
	Followers   *int
	TrackCount  int
}

// ArtistSummary is a catalog artist search hit.
type ArtistSummary struct {
	ID   string
	Name string
}

// TrackSummary is a catalog track reference.
type TrackSummary struct {
	ID   string
	Name string
}

// TrackArtist is one artist credited on a playlist track.
type TrackArtist struct {
	ID   string
	Name string
}

// PlaylistEntry is one entry of a playlist's track listing. Entries for
// non-track items (episodes, removed tracks) carry no artists.
type PlaylistEntry struct {
	TrackID string
	Name    string
	Artists []TrackArtist
}

// Candidate converts a simplified search result into a candidate,
// substituting the track count for the unavailable follower count.
func (s PlaylistSummary) Candidate() PlaylistCandidate {
	proxy := s.TrackCount
	return PlaylistCandidate{
		ID:          s.ID,
		Name:        s.Name,
		ExternalURL: s.ExternalURL,
		Followers:   &proxy,
		ImageURL:    s.ImageURL,
	}
}

// Candidate converts a full playlist record into a candidate. Followers
// stays nil when the catalog omitted it.
func (d PlaylistDetail) Candidate() PlaylistCandidate {
	return PlaylistCandidate{
		ID:          d.ID,
		Name:        d.Name,
		ExternalURL: d.ExternalURL,
		Followers:   d.Followers,
		ImageURL:    d.ImageURL,
	}
}
