package domain

import "sort"

// PlaylistCandidate is an externally hosted playlist surfaced by
// discovery. Candidates are request-scoped and never persisted.
// Followers is nil when the catalog did not report a follower count;
// a nil count ranks below a known count of zero.
type PlaylistCandidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ExternalURL string `json:"spotifyUrl,omitempty"`
	Followers   *int   `json:"followers,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// ArtistIdentity is the canonical (id, name) pair a raw artist string
// resolves to. It is used only for matching, never returned to callers.
type ArtistIdentity struct {
	ID   string
	Name string
}

// VerificationOutcome records the result of sampling one candidate
// playlist for the target artist's work.
type VerificationOutcome struct {
	CandidateID   string
	SampledCount  int
	MatchedCount  int
	PresenceRatio float64
	Accepted      bool
}

// RankCandidates deduplicates candidates by id, orders them by follower
// count descending with unknown counts last, and truncates to limit.
// The first occurrence of a duplicate id wins.
func RankCandidates(candidates []PlaylistCandidate, limit int) []PlaylistCandidate {
	seen := make(map[string]struct{}, len(candidates))
	ranked := make([]PlaylistCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Followers, ranked[j].Followers
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
