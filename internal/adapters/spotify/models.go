package spotify

import "github.com/crescendo-labs/backend/internal/core/domain"

// Wire types follow the Spotify Web API response shapes:
// https://developer.spotify.com/documentation/web-api/reference/

type wireImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type wireExternalURLs struct {
	Spotify string `json:"spotify"`
}

type wireFollowers struct {
	Total int `json:"total"`
}

type wireTrackRef struct {
	Total int `json:"total"`
}

// wirePlaylistSimple is the simplified playlist carried by search
// results. It has a track total but no follower count.
type wirePlaylistSimple struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ExternalURLs wireExternalURLs `json:"external_urls"`
	Images       []wireImage      `json:"images"`
	Tracks       wireTrackRef     `json:"tracks"`
}

func (p wirePlaylistSimple) toDomain() domain.PlaylistSummary {
	return domain.PlaylistSummary{
		ID:          p.ID,
		Name:        p.Name,
		ExternalURL: p.ExternalURLs.Spotify,
		ImageURL:    firstImageURL(p.Images),
		TrackCount:  p.Tracks.Total,
	}
}

// wirePlaylistFull is the full playlist record, follower count included.
type wirePlaylistFull struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	ExternalURLs wireExternalURLs `json:"external_urls"`
	Images       []wireImage      `json:"images"`
	Followers    *wireFollowers   `json:"followers"`
	Tracks       wireTrackRef     `json:"tracks"`
}

func (p wirePlaylistFull) toDomain() domain.PlaylistDetail {
	detail := domain.PlaylistDetail{
		ID:          p.ID,
		Name:        p.Name,
		ExternalURL: p.ExternalURLs.Spotify,
		ImageURL:    firstImageURL(p.Images),
		TrackCount:  p.Tracks.Total,
	}
	if p.Followers != nil {
		total := p.Followers.Total
		detail.Followers = &total
	}
	return detail
}

type wireArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a wireArtist) toDomain() domain.ArtistSummary {
	return domain.ArtistSummary{ID: a.ID, Name: a.Name}
}

type wireTrack struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Artists []wireArtist `json:"artists"`
}

// wirePlaylistItem wraps a track in playlist context. Track is null for
// removed or unavailable items.
type wirePlaylistItem struct {
	AddedAt string     `json:"added_at"`
	Track   *wireTrack `json:"track"`
}

func (i wirePlaylistItem) toDomain() domain.PlaylistEntry {
	if i.Track == nil {
		return domain.PlaylistEntry{}
	}
	entry := domain.PlaylistEntry{
		TrackID: i.Track.ID,
		Name:    i.Track.Name,
		Artists: make([]domain.TrackArtist, 0, len(i.Track.Artists)),
	}
	for _, a := range i.Track.Artists {
		entry.Artists = append(entry.Artists, domain.TrackArtist{ID: a.ID, Name: a.Name})
	}
	return entry
}

func firstImageURL(images []wireImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
