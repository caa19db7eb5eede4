package youtube

import (
	"time"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
)

// PlaylistResponse is one page of the upstream playlistItems endpoint.
type PlaylistResponse struct {
	Kind          string         `json:"kind"`
	Etag          string         `json:"etag"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
	PrevPageToken string         `json:"prevPageToken,omitempty"`
	PageInfo      PageInfo       `json:"pageInfo"`
	Items         []PlaylistItem `json:"items"`
}

// PageInfo describes upstream pagination counters.
type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// PlaylistItem is a single entry of a playlist page.
type PlaylistItem struct {
	Kind           string         `json:"kind"`
	Etag           string         `json:"etag"`
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

// Snippet carries the item metadata.
type Snippet struct {
	PublishedAt  time.Time           `json:"publishedAt"`
	ChannelID    string              `json:"channelId"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Thumbnails   models.ThumbnailSet `json:"thumbnails"`
	ChannelTitle string              `json:"channelTitle"`
	PlaylistID   string              `json:"playlistId"`
	Position     int                 `json:"position"`
	ResourceID   ResourceID          `json:"resourceId"`
}

// ResourceID references the underlying video.
type ResourceID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// ContentDetails carries the video reference of the item.
type ContentDetails struct {
	VideoID          string `json:"videoId"`
	VideoPublishedAt string `json:"videoPublishedAt,omitempty"`
}

// VideoID returns the underlying video ID, preferring contentDetails over
// the snippet resource reference.
func (item *PlaylistItem) VideoID() string {
	if item.ContentDetails.VideoID != "" {
		return item.ContentDetails.VideoID
	}
	return item.Snippet.ResourceID.VideoID
}

// ToUpsert converts a playlist item into the sparse attribute set the
// store synchronizes on. Items without a video ID yield nil and are
// skipped by the caller.
func (item *PlaylistItem) ToUpsert() *models.VideoUpsert {
	videoID := item.VideoID()
	if videoID == "" {
		return nil
	}

	s := item.Snippet
	thumbnails := s.Thumbnails
	publishedAt := s.PublishedAt
	return &models.VideoUpsert{
		VideoID:      videoID,
		Title:        &s.Title,
		Description:  &s.Description,
		Thumbnails:   &thumbnails,
		PublishedAt:  &publishedAt,
		ChannelID:    &s.ChannelID,
		ChannelTitle: &s.ChannelTitle,
		PlaylistID:   &s.PlaylistID,
		Position:     &s.Position,
	}
}
