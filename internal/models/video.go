package models

import "time"

// Video is one cached playlist entry. VideoID is the stable identifier
// assigned by YouTube and is unique across the store; ID is the internal
// surrogate key assigned by bolthold.
type Video struct {
	ID      uint64 `boltholdKey:"ID" json:"id"`
	VideoID string `boltholdIndex:"VideoID" json:"videoId"`

	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnails  ThumbnailSet `json:"thumbnails"`

	PublishedAt  time.Time `json:"publishedAt"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`

	// Playlist membership. Position is the zero-based rank assigned by
	// YouTube and defines the default ordering within a playlist.
	PlaylistID string `boltholdIndex:"PlaylistID" json:"playlistId"`
	Position   int    `json:"position"`

	// Metadata
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VideoUpsert is a sparse set of video attributes keyed by VideoID.
// Nil fields are left untouched on update; on insert they take their
// zero values. VideoID itself is immutable once stored.
type VideoUpsert struct {
	VideoID string `json:"videoId"`

	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Thumbnails  *ThumbnailSet `json:"thumbnails,omitempty"`

	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	ChannelID    *string    `json:"channelId,omitempty"`
	ChannelTitle *string    `json:"channelTitle,omitempty"`

	PlaylistID *string `json:"playlistId,omitempty"`
	Position   *int    `json:"position,omitempty"`
}

// apply copies the provided fields onto v, truncating over-long text to
// the schema bounds. Absent fields keep their stored values.
func (u *VideoUpsert) apply(v *Video) {
	if u.Title != nil {
		v.Title = truncate(*u.Title, MaxTitleLength)
	}
	if u.Description != nil {
		v.Description = truncate(*u.Description, MaxDescriptionLength)
	}
	if u.Thumbnails != nil {
		v.Thumbnails = *u.Thumbnails
	}
	if u.PublishedAt != nil {
		v.PublishedAt = *u.PublishedAt
	}
	if u.ChannelID != nil {
		v.ChannelID = *u.ChannelID
	}
	if u.ChannelTitle != nil {
		v.ChannelTitle = *u.ChannelTitle
	}
	if u.PlaylistID != nil {
		v.PlaylistID = *u.PlaylistID
	}
	if u.Position != nil {
		p := *u.Position
		if p < 0 {
			p = 0
		}
		v.Position = p
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
