package models

// Field length bounds enforced on upserts, mirroring the upstream API's
// documented limits for playlist item snippets.
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 5000
)

// Thumbnail is a single thumbnail variant.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ThumbnailSet groups the thumbnail variants of a video. Default, Medium
// and High are always present; Standard and Maxres only exist for videos
// uploaded in sufficient resolution.
type ThumbnailSet struct {
	Default  Thumbnail  `json:"default"`
	Medium   Thumbnail  `json:"medium"`
	High     Thumbnail  `json:"high"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}
