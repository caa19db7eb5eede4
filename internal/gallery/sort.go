// Package gallery holds the client-side view logic: presentation
// ordering, the selection/filter session, and locally persisted
// preferences.
package gallery

import (
	"sort"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode selects the presentation ordering of the gallery,
// independent of storage order.
type SortMode string

const (
	SortByPosition  SortMode = "position"
	SortByDateDesc  SortMode = "date-desc"
	SortByDateAsc   SortMode = "date-asc"
	SortByTitleAsc  SortMode = "title-asc"
	SortByTitleDesc SortMode = "title-desc"
)

// SortVideos returns a new slice holding items in the order given by
// mode. The input is never mutated. Ties keep their original relative
// order. An unrecognized mode returns the input order unchanged.
func SortVideos(items []youtube.PlaylistItem, mode SortMode) []youtube.PlaylistItem {
	sorted := make([]youtube.PlaylistItem, len(items))
	copy(sorted, items)

	switch mode {
	case SortByPosition:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Snippet.Position < sorted[j].Snippet.Position
		})
	case SortByDateDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Snippet.PublishedAt.After(sorted[j].Snippet.PublishedAt)
		})
	case SortByDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Snippet.PublishedAt.Before(sorted[j].Snippet.PublishedAt)
		})
	case SortByTitleAsc:
		c := titleCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Snippet.Title, sorted[j].Snippet.Title) < 0
		})
	case SortByTitleDesc:
		c := titleCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Snippet.Title, sorted[j].Snippet.Title) > 0
		})
	}

	return sorted
}

// titleCollator builds the locale-aware, case-insensitive comparator used
// for title ordering. Collators are not safe for concurrent use, so each
// sort gets its own.
func titleCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
