package gallery

import (
	"strings"
	"testing"
	"time"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
)

func testItem(videoID, title string, position int, publishedAt time.Time) youtube.PlaylistItem {
	return youtube.PlaylistItem{
		ID: "pli-" + videoID,
		Snippet: youtube.Snippet{
			Title:       title,
			Position:    position,
			PublishedAt: publishedAt,
			ResourceID:  youtube.ResourceID{Kind: "youtube#video", VideoID: videoID},
		},
		ContentDetails: youtube.ContentDetails{VideoID: videoID},
	}
}

func testItems() []youtube.PlaylistItem {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []youtube.PlaylistItem{
		testItem("c", "banana", 2, base.Add(48*time.Hour)),
		testItem("a", "Apple", 0, base.Add(24*time.Hour)),
		testItem("d", "cherry", 3, base),
		testItem("b", "apricot", 1, base.Add(72*time.Hour)),
	}
}

func ids(items []youtube.PlaylistItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].VideoID()
	}
	return out
}

func TestSortVideosIsPermutationAndPure(t *testing.T) {
	modes := []SortMode{SortByPosition, SortByDateDesc, SortByDateAsc, SortByTitleAsc, SortByTitleDesc, SortMode("bogus")}

	for _, mode := range modes {
		input := testItems()
		inputIDs := ids(input)

		sorted := SortVideos(input, mode)

		if len(sorted) != len(input) {
			t.Fatalf("mode %s: expected %d items, got %d", mode, len(input), len(sorted))
		}

		// Input order must be untouched.
		for i, id := range ids(input) {
			if id != inputIDs[i] {
				t.Errorf("mode %s: input mutated at %d", mode, i)
			}
		}

		// Same multiset of ids.
		seen := map[string]int{}
		for _, id := range inputIDs {
			seen[id]++
		}
		for _, id := range ids(sorted) {
			seen[id]--
		}
		for id, n := range seen {
			if n != 0 {
				t.Errorf("mode %s: id %s count off by %d", mode, id, n)
			}
		}
	}
}

func TestSortVideosByPosition(t *testing.T) {
	sorted := SortVideos(testItems(), SortByPosition)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Snippet.Position > sorted[i].Snippet.Position {
			t.Fatalf("positions not non-decreasing at %d: %v", i, ids(sorted))
		}
	}
}

func TestSortVideosByDate(t *testing.T) {
	desc := SortVideos(testItems(), SortByDateDesc)
	for i := 1; i < len(desc); i++ {
		if desc[i-1].Snippet.PublishedAt.Before(desc[i].Snippet.PublishedAt) {
			t.Fatalf("date-desc not non-increasing at %d", i)
		}
	}

	asc := SortVideos(testItems(), SortByDateAsc)
	for i := 1; i < len(asc); i++ {
		if asc[i-1].Snippet.PublishedAt.After(asc[i].Snippet.PublishedAt) {
			t.Fatalf("date-asc not non-decreasing at %d", i)
		}
	}
}

func TestSortVideosByTitleIgnoresCase(t *testing.T) {
	sorted := SortVideos(testItems(), SortByTitleAsc)
	got := ids(sorted)
	want := []string{"a", "b", "c", "d"} // Apple, apricot, banana, cherry
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("title-asc order: got %v, want %v", got, want)
		}
	}

	reversed := SortVideos(testItems(), SortByTitleDesc)
	gotDesc := ids(reversed)
	for i := range want {
		if gotDesc[i] != want[len(want)-1-i] {
			t.Fatalf("title-desc order: got %v", gotDesc)
		}
	}
}

func TestSortVideosUnknownModeKeepsInputOrder(t *testing.T) {
	input := testItems()
	sorted := SortVideos(input, SortMode("shuffle"))

	for i := range input {
		if sorted[i].VideoID() != input[i].VideoID() {
			t.Fatalf("unknown mode reordered items: %v", ids(sorted))
		}
	}
}

func TestSortVideosStableOnEqualKeys(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []youtube.PlaylistItem{
		testItem("first", "Same Title", 0, base),
		testItem("second", "same title", 1, base),
		testItem("third", "SAME TITLE", 2, base),
	}

	sorted := SortVideos(input, SortByTitleAsc)
	got := strings.Join(ids(sorted), ",")
	if got != "first,second,third" {
		t.Fatalf("equal titles lost original order: %s", got)
	}
}
