package youtube

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

const playlistFixture = `{
  "kind": "youtube#playlistItemListResponse",
  "etag": "etag-1",
  "pageInfo": {"totalResults": 2, "resultsPerPage": 10},
  "items": [
    {
      "kind": "youtube#playlistItem",
      "etag": "etag-2",
      "id": "pli-1",
      "snippet": {
        "publishedAt": "2024-05-01T08:00:00Z",
        "channelId": "chan-1",
        "title": "Lesson one",
        "description": "Basics",
        "thumbnails": {
          "default": {"url": "https://img/1/default.jpg", "width": 120, "height": 90},
          "medium": {"url": "https://img/1/medium.jpg", "width": 320, "height": 180},
          "high": {"url": "https://img/1/high.jpg", "width": 480, "height": 360},
          "maxres": {"url": "https://img/1/maxres.jpg", "width": 1280, "height": 720}
        },
        "channelTitle": "English Channel",
        "playlistId": "PL123",
        "position": 0,
        "resourceId": {"kind": "youtube#video", "videoId": "vid-1"}
      },
      "contentDetails": {"videoId": "vid-1", "videoPublishedAt": "2024-05-01T08:00:00Z"}
    },
    {
      "kind": "youtube#playlistItem",
      "etag": "etag-3",
      "id": "pli-2",
      "snippet": {
        "publishedAt": "2024-05-02T08:00:00Z",
        "channelId": "chan-1",
        "title": "Lesson two",
        "description": "More basics",
        "thumbnails": {
          "default": {"url": "https://img/2/default.jpg", "width": 120, "height": 90},
          "medium": {"url": "https://img/2/medium.jpg", "width": 320, "height": 180},
          "high": {"url": "https://img/2/high.jpg", "width": 480, "height": 360}
        },
        "channelTitle": "English Channel",
        "playlistId": "PL123",
        "position": 1,
        "resourceId": {"kind": "youtube#video", "videoId": "vid-2"}
      },
      "contentDetails": {"videoId": "vid-2", "videoPublishedAt": "2024-05-02T08:00:00Z"}
    }
  ]
}`

func testClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Client{
		baseURL:    baseURL,
		apiKey:     "test-key",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

func TestFetchPlaylistItems(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, playlistFixture)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	playlist, err := client.FetchPlaylistItems(context.Background(), "PL123", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := gotQuery["playlistId"]; len(got) != 1 || got[0] != "PL123" {
		t.Fatalf("playlistId not forwarded: %v", gotQuery)
	}
	if got := gotQuery["maxResults"]; len(got) != 1 || got[0] != "10" {
		t.Fatalf("maxResults not forwarded: %v", gotQuery)
	}
	if got := gotQuery["part"]; len(got) != 1 || got[0] != "snippet,contentDetails" {
		t.Fatalf("part not forwarded: %v", gotQuery)
	}

	if len(playlist.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(playlist.Items))
	}

	first := playlist.Items[0]
	if first.VideoID() != "vid-1" {
		t.Fatalf("expected vid-1, got %s", first.VideoID())
	}
	if first.Snippet.Position != 0 || first.Snippet.Title != "Lesson one" {
		t.Fatalf("snippet mismatch: %+v", first.Snippet)
	}
	if first.Snippet.Thumbnails.Maxres == nil || first.Snippet.Thumbnails.Maxres.Width != 1280 {
		t.Fatal("optional maxres thumbnail not decoded")
	}
	if playlist.Items[1].Snippet.Thumbnails.Maxres != nil {
		t.Fatal("absent maxres thumbnail must stay nil")
	}

	want := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	if !first.Snippet.PublishedAt.Equal(want) {
		t.Fatalf("publishedAt mismatch: %v", first.Snippet.PublishedAt)
	}
}

func TestFetchPlaylistItemsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.FetchPlaylistItems(context.Background(), "PL123", 10)

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", upstream.StatusCode)
	}
	if upstream.Body == "" {
		t.Fatal("expected upstream body to be carried")
	}
}

func TestFetchPlaylistItemsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"items": [`)
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	_, err := client.FetchPlaylistItems(context.Background(), "PL123", 10)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestToUpsertSkipsItemsWithoutVideoID(t *testing.T) {
	item := PlaylistItem{ID: "pli-x"}
	if item.ToUpsert() != nil {
		t.Fatal("expected nil upsert for item without video ID")
	}

	item.Snippet.ResourceID.VideoID = "vid-9"
	up := item.ToUpsert()
	if up == nil || up.VideoID != "vid-9" {
		t.Fatalf("expected resourceId fallback, got %+v", up)
	}
}
