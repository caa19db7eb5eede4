package controllers

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/sirupsen/logrus"
)

type fakeFetcher struct {
	playlist *youtube.PlaylistResponse
	err      error
}

func (f *fakeFetcher) FetchPlaylistItems(ctx context.Context, playlistID string, maxResults int) (*youtube.PlaylistResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.playlist, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDB(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "videos.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func playlistItem(videoID, title string, position int) youtube.PlaylistItem {
	return youtube.PlaylistItem{
		ID: "pli-" + videoID,
		Snippet: youtube.Snippet{
			Title:       title,
			PublishedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			PlaylistID:  "PL123",
			Position:    position,
			ResourceID:  youtube.ResourceID{Kind: "youtube#video", VideoID: videoID},
		},
		ContentDetails: youtube.ContentDetails{VideoID: videoID},
	}
}

func TestSyncPlaylistUpsertsAndOrders(t *testing.T) {
	db := newTestDB(t)
	fetcher := &fakeFetcher{playlist: &youtube.PlaylistResponse{
		Items: []youtube.PlaylistItem{
			playlistItem("b", "Second", 1),
			playlistItem("a", "First", 0),
		},
	}}

	ctrl := NewSyncController(db, fetcher, testLogger())
	videos, err := ctrl.SyncPlaylist(context.Background(), "PL123", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 synced videos, got %d", len(videos))
	}
	if videos[0].VideoID != "a" || videos[1].VideoID != "b" {
		t.Fatalf("expected position order a,b, got %s,%s", videos[0].VideoID, videos[1].VideoID)
	}

	// A second sync of the same page is idempotent.
	videos, err = ctrl.SyncPlaylist(context.Background(), "PL123", 10)
	if err != nil {
		t.Fatal(err)
	}
	count, err := db.Count("")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || len(videos) != 2 {
		t.Fatalf("expected idempotent resync, got count=%d", count)
	}
}

func TestSyncPlaylistSkipsItemsWithoutVideoID(t *testing.T) {
	db := newTestDB(t)
	fetcher := &fakeFetcher{playlist: &youtube.PlaylistResponse{
		Items: []youtube.PlaylistItem{
			playlistItem("a", "First", 0),
			{ID: "pli-broken"},
		},
	}}

	ctrl := NewSyncController(db, fetcher, testLogger())
	videos, err := ctrl.SyncPlaylist(context.Background(), "PL123", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 1 || videos[0].VideoID != "a" {
		t.Fatalf("expected only the valid item, got %+v", videos)
	}
}

func TestSyncPlaylistPropagatesFetchErrors(t *testing.T) {
	db := newTestDB(t)
	upstream := &youtube.UpstreamError{StatusCode: 403, Body: "quota exceeded"}
	fetcher := &fakeFetcher{err: upstream}

	ctrl := NewSyncController(db, fetcher, testLogger())
	_, err := ctrl.SyncPlaylist(context.Background(), "PL123", 10)

	var got *youtube.UpstreamError
	if !errors.As(err, &got) {
		t.Fatalf("expected wrapped *UpstreamError, got %v", err)
	}

	count, err := db.Count("")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("failed sync must not write, got %d records", count)
	}
}
