package controllers

import (
	"context"
	"fmt"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/sirupsen/logrus"
)

// PlaylistFetcher fetches one page of playlist items from the upstream
// source. Satisfied by *youtube.Client.
type PlaylistFetcher interface {
	FetchPlaylistItems(ctx context.Context, playlistID string, maxResults int) (*youtube.PlaylistResponse, error)
}

// SyncController mirrors upstream playlist pages into the video store
type SyncController struct {
	db      *models.Database
	fetcher PlaylistFetcher
	logger  *logrus.Logger
}

// NewSyncController creates a new sync controller
func NewSyncController(db *models.Database, fetcher PlaylistFetcher, logger *logrus.Logger) *SyncController {
	return &SyncController{
		db:      db,
		fetcher: fetcher,
		logger:  logger,
	}
}

// SyncPlaylist fetches one page of the playlist and upserts every item
// into the store as a single batch. It returns the synced records ordered
// ascending by playlist position. Records outside the fetched page are
// left untouched.
func (c *SyncController) SyncPlaylist(ctx context.Context, playlistID string, maxResults int) ([]*models.Video, error) {
	c.logger.WithFields(logrus.Fields{
		"playlist_id": playlistID,
		"max_results": maxResults,
	}).Info("Syncing playlist")

	playlist, err := c.fetcher.FetchPlaylistItems(ctx, playlistID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
	}

	upserts := make([]*models.VideoUpsert, 0, len(playlist.Items))
	for _, item := range playlist.Items {
		up := item.ToUpsert()
		if up == nil {
			c.logger.WithField("item_id", item.ID).Warn("Playlist item has no video ID, skipping")
			continue
		}
		upserts = append(upserts, up)
	}

	videos, err := c.db.UpsertBatch(upserts)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert playlist items: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"playlist_id": playlistID,
		"synced":      len(videos),
	}).Info("Playlist sync completed")

	return videos, nil
}
