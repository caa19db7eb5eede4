package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// UpsertBatch applies a batch of sparse upserts keyed by VideoID inside a
// single write transaction: either every element is applied or none is.
// It returns the records just written, ordered ascending by position.
func (db *Database) UpsertBatch(upserts []*VideoUpsert) ([]*Video, error) {
	for i, up := range upserts {
		if up == nil || up.VideoID == "" {
			return nil, fmt.Errorf("upsert %d has no video ID", i)
		}
	}
	if len(upserts) == 0 {
		return []*Video{}, nil
	}

	now := time.Now()
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		for _, up := range upserts {
			var video Video
			err := db.store.TxFindOne(tx, &video, bolthold.Where("VideoID").Eq(up.VideoID))
			switch {
			case err == nil:
				up.apply(&video)
				video.UpdatedAt = now
				if err := db.store.TxUpdate(tx, video.ID, &video); err != nil {
					return fmt.Errorf("failed to update video %s: %w", up.VideoID, err)
				}
			case errors.Is(err, bolthold.ErrNotFound):
				video = Video{
					VideoID:   up.VideoID,
					CreatedAt: now,
					UpdatedAt: now,
				}
				up.apply(&video)
				if err := db.store.TxInsert(tx, bolthold.NextSequence(), &video); err != nil {
					return fmt.Errorf("failed to insert video %s: %w", up.VideoID, err)
				}
			default:
				return fmt.Errorf("failed to look up video %s: %w", up.VideoID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]interface{}, len(upserts))
	for i, up := range upserts {
		ids[i] = up.VideoID
	}
	var videos []*Video
	if err := db.store.Find(&videos, bolthold.Where("VideoID").In(ids...).SortBy("Position")); err != nil {
		return nil, fmt.Errorf("failed to read back synced videos: %w", err)
	}
	return videos, nil
}

// List retrieves all videos ordered by playlist position. An empty
// playlistID returns every stored video.
func (db *Database) List(playlistID string) ([]*Video, error) {
	query := &bolthold.Query{}
	if playlistID != "" {
		query = bolthold.Where("PlaylistID").Eq(playlistID)
	}
	videos := []*Video{}
	err := db.store.Find(&videos, query.SortBy("Position"))
	return videos, err
}

// FindByVideoID retrieves a video by its external ID. A missing record is
// reported as (nil, nil), not an error.
func (db *Database) FindByVideoID(videoID string) (*Video, error) {
	var video Video
	err := db.store.FindOne(&video, bolthold.Where("VideoID").Eq(videoID))
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByID retrieves a video by its internal key. A missing record is
// reported as (nil, nil), not an error.
func (db *Database) FindByID(id uint64) (*Video, error) {
	var video Video
	err := db.store.Get(id, &video)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// FindByPlaylist retrieves all videos of one playlist ordered by position.
func (db *Database) FindByPlaylist(playlistID string) ([]*Video, error) {
	videos := []*Video{}
	err := db.store.Find(&videos, bolthold.Where("PlaylistID").Eq(playlistID).SortBy("Position"))
	return videos, err
}

// FindPublishedAfter retrieves videos published at or after the given
// instant, most recent first. An empty playlistID searches all playlists.
func (db *Database) FindPublishedAfter(after time.Time, playlistID string) ([]*Video, error) {
	query := bolthold.Where("PublishedAt").Ge(after)
	if playlistID != "" {
		query = query.And("PlaylistID").Eq(playlistID)
	}
	videos := []*Video{}
	err := db.store.Find(&videos, query.SortBy("PublishedAt").Reverse())
	return videos, err
}

// UpdateByVideoID applies a sparse update to one video and returns the
// post-update record, or (nil, nil) if no record matched.
func (db *Database) UpdateByVideoID(videoID string, up *VideoUpsert) (*Video, error) {
	var video Video
	found := false
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		err := db.store.TxFindOne(tx, &video, bolthold.Where("VideoID").Eq(videoID))
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		up.apply(&video)
		video.UpdatedAt = time.Now()
		found = true
		return db.store.TxUpdate(tx, video.ID, &video)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update video %s: %w", videoID, err)
	}
	if !found {
		return nil, nil
	}
	return &video, nil
}

// DeleteByVideoID removes one video and reports whether a record was
// actually removed. Deleting an absent ID is not an error.
func (db *Database) DeleteByVideoID(videoID string) (bool, error) {
	removed := false
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		var video Video
		err := db.store.TxFindOne(tx, &video, bolthold.Where("VideoID").Eq(videoID))
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := db.store.TxDelete(tx, video.ID, &Video{}); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete video %s: %w", videoID, err)
	}
	return removed, nil
}

// DeleteByPlaylist removes all videos of one playlist and returns how many
// records were removed.
func (db *Database) DeleteByPlaylist(playlistID string) (int, error) {
	return db.deleteMatching(bolthold.Where("PlaylistID").Eq(playlistID))
}

// DeleteAll removes every video and returns how many records were removed.
func (db *Database) DeleteAll() (int, error) {
	return db.deleteMatching(&bolthold.Query{})
}

func (db *Database) deleteMatching(query *bolthold.Query) (int, error) {
	count := 0
	err := db.store.Bolt().Update(func(tx *bbolt.Tx) error {
		n, err := db.store.TxCount(tx, &Video{}, query)
		if err != nil {
			return err
		}
		if err := db.store.TxDeleteMatching(tx, &Video{}, query); err != nil {
			return err
		}
		count = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete videos: %w", err)
	}
	return count, nil
}

// Count returns the number of stored videos, optionally restricted to one
// playlist.
func (db *Database) Count(playlistID string) (int, error) {
	query := &bolthold.Query{}
	if playlistID != "" {
		query = bolthold.Where("PlaylistID").Eq(playlistID)
	}
	return db.store.Count(&Video{}, query)
}
