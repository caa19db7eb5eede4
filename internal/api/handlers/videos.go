package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/config"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/controllers"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/models"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/sirupsen/logrus"
)

// VideosHandler handles the /api/videos surface: the upstream proxy, the
// sync trigger, and reads/writes over the cached records.
type VideosHandler struct {
	cfg      *config.Config
	db       *models.Database
	fetcher  controllers.PlaylistFetcher
	syncCtrl *controllers.SyncController
	logger   *logrus.Logger
}

// NewVideosHandler creates a new videos handler
func NewVideosHandler(cfg *config.Config, db *models.Database, fetcher controllers.PlaylistFetcher, syncCtrl *controllers.SyncController, logger *logrus.Logger) *VideosHandler {
	return &VideosHandler{
		cfg:      cfg,
		db:       db,
		fetcher:  fetcher,
		syncCtrl: syncCtrl,
		logger:   logger,
	}
}

// listParams reads playlistId and maxResults from the query string,
// falling back to the configured defaults. A non-numeric maxResults is a
// validation failure.
func (h *VideosHandler) listParams(r *http.Request) (playlistID string, maxResults int, ok bool, msg string) {
	playlistID = r.URL.Query().Get("playlistId")
	if playlistID == "" {
		playlistID = h.cfg.PlaylistID
	}

	maxResults = h.cfg.NumberOfVideos
	if raw := r.URL.Query().Get("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, false, "maxResults must be a number"
		}
		maxResults = n
	}
	return playlistID, maxResults, true, ""
}

// List proxies one page of the upstream playlist response verbatim.
// GET /api/videos/list?playlistId=&maxResults=
func (h *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	playlistID, maxResults, ok, msg := h.listParams(r)
	if !ok {
		writeValidationError(w, msg)
		return
	}

	playlist, err := h.fetcher.FetchPlaylistItems(r.Context(), playlistID, maxResults)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// Sync fetches one playlist page and upserts it into the store as a
// single batch, answering with the synced records ordered by position.
// POST /api/videos/sync?playlistId=&maxResults=
func (h *VideosHandler) Sync(w http.ResponseWriter, r *http.Request) {
	playlistID, maxResults, ok, msg := h.listParams(r)
	if !ok {
		writeValidationError(w, msg)
		return
	}

	videos, err := h.syncCtrl.SyncPlaylist(r.Context(), playlistID, maxResults)
	if err != nil {
		var upstream *youtube.UpstreamError
		if errors.As(err, &upstream) || errors.Is(err, youtube.ErrParse) {
			h.writeUpstreamError(w, err)
			return
		}
		h.writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"synced": len(videos),
		"videos": videos,
	})
}

// ListStored returns the cached records ordered by playlist position.
// GET /api/videos?playlistId=
func (h *VideosHandler) ListStored(w http.ResponseWriter, r *http.Request) {
	videos, err := h.db.List(r.URL.Query().Get("playlistId"))
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// RecentStored returns cached records published at or after a given
// RFC 3339 instant, most recent first.
// GET /api/videos/recent?after=&playlistId=
func (h *VideosHandler) RecentStored(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("after")
	if raw == "" {
		writeValidationError(w, "after is required")
		return
	}
	after, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeValidationError(w, "after must be an RFC 3339 timestamp")
		return
	}

	videos, err := h.db.FindPublishedAfter(after, r.URL.Query().Get("playlistId"))
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// CountStored returns the number of cached records.
// GET /api/videos/count?playlistId=
func (h *VideosHandler) CountStored(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.Count(r.URL.Query().Get("playlistId"))
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// GetStored returns one cached record by its external video ID.
// GET /api/videos/{videoId}
func (h *VideosHandler) GetStored(w http.ResponseWriter, r *http.Request) {
	video, err := h.db.FindByVideoID(chi.URLParam(r, "videoId"))
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	if video == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Video not found"})
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// UpdateStored applies a sparse update to one cached record.
// PATCH /api/videos/{videoId}
func (h *VideosHandler) UpdateStored(w http.ResponseWriter, r *http.Request) {
	var up models.VideoUpsert
	if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
		writeValidationError(w, "request body must be a JSON video update")
		return
	}
	up.VideoID = chi.URLParam(r, "videoId")

	video, err := h.db.UpdateByVideoID(up.VideoID, &up)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	if video == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Video not found"})
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// DeleteStored removes one cached record by its external video ID.
// DELETE /api/videos/{videoId}
func (h *VideosHandler) DeleteStored(w http.ResponseWriter, r *http.Request) {
	removed, err := h.db.DeleteByVideoID(chi.URLParam(r, "videoId"))
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Video not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// DeleteAllStored removes cached records, restricted to one playlist when
// playlistId is given.
// DELETE /api/videos?playlistId=
func (h *VideosHandler) DeleteAllStored(w http.ResponseWriter, r *http.Request) {
	playlistID := r.URL.Query().Get("playlistId")

	var (
		count int
		err   error
	)
	if playlistID != "" {
		count, err = h.db.DeleteByPlaylist(playlistID)
	} else {
		count, err = h.db.DeleteAll()
	}
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": count})
}

// writeUpstreamError answers a 500 for upstream fetch or parse failures.
// The upstream message is always surfaced so the client can show it.
func (h *VideosHandler) writeUpstreamError(w http.ResponseWriter, err error) {
	h.logger.WithError(err).Error("Failed to fetch videos from YouTube")
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "Failed to fetch videos from YouTube",
		Message: err.Error(),
	})
}

// writeStorageError answers a 500 for storage failures. Detail is hidden
// in production mode.
func (h *VideosHandler) writeStorageError(w http.ResponseWriter, err error) {
	h.logger.WithError(err).Error("Storage operation failed")
	body := errorBody{Error: "Internal server error"}
	if !h.cfg.IsProduction() {
		body.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
