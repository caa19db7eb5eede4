package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/config"
	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client handles communication with the YouTube Data API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new YouTube API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}

	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  cfg.YouTubeAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// FetchPlaylistItems requests a single page of playlist items. It never
// paginates or retries; any failure is reported to the caller directly.
// Non-2xx replies become *UpstreamError, undecodable bodies wrap ErrParse.
func (c *Client) FetchPlaylistItems(ctx context.Context, playlistID string, maxResults int) (*PlaylistResponse, error) {
	params := url.Values{}
	params.Add("part", "snippet,contentDetails")
	params.Add("playlistId", playlistID)
	params.Add("key", c.apiKey)
	params.Add("maxResults", strconv.Itoa(maxResults))

	finalURL := c.baseURL + "/playlistItems?" + params.Encode()

	c.logger.WithFields(logrus.Fields{
		"playlist_id": playlistID,
		"max_results": maxResults,
	}).Debug("Fetching playlist items from YouTube")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read youtube API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("YouTube API returned non-OK status")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var playlist PlaylistResponse
	if err := json.Unmarshal(body, &playlist); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	c.logger.WithField("count", len(playlist.Items)).Debug("Playlist items fetched")

	return &playlist, nil
}
