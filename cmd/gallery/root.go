package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/gallery"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/oleonardodeandrade/english-playlist-gallery/internal/utils"
	"github.com/spf13/cobra"
)

// newRootCommand builds the console client: it fetches the playlist from
// the API server, runs it through the session filter pipeline, and prints
// the result. Favorites and the dark-mode flag persist across runs in a
// local prefs file.
func newRootCommand() *cobra.Command {
	var (
		apiURL        string
		playlistID    string
		maxResults    int
		sortMode      string
		search        string
		favoritesOnly bool
		toggleFav     string
		toggleDark    bool
		selectID      string
		prefsPath     string
		logLevel      string
	)

	rootCmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Console client for the English Playlist Gallery API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLogger(logLevel, false)

			if prefsPath == "" {
				homeDir, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("failed to get home directory: %w", err)
				}
				prefsPath = filepath.Join(homeDir, ".config", "english-playlist-gallery", "prefs.json")
			}

			session := gallery.NewSession(gallery.NewFileKV(prefsPath), logger)

			if toggleDark {
				session.ToggleDarkMode()
			}
			if toggleFav != "" {
				session.ToggleFavorite(toggleFav)
			}

			playlist, err := fetchPlaylist(cmd.Context(), apiURL, playlistID, maxResults)
			if err != nil {
				return err
			}

			session.SetSource(playlist.Items)
			session.SetSearch(search)
			session.SetSortMode(gallery.SortMode(sortMode))
			session.SetFavoritesOnly(favoritesOnly)

			if selectID != "" {
				for _, item := range playlist.Items {
					if item.VideoID() == selectID {
						session.Select(item)
						break
					}
				}
			}

			printGallery(cmd, session)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&apiURL, "api", "http://localhost:3000", "Base URL of the gallery API server")
	rootCmd.Flags().StringVar(&playlistID, "playlist", "", "Playlist ID (server default when empty)")
	rootCmd.Flags().IntVar(&maxResults, "max-results", 0, "Number of videos to fetch (server default when 0)")
	rootCmd.Flags().StringVar(&sortMode, "sort", string(gallery.SortByPosition), "Sort mode: position, date-desc, date-asc, title-asc, title-desc")
	rootCmd.Flags().StringVar(&search, "search", "", "Filter titles by substring")
	rootCmd.Flags().BoolVar(&favoritesOnly, "favorites-only", false, "Show only favorited videos")
	rootCmd.Flags().StringVar(&toggleFav, "toggle-favorite", "", "Toggle a video ID in the favorite set")
	rootCmd.Flags().BoolVar(&toggleDark, "toggle-dark-mode", false, "Toggle the dark mode preference")
	rootCmd.Flags().StringVar(&selectID, "select", "", "Select a video ID for playback")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "Path to the prefs file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level")

	return rootCmd
}

func fetchPlaylist(ctx context.Context, apiURL, playlistID string, maxResults int) (*youtube.PlaylistResponse, error) {
	params := url.Values{}
	if playlistID != "" {
		params.Add("playlistId", playlistID)
	}
	if maxResults > 0 {
		params.Add("maxResults", strconv.Itoa(maxResults))
	}
	listURL := strings.TrimSuffix(apiURL, "/") + "/api/videos/list"
	if encoded := params.Encode(); encoded != "" {
		listURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach gallery API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return nil, fmt.Errorf("gallery API error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("gallery API returned status %d", resp.StatusCode)
	}

	var playlist youtube.PlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&playlist); err != nil {
		return nil, fmt.Errorf("failed to decode playlist: %w", err)
	}
	return &playlist, nil
}

func printGallery(cmd *cobra.Command, session *gallery.Session) {
	out := cmd.OutOrStdout()

	theme := "light"
	if session.DarkMode() {
		theme = "dark"
	}
	fmt.Fprintf(out, "Theme: %s  Favorites: %d\n", theme, len(session.Favorites()))

	if selected := session.Selected(); selected != nil {
		fmt.Fprintf(out, "Now playing: %s (%s)\n", selected.Snippet.Title, selected.VideoID())
	}
	fmt.Fprintln(out)

	items := session.Visible()
	if len(items) == 0 {
		fmt.Fprintln(out, "No videos match the current filters.")
		return
	}
	for _, item := range items {
		marker := " "
		if session.IsFavorite(item.VideoID()) {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %3d  %s  %s  %s\n",
			marker,
			item.Snippet.Position,
			item.VideoID(),
			item.Snippet.PublishedAt.Format("2006-01-02"),
			item.Snippet.Title,
		)
	}
}
