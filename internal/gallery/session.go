package gallery

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/oleonardodeandrade/english-playlist-gallery/internal/services/youtube"
	"github.com/sirupsen/logrus"
)

// Session is the transient view state of one gallery client: the selected
// video, the free-text filter, the sort mode, and the two locally
// persisted preferences (favorites, dark mode). It is single-threaded by
// design, matching the cooperative UI event loop it models.
type Session struct {
	prefs  KV
	logger *logrus.Logger

	selected      *youtube.PlaylistItem
	source        []youtube.PlaylistItem
	search        string
	mode          SortMode
	favoritesOnly bool
	favorites     map[string]bool
	darkMode      bool

	// Memoized result of Visible, invalidated on any input change.
	view      []youtube.PlaylistItem
	viewValid bool
}

// NewSession creates a session, loading persisted favorites and the dark
// mode flag from prefs. Corrupt or missing values fall back to
// empty/false.
func NewSession(prefs KV, logger *logrus.Logger) *Session {
	s := &Session{
		prefs:     prefs,
		logger:    logger,
		mode:      SortByPosition,
		favorites: map[string]bool{},
	}

	if data, err := prefs.Get(FavoritesKey); err != nil {
		logger.WithError(err).Warn("Failed to load favorites, starting empty")
	} else if data != nil {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			logger.WithError(err).Warn("Corrupt favorites value, starting empty")
		} else {
			for _, id := range ids {
				s.favorites[id] = true
			}
		}
	}

	if data, err := prefs.Get(DarkModeKey); err != nil {
		logger.WithError(err).Warn("Failed to load dark mode flag")
	} else if data != nil {
		if err := json.Unmarshal(data, &s.darkMode); err != nil {
			logger.WithError(err).Warn("Corrupt dark mode value, defaulting to light")
			s.darkMode = false
		}
	}

	return s
}

// Select makes item the playing video. There is no way back to an empty
// selection; selecting the current item again is a no-op.
func (s *Session) Select(item youtube.PlaylistItem) {
	s.selected = &item
}

// Selected returns the playing video, or nil when nothing was selected
// yet.
func (s *Session) Selected() *youtube.PlaylistItem {
	return s.selected
}

// SetSource replaces the source video list.
func (s *Session) SetSource(items []youtube.PlaylistItem) {
	s.source = items
	s.viewValid = false
}

// SetSearch replaces the free-text title filter.
func (s *Session) SetSearch(text string) {
	s.search = text
	s.viewValid = false
}

// SetSortMode replaces the presentation ordering.
func (s *Session) SetSortMode(mode SortMode) {
	s.mode = mode
	s.viewValid = false
}

// SetFavoritesOnly toggles restricting the view to favorited videos.
func (s *Session) SetFavoritesOnly(on bool) {
	s.favoritesOnly = on
	s.viewValid = false
}

// IsFavorite reports whether videoID is favorited.
func (s *Session) IsFavorite(videoID string) bool {
	return s.favorites[videoID]
}

// Favorites returns the favorited video ids, sorted for stable output.
func (s *Session) Favorites() []string {
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ToggleFavorite adds or removes videoID from the favorite set and
// persists the set best-effort.
func (s *Session) ToggleFavorite(videoID string) {
	if s.favorites[videoID] {
		delete(s.favorites, videoID)
	} else {
		s.favorites[videoID] = true
	}
	s.viewValid = false

	data, err := json.Marshal(s.Favorites())
	if err == nil {
		err = s.prefs.Set(FavoritesKey, data)
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to save favorites")
	}
}

// DarkMode reports the persisted dark mode flag.
func (s *Session) DarkMode() bool {
	return s.darkMode
}

// ToggleDarkMode flips the dark mode flag and persists it best-effort.
func (s *Session) ToggleDarkMode() {
	s.darkMode = !s.darkMode

	data, err := json.Marshal(s.darkMode)
	if err == nil {
		err = s.prefs.Set(DarkModeKey, data)
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to save dark mode flag")
	}
}

// Visible returns the filtered, sorted view of the source list: first the
// case-insensitive title substring filter, then the favorites
// restriction, then the sort mode. The result is memoized until an input
// changes; the source list is never mutated.
func (s *Session) Visible() []youtube.PlaylistItem {
	if s.viewValid {
		return s.view
	}

	filtered := make([]youtube.PlaylistItem, 0, len(s.source))
	needle := strings.ToLower(s.search)
	for _, item := range s.source {
		if needle != "" && !strings.Contains(strings.ToLower(item.Snippet.Title), needle) {
			continue
		}
		if s.favoritesOnly && !s.favorites[item.VideoID()] {
			continue
		}
		filtered = append(filtered, item)
	}

	s.view = SortVideos(filtered, s.mode)
	s.viewValid = true
	return s.view
}
