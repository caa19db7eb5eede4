package youtube

import (
	"errors"
	"fmt"
)

// UpstreamError indicates the YouTube API answered with a non-2xx status.
// It carries the upstream status and body so handlers can surface them.
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error returns a string representation of the upstream error.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("YouTube API returned status %d: %s", e.StatusCode, e.Body)
}

// ErrParse indicates the upstream body was not well-formed JSON.
var ErrParse = errors.New("failed to parse YouTube API response")
