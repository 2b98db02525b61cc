package youtube

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	// ErrChannelNotFound means the handle or channel id resolved to nothing.
	ErrChannelNotFound = errors.New("channel not found")
	// ErrVideoNotFound means the video id resolved to nothing.
	ErrVideoNotFound = errors.New("video not found")
	// ErrAuthRequired means a write or "as me" read was attempted without a
	// stored token pair. Never retried with a different credential.
	ErrAuthRequired = errors.New("youtube authentication required")
	// ErrNoUploadsPlaylist means the channel exposes no uploads container.
	ErrNoUploadsPlaylist = errors.New("channel uploads playlist not found")
)

// IsQuotaError classifies a Data API failure as quota exhaustion: a 403 whose
// message mentions quota or exceeded. Only these trigger key rotation.
func IsQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != 403 {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	if strings.Contains(msg, "quota") || strings.Contains(msg, "exceeded") {
		return true
	}
	for _, e := range apiErr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" {
			return true
		}
	}
	return false
}

// IsNotFound reports whether the error is a 404-class or sentinel not-found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrChannelNotFound) || errors.Is(err, ErrVideoNotFound) {
		return true
	}
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}
