package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

// Field length limits enforced at the API boundary; the schema stores these
// as TEXT, so this is the only place bogus oversized input gets rejected.
const (
	MaxVideoIDLen   = 16 // YouTube video IDs are 11 chars today
	MaxChannelIDLen = 64 // "UC..." channel IDs are 24 chars today
	MaxHandleLen    = 64
	MaxPromptLen    = 2000
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// handleRe extracts a channel handle from a URL or raw "@handle" input.
	handleRe = regexp.MustCompile(`@([A-Za-z0-9_.-]+)`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ExtractChannelHandle pulls the "@handle" out of a channel URL. Accepts full
// URLs ("https://youtube.com/@Example"), bare "youtube.com/@Example" and raw
// "@Example" input.
func ExtractChannelHandle(channelURL string) (string, string) {
	channelURL = strings.TrimSpace(channelURL)
	if channelURL == "" {
		return "", "channelUrl is required"
	}

	m := handleRe.FindStringSubmatch(channelURL)
	if m == nil {
		return "", "Invalid YouTube channel URL, expected an @handle"
	}
	handle := "@" + m[1]
	if len(handle) > MaxHandleLen {
		return "", "Channel handle is too long"
	}
	return handle, ""
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateID parses a positive integer path parameter.
func ValidateID(raw string) (int, string) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, "id must be a positive integer"
	}
	return id, ""
}

// ValidateSettings checks an automation settings update.
func ValidateSettings(s *model.AutomationSettings) string {
	if s.DelayMinutes < 1 {
		return "delayMinutes must be at least 1"
	}
	if s.MaxCommentsPerDay < 1 {
		return "maxCommentsPerDay must be at least 1"
	}
	if strings.TrimSpace(s.AIPrompt) == "" {
		return "aiPrompt must not be empty"
	}
	if len(s.AIPrompt) > MaxPromptLen {
		return "aiPrompt is too long"
	}
	return ""
}
