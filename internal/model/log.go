package model

import "time"

// Activity log entry types consumed by the dashboard feed.
const (
	LogInfo    = "info"
	LogSuccess = "success"
	LogWarning = "warning"
	LogError   = "error"
	LogComment = "comment"
	LogLike    = "like"
	LogSystem  = "system"
)

// ActivityLog is an append-only dashboard feed entry.
type ActivityLog struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	VideoID   *string   `json:"videoId,omitempty"`
	ChannelID *int      `json:"channelId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProcessingLog is an append-only pipeline trace entry. RunID groups entries
// belonging to one pipeline run.
type ProcessingLog struct {
	ID        int       `json:"id"`
	ChannelID int       `json:"channelId"`
	VideoID   *string   `json:"videoId,omitempty"`
	RunID     string    `json:"runId"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
