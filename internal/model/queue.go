package model

import "time"

// Queue actions. Comments carry a higher priority than likes so the comment
// always lands first for a given video.
const (
	ActionComment = "comment"
	ActionLike    = "like"

	PriorityComment = 1
	PriorityLike    = 2
)

// Queue item statuses.
const (
	QueuePending    = "pending"
	QueueProcessing = "processing"
	QueueCompleted  = "completed"
	QueueFailed     = "failed"
)

// MaxQueueAttempts is the retry ceiling for a single queue item. Items at the
// ceiling stay failed until an operator intervenes.
const MaxQueueAttempts = 3

// QueueItem is one scheduled action (comment or like) on one video.
type QueueItem struct {
	ID           int       `json:"id"`
	ChannelID    int       `json:"channelId"`
	VideoID      string    `json:"videoId"`
	Action       string    `json:"action"`
	Priority     int       `json:"priority"`
	Status       string    `json:"status"`
	Attempts     int       `json:"attempts"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
