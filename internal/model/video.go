package model

import "time"

// Video processing stages within the per-channel pipeline.
const (
	StageFetched   = "fetched"
	StageFiltered  = "filtered"
	StageQueued    = "queued"
	StageCompleted = "completed"
)

// Video statuses used by the automation scheduler.
const (
	VideoPending    = "pending"
	VideoProcessing = "processing"
	VideoCompleted  = "completed"
	VideoError      = "error"
)

// Video is one piece of content belonging to a Channel, deduplicated by its
// external video id. Invariant: HasCommented implies CommentText and
// CommentedAt are set.
type Video struct {
	ID              int        `json:"id"`
	VideoID         string     `json:"videoId"`
	ChannelID       int        `json:"channelId"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	PublishedAt     time.Time  `json:"publishedAt"`
	HasCommented    bool       `json:"hasCommented"`
	HasLiked        bool       `json:"hasLiked"`
	NeedsComment    bool       `json:"needsComment"`
	NeedsLike       bool       `json:"needsLike"`
	CommentText     *string    `json:"commentText,omitempty"`
	CommentedAt     *time.Time `json:"commentedAt,omitempty"`
	ProcessingStage string     `json:"processingStage"`
	Status          string     `json:"status"`
	ErrorMessage    *string    `json:"errorMessage,omitempty"`
}

// ChannelVideoStats aggregates per-stage counts for the status endpoint.
type ChannelVideoStats struct {
	TotalVideos     int `json:"totalVideos"`
	FetchedVideos   int `json:"fetchedVideos"`
	FilteredVideos  int `json:"filteredVideos"`
	QueuedVideos    int `json:"queuedVideos"`
	CompletedVideos int `json:"completedVideos"`
	NeedsComment    int `json:"needsComment"`
	NeedsLike       int `json:"needsLike"`
	Commented       int `json:"commented"`
	Liked           int `json:"liked"`
}
