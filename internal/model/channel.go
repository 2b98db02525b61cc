package model

import "time"

// Channel lifecycle statuses. A channel moves pending → fetching → fetched →
// filtering → filtered → queued → processing → completed; error is reachable
// from any active state.
const (
	ChannelPending    = "pending"
	ChannelFetching   = "fetching"
	ChannelFetched    = "fetched"
	ChannelFiltering  = "filtering"
	ChannelFiltered   = "filtered"
	ChannelQueued     = "queued"
	ChannelProcessing = "processing"
	ChannelCompleted  = "completed"
	ChannelError      = "error"
)

// Channel is a tracked YouTube channel whose videos are subject to automation.
type Channel struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Handle            string     `json:"handle"`
	ChannelID         string     `json:"channelId"`
	TotalVideos       int        `json:"totalVideos"`
	FetchedVideos     int        `json:"fetchedVideos"`
	FilteredVideos    int        `json:"filteredVideos"`
	QueuedVideos      int        `json:"queuedVideos"`
	CompletedVideos   int        `json:"completedVideos"`
	Status            string     `json:"status"`
	FetchingComplete  bool       `json:"fetchingComplete"`
	IsActive          bool       `json:"isActive"`
	LastSyncedAt      *time.Time `json:"lastSyncedAt,omitempty"`
	LastNewVideoCheck *time.Time `json:"lastNewVideoCheck,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ChannelSummary is the channel list response entry with derived progress.
type ChannelSummary struct {
	Channel
	Progress      int `json:"progress"`
	PendingVideos int `json:"pendingVideos"`
}

// Summary computes the progress decoration for the channel list endpoint.
func (c Channel) Summary() ChannelSummary {
	progress := 0
	if c.TotalVideos > 0 {
		progress = c.CompletedVideos * 100 / c.TotalVideos
	}
	pending := c.TotalVideos - c.CompletedVideos
	if pending < 0 {
		pending = 0
	}
	return ChannelSummary{Channel: c, Progress: progress, PendingVideos: pending}
}
