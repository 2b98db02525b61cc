package model

// StatsResponse is the dashboard stats endpoint payload.
type StatsResponse struct {
	TotalChannels   int `json:"totalChannels"`
	ActiveChannels  int `json:"activeChannels"`
	TotalVideos     int `json:"totalVideos"`
	CompletedVideos int `json:"completedVideos"`
	CommentsToday   int `json:"commentsToday"`
	PendingQueue    int `json:"pendingQueue"`
}

// ChannelProcessingStatus is the per-channel pipeline inspection payload.
type ChannelProcessingStatus struct {
	Channel      Channel           `json:"channel"`
	Stats        ChannelVideoStats `json:"stats"`
	Logs         []ProcessingLog   `json:"logs"`
	IsProcessing bool              `json:"isProcessing"`
}
