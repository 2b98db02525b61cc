package service

import (
	"context"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

// defaultAccountID is the seeded single-operator account.
const defaultAccountID = 1

// Store is the persistence contract the services run against. The pgx-backed
// *repository.Store satisfies it; tests use in-memory fakes.
type Store interface {
	AccountStore
	ChannelStore
	VideoStore
	QueueStore
	SettingsStore
	LogStore
	QuotaStore
	StatsStore
}

type AccountStore interface {
	GetAccount(ctx context.Context, id int) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	CreateAccount(ctx context.Context, username, password string) (*model.Account, error)
	UpdateAccountTokens(ctx context.Context, id int, accessToken, refreshToken, channelID string) error
	ClearAccountTokens(ctx context.Context, id int) error
}

type ChannelStore interface {
	CreateChannel(ctx context.Context, ch *model.Channel) (*model.Channel, error)
	GetChannel(ctx context.Context, id int) (*model.Channel, error)
	GetChannelByHandle(ctx context.Context, handle string) (*model.Channel, error)
	GetAllChannels(ctx context.Context) ([]model.Channel, error)
	GetActiveChannels(ctx context.Context) ([]model.Channel, error)
	UpdateChannelStatus(ctx context.Context, id int, status string) error
	MarkChannelFetched(ctx context.Context, id, fetchedVideos int) error
	MarkChannelFiltered(ctx context.Context, id, filteredVideos int) error
	MarkChannelQueued(ctx context.Context, id, queuedActions int) error
	MarkChannelCompleted(ctx context.Context, id, completedVideos int) error
	AddChannelVideos(ctx context.Context, id, newVideos int) error
	TouchNewVideoCheck(ctx context.Context, id int) error
	DeleteChannel(ctx context.Context, id int) error
}

type VideoStore interface {
	CreateVideo(ctx context.Context, v *model.Video) (bool, error)
	GetVideo(ctx context.Context, videoID string) (*model.Video, error)
	GetVideosByChannel(ctx context.Context, channelID int) ([]model.Video, error)
	GetVideosNeedingAction(ctx context.Context, channelID int) ([]model.Video, error)
	GetNextPendingVideo(ctx context.Context) (*model.Video, error)
	GetLatestVideoForChannel(ctx context.Context, channelID int) (*model.Video, error)
	UpdateVideoEngagement(ctx context.Context, videoID string, hasCommented, hasLiked, needsComment, needsLike bool, commentText *string, stage string) error
	UpdateVideoStage(ctx context.Context, videoID, stage string) error
	UpdateVideoStatus(ctx context.Context, videoID, status string, errorMessage *string) error
	UpdateVideoComment(ctx context.Context, videoID, commentText string) error
	UpdateVideoLike(ctx context.Context, videoID string) error
	GetCompletedVideosCount(ctx context.Context, channelID int) (int, error)
	GetChannelVideoStats(ctx context.Context, channelID int) (model.ChannelVideoStats, error)
}

type QueueStore interface {
	EnqueueAction(ctx context.Context, channelID int, videoID, action string, priority int) error
	GetQueueItem(ctx context.Context, id int) (*model.QueueItem, error)
	GetPendingQueueItems(ctx context.Context, channelID int) ([]model.QueueItem, error)
	UpdateQueueItemStatus(ctx context.Context, id int, status string, errorMessage *string) error
	IncrementQueueItemAttempts(ctx context.Context, id int) error
	RequeueItem(ctx context.Context, id int) error
	GetPendingQueueCount(ctx context.Context) (int, error)
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (*model.AutomationSettings, error)
	UpdateSettings(ctx context.Context, s *model.AutomationSettings) error
	SetAutomationActive(ctx context.Context, active bool) error
	TouchLastRun(ctx context.Context) error
}

type LogStore interface {
	CreateActivityLog(ctx context.Context, logType, message string, videoID *string, channelID *int) error
	GetRecentActivityLogs(ctx context.Context, limit int) ([]model.ActivityLog, error)
	CountCommentsToday(ctx context.Context) (int, error)
	CreateProcessingLog(ctx context.Context, l *model.ProcessingLog) error
	GetProcessingLogs(ctx context.Context, channelID, limit int) ([]model.ProcessingLog, error)
}

type QuotaStore interface {
	GetTodayQuota(ctx context.Context) (*model.APIQuota, error)
	AddYouTubeQuota(ctx context.Context, units int) error
	AddGeminiQuota(ctx context.Context, units int) error
}

type StatsStore interface {
	GetStats(ctx context.Context) (*model.StatsResponse, error)
}

// Platform is the external video platform surface the services consume.
// *youtube.Client satisfies it.
type Platform interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)
	GetChannelInfo(ctx context.Context, channelID string) (*youtube.ChannelInfo, error)
	ListChannelVideos(ctx context.Context, channelID, pageToken string) ([]youtube.VideoInfo, string, error)
	GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoInfo, error)
	GetMyChannelID(ctx context.Context) (string, error)
	CheckEngagement(ctx context.Context, videoID, userChannelID string) (youtube.Engagement, error)
	PostComment(ctx context.Context, videoID, text string) error
	LikeVideo(ctx context.Context, videoID string) error
}

// CommentGenerator produces comment text; implementations never fail, they
// fall back to canned text instead.
type CommentGenerator interface {
	Generate(ctx context.Context, title, description, operatorPrompt string) string
}
