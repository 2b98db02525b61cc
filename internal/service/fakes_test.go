package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	mu sync.Mutex

	accounts      map[int]*model.Account
	channels      map[int]*model.Channel
	nextChannelID int

	videos map[string]*model.Video

	queue       []*model.QueueItem
	nextQueueID int

	settings model.AutomationSettings

	activity   []model.ActivityLog
	processing []model.ProcessingLog

	quota model.APIQuota
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:      make(map[int]*model.Account),
		channels:      make(map[int]*model.Channel),
		nextChannelID: 1,
		videos:        make(map[string]*model.Video),
		nextQueueID:   1,
		settings:      model.DefaultSettings(),
	}
}

func (f *fakeStore) addConnectedAccount() {
	token := "access"
	refresh := "refresh"
	f.accounts[1] = &model.Account{
		ID:                  1,
		Username:            "demo_user",
		YouTubeToken:        &token,
		YouTubeRefreshToken: &refresh,
	}
}

func (f *fakeStore) GetAccount(_ context.Context, id int) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if acc, ok := f.accounts[id]; ok {
		return acc, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetAccountByUsername(_ context.Context, username string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Username == username {
			return acc, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) CreateAccount(_ context.Context, username, password string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc := &model.Account{ID: len(f.accounts) + 1, Username: username, Password: password}
	f.accounts[acc.ID] = acc
	return acc, nil
}

func (f *fakeStore) UpdateAccountTokens(_ context.Context, id int, access, refresh, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	acc.YouTubeToken = &access
	acc.YouTubeRefreshToken = &refresh
	acc.YouTubeChannelID = &channelID
	return nil
}

func (f *fakeStore) ClearAccountTokens(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return pgx.ErrNoRows
	}
	acc.YouTubeToken = nil
	acc.YouTubeRefreshToken = nil
	acc.YouTubeChannelID = nil
	return nil
}

func (f *fakeStore) CreateChannel(_ context.Context, ch *model.Channel) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ch
	cp.ID = f.nextChannelID
	f.nextChannelID++
	cp.CreatedAt = time.Now()
	f.channels[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeStore) GetChannel(_ context.Context, id int) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[id]; ok {
		cp := *ch
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetChannelByHandle(_ context.Context, handle string) (*model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.Handle == handle {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetAllChannels(_ context.Context) ([]model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		out = append(out, *ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetActiveChannels(ctx context.Context) ([]model.Channel, error) {
	all, _ := f.GetAllChannels(ctx)
	out := all[:0]
	for _, ch := range all {
		if ch.IsActive {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateChannelStatus(_ context.Context, id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ch.Status = status
	return nil
}

func (f *fakeStore) MarkChannelFetched(_ context.Context, id, fetchedVideos int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	ch.TotalVideos = fetchedVideos
	ch.FetchedVideos = fetchedVideos
	ch.FetchingComplete = true
	ch.Status = model.ChannelFetched
	ch.LastSyncedAt = &now
	return nil
}

func (f *fakeStore) MarkChannelFiltered(_ context.Context, id, filteredVideos int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ch.FilteredVideos = filteredVideos
	ch.Status = model.ChannelFiltered
	return nil
}

func (f *fakeStore) MarkChannelQueued(_ context.Context, id, queuedActions int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ch.QueuedVideos = queuedActions
	ch.Status = model.ChannelQueued
	return nil
}

func (f *fakeStore) MarkChannelCompleted(_ context.Context, id, completedVideos int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ch.CompletedVideos = completedVideos
	ch.Status = model.ChannelCompleted
	return nil
}

func (f *fakeStore) AddChannelVideos(_ context.Context, id, newVideos int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	ch.TotalVideos += newVideos
	ch.FetchedVideos += newVideos
	ch.LastSyncedAt = &now
	return nil
}

func (f *fakeStore) TouchNewVideoCheck(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	ch.LastNewVideoCheck = &now
	return nil
}

func (f *fakeStore) DeleteChannel(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.channels, id)
	for vid, v := range f.videos {
		if v.ChannelID == id {
			delete(f.videos, vid)
		}
	}
	return nil
}

func (f *fakeStore) CreateVideo(_ context.Context, v *model.Video) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[v.VideoID]; ok {
		return false, nil
	}
	// Store only the columns the SQL INSERT persists; the engagement
	// fields keep their zero values like the schema defaults.
	cp := model.Video{
		ID:              len(f.videos) + 1,
		VideoID:         v.VideoID,
		ChannelID:       v.ChannelID,
		Title:           v.Title,
		Description:     v.Description,
		PublishedAt:     v.PublishedAt,
		NeedsComment:    v.NeedsComment,
		NeedsLike:       v.NeedsLike,
		ProcessingStage: v.ProcessingStage,
		Status:          v.Status,
	}
	f.videos[cp.VideoID] = &cp
	return true, nil
}

func (f *fakeStore) GetVideo(_ context.Context, videoID string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.videos[videoID]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetVideosByChannel(_ context.Context, channelID int) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Video
	for _, v := range f.videos {
		if v.ChannelID == channelID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.Before(out[j].PublishedAt) })
	return out, nil
}

func (f *fakeStore) GetVideosNeedingAction(ctx context.Context, channelID int) ([]model.Video, error) {
	all, _ := f.GetVideosByChannel(ctx, channelID)
	var out []model.Video
	for _, v := range all {
		if v.ProcessingStage == model.StageFiltered && (v.NeedsComment || v.NeedsLike) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) GetNextPendingVideo(_ context.Context) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var next *model.Video
	for _, v := range f.videos {
		if v.Status != model.VideoPending || v.HasCommented || !v.NeedsComment {
			continue
		}
		if next == nil || v.PublishedAt.Before(next.PublishedAt) {
			next = v
		}
	}
	if next == nil {
		return nil, nil
	}
	cp := *next
	return &cp, nil
}

func (f *fakeStore) GetLatestVideoForChannel(_ context.Context, channelID int) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *model.Video
	for _, v := range f.videos {
		if v.ChannelID != channelID {
			continue
		}
		if latest == nil || v.PublishedAt.After(latest.PublishedAt) {
			latest = v
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeStore) UpdateVideoEngagement(_ context.Context, videoID string, hasCommented, hasLiked, needsComment, needsLike bool, commentText *string, stage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.HasCommented = hasCommented
	v.HasLiked = hasLiked
	v.NeedsComment = needsComment
	v.NeedsLike = needsLike
	if commentText != nil {
		v.CommentText = commentText
	}
	if hasCommented && v.CommentedAt == nil {
		now := time.Now()
		v.CommentedAt = &now
	}
	v.ProcessingStage = stage
	return nil
}

func (f *fakeStore) UpdateVideoStage(_ context.Context, videoID, stage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.ProcessingStage = stage
	return nil
}

func (f *fakeStore) UpdateVideoStatus(_ context.Context, videoID, status string, errorMessage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.Status = status
	v.ErrorMessage = errorMessage
	return nil
}

func (f *fakeStore) UpdateVideoComment(_ context.Context, videoID, commentText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	v.HasCommented = true
	v.NeedsComment = false
	v.CommentText = &commentText
	v.CommentedAt = &now
	return nil
}

func (f *fakeStore) UpdateVideoLike(_ context.Context, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return pgx.ErrNoRows
	}
	v.HasLiked = true
	v.NeedsLike = false
	return nil
}

func (f *fakeStore) GetCompletedVideosCount(_ context.Context, channelID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, v := range f.videos {
		if v.ChannelID == channelID && v.ProcessingStage == model.StageCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetChannelVideoStats(ctx context.Context, channelID int) (model.ChannelVideoStats, error) {
	all, _ := f.GetVideosByChannel(ctx, channelID)
	var stats model.ChannelVideoStats
	for _, v := range all {
		stats.TotalVideos++
		switch v.ProcessingStage {
		case model.StageFetched:
			stats.FetchedVideos++
		case model.StageFiltered:
			stats.FilteredVideos++
		case model.StageQueued:
			stats.QueuedVideos++
		case model.StageCompleted:
			stats.CompletedVideos++
		}
		if v.NeedsComment {
			stats.NeedsComment++
		}
		if v.NeedsLike {
			stats.NeedsLike++
		}
		if v.HasCommented {
			stats.Commented++
		}
		if v.HasLiked {
			stats.Liked++
		}
	}
	return stats, nil
}

func (f *fakeStore) EnqueueAction(_ context.Context, channelID int, videoID, action string, priority int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, &model.QueueItem{
		ID:          f.nextQueueID,
		ChannelID:   channelID,
		VideoID:     videoID,
		Action:      action,
		Priority:    priority,
		Status:      model.QueuePending,
		ScheduledAt: time.Now(),
	})
	f.nextQueueID++
	return nil
}

func (f *fakeStore) GetQueueItem(_ context.Context, id int) (*model.QueueItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.queue {
		if item.ID == id {
			cp := *item
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStore) GetPendingQueueItems(_ context.Context, channelID int) ([]model.QueueItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.QueueItem
	for _, item := range f.queue {
		if item.ChannelID == channelID && item.Status == model.QueuePending {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) UpdateQueueItemStatus(_ context.Context, id int, status string, errorMessage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.queue {
		if item.ID == id {
			item.Status = status
			item.ErrorMessage = errorMessage
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) IncrementQueueItemAttempts(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.queue {
		if item.ID == id {
			item.Attempts++
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) RequeueItem(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.queue {
		if item.ID == id {
			item.Status = model.QueuePending
			item.ErrorMessage = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) GetPendingQueueCount(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, item := range f.queue {
		if item.Status == model.QueuePending {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetSettings(_ context.Context) (*model.AutomationSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := f.settings
	return &cp, nil
}

func (f *fakeStore) UpdateSettings(_ context.Context, s *model.AutomationSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = *s
	return nil
}

func (f *fakeStore) SetAutomationActive(_ context.Context, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings.IsActive = active
	return nil
}

func (f *fakeStore) TouchLastRun(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	f.settings.LastRunAt = &now
	return nil
}

func (f *fakeStore) CreateActivityLog(_ context.Context, logType, message string, videoID *string, channelID *int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activity = append(f.activity, model.ActivityLog{
		ID:        len(f.activity) + 1,
		Type:      logType,
		Message:   message,
		VideoID:   videoID,
		ChannelID: channelID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (f *fakeStore) GetRecentActivityLogs(_ context.Context, limit int) ([]model.ActivityLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ActivityLog, len(f.activity))
	copy(out, f.activity)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeStore) CountCommentsToday(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, l := range f.activity {
		if l.Type == model.LogComment {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateProcessingLog(_ context.Context, l *model.ProcessingLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	cp.ID = len(f.processing) + 1
	cp.CreatedAt = time.Now()
	f.processing = append(f.processing, cp)
	return nil
}

func (f *fakeStore) GetProcessingLogs(_ context.Context, channelID, limit int) ([]model.ProcessingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ProcessingLog
	for i := len(f.processing) - 1; i >= 0 && len(out) < limit; i-- {
		if f.processing[i].ChannelID == channelID {
			out = append(out, f.processing[i])
		}
	}
	return out, nil
}

func (f *fakeStore) GetTodayQuota(_ context.Context) (*model.APIQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := f.quota
	return &cp, nil
}

func (f *fakeStore) AddYouTubeQuota(_ context.Context, units int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quota.YouTubeQuotaUsed += units
	return nil
}

func (f *fakeStore) AddGeminiQuota(_ context.Context, units int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quota.GeminiQuotaUsed += units
	return nil
}

func (f *fakeStore) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	channels, _ := f.GetAllChannels(ctx)
	pending, _ := f.GetPendingQueueCount(ctx)
	comments, _ := f.CountCommentsToday(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &model.StatsResponse{
		TotalChannels: len(channels),
		CommentsToday: comments,
		PendingQueue:  pending,
	}
	for _, ch := range channels {
		if ch.IsActive {
			stats.ActiveChannels++
		}
	}
	for _, v := range f.videos {
		stats.TotalVideos++
		if v.ProcessingStage == model.StageCompleted {
			stats.CompletedVideos++
		}
	}
	return stats, nil
}

// fakePlatform is an in-memory Platform for service tests.
type fakePlatform struct {
	mu sync.Mutex

	handles     map[string]string
	channelInfo map[string]*youtube.ChannelInfo
	uploads     map[string][]youtube.VideoInfo
	engagements map[string]youtube.Engagement
	myChannelID string

	postErr error
	likeErr error

	posted []string
	liked  []string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		handles:     make(map[string]string),
		channelInfo: make(map[string]*youtube.ChannelInfo),
		uploads:     make(map[string][]youtube.VideoInfo),
		engagements: make(map[string]youtube.Engagement),
		myChannelID: "UCme",
	}
}

func (f *fakePlatform) ResolveHandle(_ context.Context, handle string) (string, error) {
	if id, ok := f.handles[handle]; ok {
		return id, nil
	}
	return "", youtube.ErrChannelNotFound
}

func (f *fakePlatform) GetChannelInfo(_ context.Context, channelID string) (*youtube.ChannelInfo, error) {
	if info, ok := f.channelInfo[channelID]; ok {
		return info, nil
	}
	return nil, youtube.ErrChannelNotFound
}

func (f *fakePlatform) ListChannelVideos(_ context.Context, channelID, pageToken string) ([]youtube.VideoInfo, string, error) {
	return f.uploads[channelID], "", nil
}

func (f *fakePlatform) GetVideoDetails(_ context.Context, videoID string) (*youtube.VideoInfo, error) {
	for _, videos := range f.uploads {
		for i := range videos {
			if videos[i].ID == videoID {
				return &videos[i], nil
			}
		}
	}
	return nil, youtube.ErrVideoNotFound
}

func (f *fakePlatform) GetMyChannelID(_ context.Context) (string, error) {
	return f.myChannelID, nil
}

func (f *fakePlatform) CheckEngagement(_ context.Context, videoID, _ string) (youtube.Engagement, error) {
	return f.engagements[videoID], nil
}

func (f *fakePlatform) PostComment(_ context.Context, videoID, text string) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, videoID)
	f.engagements[videoID] = youtube.Engagement{HasCommented: true, CommentText: text}
	return nil
}

func (f *fakePlatform) LikeVideo(_ context.Context, videoID string) error {
	if f.likeErr != nil {
		return f.likeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liked = append(f.liked, videoID)
	return nil
}

// fakeGenerator returns a fixed comment.
type fakeGenerator struct{}

func (fakeGenerator) Generate(context.Context, string, string, string) string {
	return "Nice video!"
}
