package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

const (
	// defaultMaxFetchPages bounds the initial backfill of a channel.
	defaultMaxFetchPages = 20

	// Rough per-action API budget estimates recorded against the daily quota.
	youtubeActionCost    = 5
	geminiGenerationCost = 1
)

// Pipeline drives a channel through fetch, filter, queue and execute. At most
// one run per channel is active at a time; concurrent start requests for the
// same channel are ignored.
type Pipeline struct {
	store Store
	yt    Platform
	gen   CommentGenerator
	cache *CacheService

	mu            sync.Mutex
	processing    map[int]struct{}
	userChannelID string

	maxFetchPages int
}

func NewPipeline(store Store, yt Platform, gen CommentGenerator, cache *CacheService) *Pipeline {
	return &Pipeline{
		store:         store,
		yt:            yt,
		gen:           gen,
		cache:         cache,
		processing:    make(map[int]struct{}),
		maxFetchPages: defaultMaxFetchPages,
	}
}

// IsProcessing reports whether a run is active for the channel.
func (p *Pipeline) IsProcessing(channelID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.processing[channelID]
	return ok
}

func (p *Pipeline) acquire(channelID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.processing[channelID]; ok {
		return false
	}
	p.processing[channelID] = struct{}{}
	return true
}

func (p *Pipeline) release(channelID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.processing, channelID)
}

// StartChannelProcessing runs the pipeline for one channel. Without an
// authenticated account only the fetch stage runs; filtering and execution
// need the account identity. A request for a channel that is already being
// processed is dropped silently.
func (p *Pipeline) StartChannelProcessing(ctx context.Context, channelID int, authenticated bool) error {
	if !p.acquire(channelID) {
		log.Printf("pipeline: channel %d already being processed, ignoring", channelID)
		return nil
	}
	defer p.release(channelID)
	defer p.invalidate(channelID)

	runID := uuid.NewString()
	ch, err := p.store.GetChannel(ctx, channelID)
	if err != nil {
		return fmt.Errorf("load channel %d: %w", channelID, err)
	}

	log.Printf("pipeline: starting run %s for channel %s", runID, ch.Handle)
	p.logStage(ctx, runID, channelID, nil, "start", model.LogInfo,
		fmt.Sprintf("Processing started for %s", ch.Handle))

	if !ch.FetchingComplete {
		if err := p.fetchStage(ctx, runID, ch); err != nil {
			return p.failRun(ctx, runID, channelID, "fetch", err)
		}
	}

	if !authenticated {
		p.logStage(ctx, runID, channelID, nil, "filter", model.LogWarning,
			"Account not connected, skipping engagement filtering")
		incVec(pipelineRuns, "fetch_only")
		return nil
	}

	if err := p.filterStage(ctx, runID, ch); err != nil {
		return p.failRun(ctx, runID, channelID, "filter", err)
	}
	if err := p.queueStage(ctx, runID, ch); err != nil {
		return p.failRun(ctx, runID, channelID, "queue", err)
	}
	if err := p.executeStage(ctx, runID, ch); err != nil {
		return p.failRun(ctx, runID, channelID, "execute", err)
	}

	incVec(pipelineRuns, "completed")
	return nil
}

func (p *Pipeline) failRun(ctx context.Context, runID string, channelID int, stage string, err error) error {
	log.Printf("pipeline: run %s stage %s failed: %v", runID, stage, err)
	p.logStage(ctx, runID, channelID, nil, stage, model.LogError, err.Error())
	if uerr := p.store.UpdateChannelStatus(ctx, channelID, model.ChannelError); uerr != nil {
		log.Printf("pipeline: mark channel %d error: %v", channelID, uerr)
	}
	incVec(pipelineRuns, "error")
	return err
}

// fetchStage pages through the channel uploads and inserts unseen videos.
func (p *Pipeline) fetchStage(ctx context.Context, runID string, ch *model.Channel) error {
	if err := p.store.UpdateChannelStatus(ctx, ch.ID, model.ChannelFetching); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "fetch", model.LogInfo, "Fetching channel videos")

	total := 0
	pageToken := ""
	for page := 1; page <= p.maxFetchPages; page++ {
		videos, next, err := p.yt.ListChannelVideos(ctx, ch.ChannelID, pageToken)
		if err != nil {
			return fmt.Errorf("list videos page %d: %w", page, err)
		}

		for i := range videos {
			v := &model.Video{
				VideoID:         videos[i].ID,
				ChannelID:       ch.ID,
				Title:           videos[i].Title,
				Description:     videos[i].Description,
				PublishedAt:     videos[i].PublishedAt,
				NeedsComment:    true,
				NeedsLike:       true,
				ProcessingStage: model.StageFetched,
				Status:          model.VideoPending,
			}
			if _, err := p.store.CreateVideo(ctx, v); err != nil {
				return fmt.Errorf("store video %s: %w", videos[i].ID, err)
			}
		}
		total += len(videos)

		p.logStage(ctx, runID, ch.ID, nil, "fetch", model.LogInfo,
			fmt.Sprintf("Fetched page %d (%d videos so far)", page, total))

		if next == "" {
			break
		}
		pageToken = next
	}

	if err := p.store.MarkChannelFetched(ctx, ch.ID, total); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "fetch", model.LogSuccess,
		fmt.Sprintf("Fetch complete, %d videos", total))
	return nil
}

// filterStage checks existing engagement for every video and splits them into
// already-satisfied (completed) and needing action (filtered).
func (p *Pipeline) filterStage(ctx context.Context, runID string, ch *model.Channel) error {
	if err := p.store.UpdateChannelStatus(ctx, ch.ID, model.ChannelFiltering); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "filter", model.LogInfo, "Checking engagement for videos")

	userChannelID, err := p.yt.GetMyChannelID(ctx)
	if err != nil {
		return fmt.Errorf("resolve own channel: %w", err)
	}
	p.mu.Lock()
	p.userChannelID = userChannelID
	p.mu.Unlock()

	videos, err := p.store.GetVideosByChannel(ctx, ch.ID)
	if err != nil {
		return err
	}

	filtered := 0
	for i := range videos {
		v := &videos[i]

		eng, err := p.yt.CheckEngagement(ctx, v.VideoID, userChannelID)
		if err != nil {
			return fmt.Errorf("check engagement %s: %w", v.VideoID, err)
		}

		hasCommented := v.HasCommented || eng.HasCommented
		hasLiked := v.HasLiked || eng.HasLiked
		needsComment := !hasCommented
		needsLike := !hasLiked

		var commentText *string
		if eng.HasCommented && eng.CommentText != "" {
			commentText = &eng.CommentText
		}

		if !needsComment && !needsLike {
			if err := p.store.UpdateVideoEngagement(ctx, v.VideoID, hasCommented, hasLiked,
				false, false, commentText, model.StageCompleted); err != nil {
				return err
			}
			if err := p.store.UpdateVideoStatus(ctx, v.VideoID, model.VideoCompleted, nil); err != nil {
				return err
			}
		} else {
			if err := p.store.UpdateVideoEngagement(ctx, v.VideoID, hasCommented, hasLiked,
				needsComment, needsLike, commentText, model.StageFiltered); err != nil {
				return err
			}
			filtered++
		}

		if (i+1)%10 == 0 {
			p.logStage(ctx, runID, ch.ID, nil, "filter", model.LogInfo,
				fmt.Sprintf("Checked %d/%d videos", i+1, len(videos)))
		}
	}

	if err := p.store.MarkChannelFiltered(ctx, ch.ID, filtered); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "filter", model.LogSuccess,
		fmt.Sprintf("Filter complete, %d of %d videos need action", filtered, len(videos)))
	return nil
}

// queueStage turns filtered videos into queue items, comments before likes.
func (p *Pipeline) queueStage(ctx context.Context, runID string, ch *model.Channel) error {
	p.logStage(ctx, runID, ch.ID, nil, "queue", model.LogInfo, "Queueing engagement actions")

	videos, err := p.store.GetVideosNeedingAction(ctx, ch.ID)
	if err != nil {
		return err
	}

	queued := 0
	for i := range videos {
		v := &videos[i]
		if v.NeedsComment {
			if err := p.store.EnqueueAction(ctx, ch.ID, v.VideoID, model.ActionComment, model.PriorityComment); err != nil {
				return err
			}
			queued++
		}
		if v.NeedsLike {
			if err := p.store.EnqueueAction(ctx, ch.ID, v.VideoID, model.ActionLike, model.PriorityLike); err != nil {
				return err
			}
			queued++
		}
		if err := p.store.UpdateVideoStage(ctx, v.VideoID, model.StageQueued); err != nil {
			return err
		}
	}

	if err := p.store.MarkChannelQueued(ctx, ch.ID, queued); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "queue", model.LogSuccess,
		fmt.Sprintf("Queued %d actions for %d videos", queued, len(videos)))
	return nil
}

// executeStage drains the channel's pending queue in priority order, pausing
// between items per the configured delay.
func (p *Pipeline) executeStage(ctx context.Context, runID string, ch *model.Channel) error {
	if err := p.store.UpdateChannelStatus(ctx, ch.ID, model.ChannelProcessing); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "execute", model.LogInfo, "Executing queued actions")

	items, err := p.store.GetPendingQueueItems(ctx, ch.ID)
	if err != nil {
		return err
	}
	settings, err := p.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	delay := time.Duration(settings.DelayMinutes) * time.Minute

	for i := range items {
		if err := p.processQueueItem(ctx, runID, &items[i], settings.AIPrompt); err != nil {
			log.Printf("pipeline: queue item %d failed: %v", items[i].ID, err)
		}

		if i < len(items)-1 && delay > 0 {
			p.logStage(ctx, runID, ch.ID, nil, "execute", model.LogInfo,
				fmt.Sprintf("Waiting %d minutes before next action", settings.DelayMinutes))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	completed, err := p.store.GetCompletedVideosCount(ctx, ch.ID)
	if err != nil {
		return err
	}
	if err := p.store.MarkChannelCompleted(ctx, ch.ID, completed); err != nil {
		return err
	}
	p.logStage(ctx, runID, ch.ID, nil, "execute", model.LogSuccess,
		fmt.Sprintf("Processing complete, %d videos done", completed))
	return nil
}

func (p *Pipeline) processQueueItem(ctx context.Context, runID string, item *model.QueueItem, prompt string) error {
	if err := p.store.UpdateQueueItemStatus(ctx, item.ID, model.QueueProcessing, nil); err != nil {
		return err
	}

	v, err := p.store.GetVideo(ctx, item.VideoID)
	if err != nil {
		return p.failQueueItem(ctx, runID, item, fmt.Errorf("load video: %w", err))
	}

	switch item.Action {
	case model.ActionComment:
		err = p.executeComment(ctx, runID, item, v, prompt)
	case model.ActionLike:
		err = p.executeLike(ctx, runID, item, v)
	default:
		err = fmt.Errorf("unknown action %q", item.Action)
	}
	if err != nil {
		return p.failQueueItem(ctx, runID, item, err)
	}

	if err := p.store.UpdateQueueItemStatus(ctx, item.ID, model.QueueCompleted, nil); err != nil {
		return err
	}
	return p.store.UpdateVideoStage(ctx, item.VideoID, model.StageCompleted)
}

func (p *Pipeline) executeComment(ctx context.Context, runID string, item *model.QueueItem, v *model.Video, prompt string) error {
	if v.HasCommented {
		return nil
	}

	// The remote check is the authoritative guard against double-commenting
	// when local state lags behind.
	p.mu.Lock()
	userChannelID := p.userChannelID
	p.mu.Unlock()
	if userChannelID != "" {
		eng, err := p.yt.CheckEngagement(ctx, v.VideoID, userChannelID)
		if err == nil && eng.HasCommented {
			var text *string
			if eng.CommentText != "" {
				text = &eng.CommentText
			}
			return p.store.UpdateVideoEngagement(ctx, v.VideoID, true, v.HasLiked,
				false, v.NeedsLike, text, model.StageCompleted)
		}
	}

	text := p.gen.Generate(ctx, v.Title, v.Description, prompt)
	if err := p.yt.PostComment(ctx, v.VideoID, text); err != nil {
		return fmt.Errorf("post comment: %w", err)
	}
	if err := p.store.UpdateVideoComment(ctx, v.VideoID, text); err != nil {
		return err
	}

	p.logStage(ctx, runID, item.ChannelID, &v.VideoID, "execute", model.LogSuccess,
		fmt.Sprintf("Commented on %q", v.Title))
	if err := p.store.CreateActivityLog(ctx, model.LogComment,
		fmt.Sprintf("Commented on %q", v.Title), &v.VideoID, &item.ChannelID); err != nil {
		log.Printf("pipeline: activity log: %v", err)
	}
	p.recordQuota(ctx)
	incCounter(commentsPosted)
	return nil
}

func (p *Pipeline) executeLike(ctx context.Context, runID string, item *model.QueueItem, v *model.Video) error {
	if v.HasLiked {
		return nil
	}

	if err := p.yt.LikeVideo(ctx, v.VideoID); err != nil {
		return fmt.Errorf("like video: %w", err)
	}
	if err := p.store.UpdateVideoLike(ctx, v.VideoID); err != nil {
		return err
	}

	p.logStage(ctx, runID, item.ChannelID, &v.VideoID, "execute", model.LogSuccess,
		fmt.Sprintf("Liked %q", v.Title))
	if err := p.store.CreateActivityLog(ctx, model.LogLike,
		fmt.Sprintf("Liked %q", v.Title), &v.VideoID, &item.ChannelID); err != nil {
		log.Printf("pipeline: activity log: %v", err)
	}
	if err := p.store.AddYouTubeQuota(ctx, youtubeActionCost); err != nil {
		log.Printf("pipeline: record quota: %v", err)
	}
	incCounter(likesPosted)
	return nil
}

func (p *Pipeline) recordQuota(ctx context.Context) {
	if err := p.store.AddYouTubeQuota(ctx, youtubeActionCost); err != nil {
		log.Printf("pipeline: record youtube quota: %v", err)
	}
	if err := p.store.AddGeminiQuota(ctx, geminiGenerationCost); err != nil {
		log.Printf("pipeline: record gemini quota: %v", err)
	}
}

func (p *Pipeline) failQueueItem(ctx context.Context, runID string, item *model.QueueItem, cause error) error {
	msg := cause.Error()
	if err := p.store.UpdateQueueItemStatus(ctx, item.ID, model.QueueFailed, &msg); err != nil {
		log.Printf("pipeline: mark queue item %d failed: %v", item.ID, err)
	}
	if err := p.store.IncrementQueueItemAttempts(ctx, item.ID); err != nil {
		log.Printf("pipeline: bump attempts for item %d: %v", item.ID, err)
	}
	p.logStage(ctx, runID, item.ChannelID, &item.VideoID, "execute", model.LogError,
		fmt.Sprintf("%s failed: %s", item.Action, msg))
	incCounter(queueFailures)
	return cause
}

// RetryQueueItem puts a failed item back into pending unless its attempt
// ceiling is reached.
func (p *Pipeline) RetryQueueItem(ctx context.Context, id int) (*model.QueueItem, error) {
	item, err := p.store.GetQueueItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Attempts >= model.MaxQueueAttempts {
		return nil, ErrRetryExhausted
	}
	if err := p.store.RequeueItem(ctx, id); err != nil {
		return nil, err
	}
	return p.store.GetQueueItem(ctx, id)
}

// SyncChannel pulls recent uploads and stores the ones not seen before.
// Returns the number of new videos.
func (p *Pipeline) SyncChannel(ctx context.Context, channelID int) (int, error) {
	ch, err := p.store.GetChannel(ctx, channelID)
	if err != nil {
		return 0, err
	}

	videos, _, err := p.yt.ListChannelVideos(ctx, ch.ChannelID, "")
	if err != nil {
		return 0, err
	}

	added := 0
	for i := range videos {
		v := &model.Video{
			VideoID:         videos[i].ID,
			ChannelID:       ch.ID,
			Title:           videos[i].Title,
			Description:     videos[i].Description,
			PublishedAt:     videos[i].PublishedAt,
			NeedsComment:    true,
			NeedsLike:       true,
			ProcessingStage: model.StageFetched,
			Status:          model.VideoPending,
		}
		inserted, err := p.store.CreateVideo(ctx, v)
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}

	if added > 0 {
		if err := p.store.AddChannelVideos(ctx, ch.ID, added); err != nil {
			return added, err
		}
		if err := p.store.CreateActivityLog(ctx, model.LogSystem,
			fmt.Sprintf("Synced %d new videos from %s", added, ch.Handle), nil, &ch.ID); err != nil {
			log.Printf("pipeline: activity log: %v", err)
		}
		p.invalidate(ch.ID)
	}
	return added, nil
}

// ChannelStatus assembles the per-channel inspection payload, cached briefly.
func (p *Pipeline) ChannelStatus(ctx context.Context, channelID int) (*model.ChannelProcessingStatus, error) {
	if cached, ok := p.cache.GetChannelStatus(ctx, channelID); ok {
		return cached, nil
	}

	ch, err := p.store.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	stats, err := p.store.GetChannelVideoStats(ctx, channelID)
	if err != nil {
		return nil, err
	}
	logs, err := p.store.GetProcessingLogs(ctx, channelID, 20)
	if err != nil {
		return nil, err
	}

	status := &model.ChannelProcessingStatus{
		Channel:      *ch,
		Stats:        stats,
		Logs:         logs,
		IsProcessing: p.IsProcessing(channelID),
	}
	p.cache.SetChannelStatus(ctx, channelID, status)
	return status, nil
}

func (p *Pipeline) invalidate(channelID int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	p.cache.InvalidateChannel(ctx, channelID)
}

func (p *Pipeline) logStage(ctx context.Context, runID string, channelID int, videoID *string, stage, status, message string) {
	err := p.store.CreateProcessingLog(ctx, &model.ProcessingLog{
		ChannelID: channelID,
		VideoID:   videoID,
		RunID:     runID,
		Stage:     stage,
		Status:    status,
		Message:   message,
	})
	if err != nil {
		log.Printf("pipeline: processing log: %v", err)
	}
}
