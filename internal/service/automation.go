package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

// Automation is the background scheduler. Each tick it engages at most one
// pending video: fetch details, generate a comment, post it, like the video.
// It stops itself when settings are disabled or no pending work remains.
type Automation struct {
	store Store
	yt    Platform
	gen   CommentGenerator
	cache *CacheService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

func NewAutomation(store Store, yt Platform, gen CommentGenerator, cache *CacheService) *Automation {
	return &Automation{store: store, yt: yt, gen: gen, cache: cache}
}

func (a *Automation) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Start launches the scheduler loop. It refuses to start when already running
// or when settings have automation disabled.
func (a *Automation) Start(ctx context.Context) error {
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	if !settings.IsActive {
		return ErrAutomationDisabled
	}

	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	a.running = true
	a.stopCh = make(chan struct{})
	stopCh := a.stopCh
	a.mu.Unlock()

	if err := a.store.CreateActivityLog(ctx, model.LogSystem, "Automation started", nil, nil); err != nil {
		log.Printf("automation: activity log: %v", err)
	}
	log.Printf("automation: started, delay %d minutes", settings.DelayMinutes)

	go a.run(stopCh, tickInterval(settings.DelayMinutes))
	return nil
}

// Stop halts the loop and persists isActive=false.
func (a *Automation) Stop(ctx context.Context) error {
	if !a.halt() {
		return ErrNotRunning
	}
	if err := a.store.SetAutomationActive(ctx, false); err != nil {
		return err
	}
	if err := a.store.CreateActivityLog(ctx, model.LogSystem, "Automation stopped", nil, nil); err != nil {
		log.Printf("automation: activity log: %v", err)
	}
	log.Print("automation: stopped")
	return nil
}

// Pause halts the loop without touching the settings flag, so Start can
// resume later.
func (a *Automation) Pause(ctx context.Context) error {
	if !a.halt() {
		return ErrNotRunning
	}
	if err := a.store.CreateActivityLog(ctx, model.LogSystem, "Automation paused", nil, nil); err != nil {
		log.Printf("automation: activity log: %v", err)
	}
	log.Print("automation: paused")
	return nil
}

// halt flips running off and closes the stop channel. Safe to call when not
// running.
func (a *Automation) halt() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return false
	}
	a.running = false
	close(a.stopCh)
	return true
}

func (a *Automation) run(stopCh chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// First video goes out immediately, then one per interval.
	if stop := a.tick(); stop {
		return
	}
	for {
		select {
		case <-ticker.C:
			if stop := a.tick(); stop {
				return
			}
		case <-stopCh:
			return
		}
	}
}

func (a *Automation) tick() (stop bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	reason := a.ProcessNext(ctx)
	if reason == "" {
		return false
	}

	// Self-initiated stop: the loop exits and the settings flag is cleared.
	a.halt()
	if err := a.store.SetAutomationActive(ctx, false); err != nil {
		log.Printf("automation: persist stop: %v", err)
	}
	log.Printf("automation: stopping itself: %s", reason)
	return true
}

// ProcessNext performs one scheduler pass. It returns an empty string to keep
// running, or a stop reason when the loop should shut itself down.
func (a *Automation) ProcessNext(ctx context.Context) string {
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		log.Printf("automation: load settings: %v", err)
		incVec(automationRuns, "error")
		return ""
	}
	if !settings.IsActive {
		incVec(automationRuns, "disabled")
		return "automation disabled in settings"
	}

	count, err := a.store.CountCommentsToday(ctx)
	if err != nil {
		log.Printf("automation: count comments: %v", err)
		incVec(automationRuns, "error")
		return ""
	}
	if count >= settings.MaxCommentsPerDay {
		if err := a.store.CreateActivityLog(ctx, model.LogSystem,
			fmt.Sprintf("Daily comment limit reached (%d)", settings.MaxCommentsPerDay), nil, nil); err != nil {
			log.Printf("automation: activity log: %v", err)
		}
		incVec(automationRuns, "limit")
		return ""
	}

	video, err := a.store.GetNextPendingVideo(ctx)
	if err != nil {
		log.Printf("automation: next pending video: %v", err)
		incVec(automationRuns, "error")
		return ""
	}
	if video == nil {
		if err := a.store.CreateActivityLog(ctx, model.LogSystem,
			"No pending videos found. Automation complete.", nil, nil); err != nil {
			log.Printf("automation: activity log: %v", err)
		}
		incVec(automationRuns, "complete")
		return "no pending videos"
	}

	if err := a.processVideo(ctx, video, settings); err != nil {
		log.Printf("automation: video %s failed: %v", video.VideoID, err)
		incVec(automationRuns, "error")
	} else {
		incVec(automationRuns, "engaged")
	}

	if err := a.store.TouchLastRun(ctx); err != nil {
		log.Printf("automation: touch last run: %v", err)
	}
	a.cache.InvalidateStats(ctx)
	return ""
}

func (a *Automation) processVideo(ctx context.Context, video *model.Video, settings *model.AutomationSettings) error {
	if err := a.store.UpdateVideoStatus(ctx, video.VideoID, model.VideoProcessing, nil); err != nil {
		return err
	}

	details, err := a.yt.GetVideoDetails(ctx, video.VideoID)
	if err != nil {
		return a.failVideo(ctx, video, fmt.Errorf("fetch details: %w", err))
	}

	text := a.gen.Generate(ctx, details.Title, details.Description, settings.AIPrompt)
	if err := a.yt.PostComment(ctx, video.VideoID, text); err != nil {
		return a.failVideo(ctx, video, fmt.Errorf("post comment: %w", err))
	}
	if err := a.store.UpdateVideoComment(ctx, video.VideoID, text); err != nil {
		return err
	}
	incCounter(commentsPosted)

	if err := a.yt.LikeVideo(ctx, video.VideoID); err != nil {
		return a.failVideo(ctx, video, fmt.Errorf("like video: %w", err))
	}
	if err := a.store.UpdateVideoLike(ctx, video.VideoID); err != nil {
		return err
	}
	incCounter(likesPosted)

	if err := a.store.UpdateVideoStatus(ctx, video.VideoID, model.VideoCompleted, nil); err != nil {
		return err
	}
	if err := a.store.UpdateVideoStage(ctx, video.VideoID, model.StageCompleted); err != nil {
		return err
	}

	if err := a.store.CreateActivityLog(ctx, model.LogComment,
		fmt.Sprintf("Commented on %q", details.Title), &video.VideoID, &video.ChannelID); err != nil {
		log.Printf("automation: activity log: %v", err)
	}

	if err := a.store.AddYouTubeQuota(ctx, youtubeActionCost); err != nil {
		log.Printf("automation: record youtube quota: %v", err)
	}
	if err := a.store.AddGeminiQuota(ctx, geminiGenerationCost); err != nil {
		log.Printf("automation: record gemini quota: %v", err)
	}

	log.Printf("automation: engaged video %s (%q)", video.VideoID, details.Title)
	return nil
}

func (a *Automation) failVideo(ctx context.Context, video *model.Video, cause error) error {
	msg := cause.Error()
	if err := a.store.UpdateVideoStatus(ctx, video.VideoID, model.VideoError, &msg); err != nil {
		log.Printf("automation: mark video %s error: %v", video.VideoID, err)
	}
	if err := a.store.CreateActivityLog(ctx, model.LogError,
		fmt.Sprintf("Failed to engage video %s: %s", video.VideoID, msg), &video.VideoID, &video.ChannelID); err != nil {
		log.Printf("automation: activity log: %v", err)
	}
	return cause
}

// tickInterval maps the configured delay to the loop period. Delays under an
// hour tick in minutes; longer delays round down to whole hours.
func tickInterval(delayMinutes int) time.Duration {
	if delayMinutes < 1 {
		delayMinutes = 1
	}
	if delayMinutes < 60 {
		return time.Duration(delayMinutes) * time.Minute
	}
	return time.Duration(delayMinutes/60) * time.Hour
}
