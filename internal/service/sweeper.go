package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

// Sweeper periodically checks active channels for uploads newer than the
// latest one on record and feeds them back into the pipeline.
type Sweeper struct {
	store    Store
	yt       Platform
	pipeline *Pipeline
	interval time.Duration
	stopCh   chan struct{}
}

func NewSweeper(store Store, yt Platform, pipeline *Pipeline, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		yt:       yt,
		pipeline: pipeline,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start blocks until Stop is called or ctx is cancelled. Run it in its own
// goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("sweeper: started, interval %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopCh:
			log.Print("sweeper: stopped")
			return
		case <-ctx.Done():
			log.Print("sweeper: context cancelled")
			return
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.stopCh)
}

func (s *Sweeper) sweep(ctx context.Context) {
	channels, err := s.store.GetActiveChannels(ctx)
	if err != nil {
		log.Printf("sweeper: list channels: %v", err)
		return
	}

	account, err := s.store.GetAccount(ctx, defaultAccountID)
	if err != nil {
		log.Printf("sweeper: load account: %v", err)
		return
	}
	authenticated := account.Connected()

	now := time.Now()
	for i := range channels {
		ch := &channels[i]
		if ch.LastNewVideoCheck != nil && now.Sub(*ch.LastNewVideoCheck) < s.interval {
			continue
		}
		if added, err := s.CheckChannel(ctx, ch, authenticated); err != nil {
			log.Printf("sweeper: channel %s: %v", ch.Handle, err)
		} else if added > 0 {
			log.Printf("sweeper: found %d new videos on %s", added, ch.Handle)
		}
	}
}

// CheckChannel compares the channel's newest upload against the latest video
// on record and stores anything newer. When the account is connected the
// pipeline re-runs so the new videos get engaged.
func (s *Sweeper) CheckChannel(ctx context.Context, ch *model.Channel, authenticated bool) (int, error) {
	defer func() {
		if err := s.store.TouchNewVideoCheck(ctx, ch.ID); err != nil {
			log.Printf("sweeper: touch check time for %s: %v", ch.Handle, err)
		}
	}()

	latest, err := s.store.GetLatestVideoForChannel(ctx, ch.ID)
	if err != nil {
		return 0, err
	}

	videos, _, err := s.yt.ListChannelVideos(ctx, ch.ChannelID, "")
	if err != nil {
		return 0, err
	}

	added := 0
	for i := range videos {
		if latest != nil && !videos[i].PublishedAt.After(latest.PublishedAt) {
			continue
		}
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
		inserted, err := s.store.CreateVideo(ctx, v)
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}

	if added == 0 {
		return 0, nil
	}

	if err := s.store.AddChannelVideos(ctx, ch.ID, added); err != nil {
		return added, err
	}
	if err := s.store.CreateActivityLog(ctx, model.LogSystem,
		fmt.Sprintf("Found %d new videos on %s", added, ch.Handle), nil, &ch.ID); err != nil {
		log.Printf("sweeper: activity log: %v", err)
	}

	if authenticated {
		go func(channelID int) {
			if err := s.pipeline.StartChannelProcessing(context.Background(), channelID, true); err != nil {
				log.Printf("sweeper: reprocess channel %d: %v", channelID, err)
			}
		}(ch.ID)
	}
	return added, nil
}
