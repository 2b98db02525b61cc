package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

// ChannelService handles channel registration and listing on top of the
// pipeline.
type ChannelService struct {
	store    Store
	yt       Platform
	pipeline *Pipeline
	cache    *CacheService
}

func NewChannelService(store Store, yt Platform, pipeline *Pipeline, cache *CacheService) *ChannelService {
	return &ChannelService{store: store, yt: yt, pipeline: pipeline, cache: cache}
}

// AddChannel resolves the handle on the platform, stores the channel and
// kicks off processing in the background.
func (s *ChannelService) AddChannel(ctx context.Context, handle string) (*model.Channel, error) {
	existing, err := s.store.GetChannelByHandle(ctx, handle)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrChannelExists
	}

	channelID, err := s.yt.ResolveHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	info, err := s.yt.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}

	ch, err := s.store.CreateChannel(ctx, &model.Channel{
		Name:      info.Title,
		Handle:    handle,
		ChannelID: channelID,
		Status:    model.ChannelPending,
		IsActive:  true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateActivityLog(ctx, model.LogSystem,
		fmt.Sprintf("Added channel %s", handle), nil, &ch.ID); err != nil {
		log.Printf("channels: activity log: %v", err)
	}
	s.cache.InvalidateChannel(ctx, ch.ID)

	authenticated := s.accountConnected(ctx)
	go func(channelID int, authenticated bool) {
		if err := s.pipeline.StartChannelProcessing(context.Background(), channelID, authenticated); err != nil {
			log.Printf("channels: process channel %d: %v", channelID, err)
		}
	}(ch.ID, authenticated)

	return ch, nil
}

// DeleteChannel removes the channel and everything hanging off it.
func (s *ChannelService) DeleteChannel(ctx context.Context, id int) error {
	ch, err := s.store.GetChannel(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteChannel(ctx, id); err != nil {
		return err
	}
	if err := s.store.CreateActivityLog(ctx, model.LogSystem,
		fmt.Sprintf("Removed channel %s", ch.Handle), nil, nil); err != nil {
		log.Printf("channels: activity log: %v", err)
	}
	s.cache.InvalidateChannel(ctx, id)
	return nil
}

// ListChannels returns every channel with derived progress, cached briefly.
func (s *ChannelService) ListChannels(ctx context.Context) ([]model.ChannelSummary, error) {
	if cached, ok := s.cache.GetChannelList(ctx); ok {
		return cached, nil
	}

	channels, err := s.store.GetAllChannels(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.ChannelSummary, 0, len(channels))
	for _, ch := range channels {
		summaries = append(summaries, ch.Summary())
	}

	s.cache.SetChannelList(ctx, summaries)
	return summaries, nil
}

// GetChannel returns one channel by id.
func (s *ChannelService) GetChannel(ctx context.Context, id int) (*model.Channel, error) {
	return s.store.GetChannel(ctx, id)
}

// ListChannelVideos returns the stored videos for a channel.
func (s *ChannelService) ListChannelVideos(ctx context.Context, channelID int) ([]model.Video, error) {
	if _, err := s.store.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}
	return s.store.GetVideosByChannel(ctx, channelID)
}

// Reprocess restarts the pipeline for an existing channel.
func (s *ChannelService) Reprocess(ctx context.Context, channelID int) error {
	if _, err := s.store.GetChannel(ctx, channelID); err != nil {
		return err
	}
	authenticated := s.accountConnected(ctx)
	go func() {
		if err := s.pipeline.StartChannelProcessing(context.Background(), channelID, authenticated); err != nil {
			log.Printf("channels: reprocess channel %d: %v", channelID, err)
		}
	}()
	return nil
}

func (s *ChannelService) accountConnected(ctx context.Context) bool {
	account, err := s.store.GetAccount(ctx, defaultAccountID)
	if err != nil {
		log.Printf("channels: load account: %v", err)
		return false
	}
	return account.Connected()
}
