package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
)

const (
	statsCacheKey    = "stats"
	statsCacheTTL    = 60 * time.Second
	channelStatusTTL = 30 * time.Second
	channelListKey   = "channels"
	channelListTTL   = 30 * time.Second
)

// CacheService caches read-heavy dashboard payloads in Redis. A nil client
// degrades every operation to a no-op so Redis stays optional.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// Enabled reports whether a Redis client is wired in.
func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

func channelStatusKey(channelID int) string {
	return fmt.Sprintf("channel-status:%d", channelID)
}

func (s *CacheService) GetStats(ctx context.Context) (*model.StatsResponse, bool) {
	var out model.StatsResponse
	if !s.get(ctx, statsCacheKey, &out) {
		return nil, false
	}
	return &out, true
}

func (s *CacheService) SetStats(ctx context.Context, stats *model.StatsResponse) {
	s.set(ctx, statsCacheKey, stats, statsCacheTTL)
}

func (s *CacheService) GetChannelList(ctx context.Context) ([]model.ChannelSummary, bool) {
	var out []model.ChannelSummary
	if !s.get(ctx, channelListKey, &out) {
		return nil, false
	}
	return out, true
}

func (s *CacheService) SetChannelList(ctx context.Context, list []model.ChannelSummary) {
	s.set(ctx, channelListKey, list, channelListTTL)
}

func (s *CacheService) GetChannelStatus(ctx context.Context, channelID int) (*model.ChannelProcessingStatus, bool) {
	var out model.ChannelProcessingStatus
	if !s.get(ctx, channelStatusKey(channelID), &out) {
		return nil, false
	}
	return &out, true
}

func (s *CacheService) SetChannelStatus(ctx context.Context, channelID int, status *model.ChannelProcessingStatus) {
	s.set(ctx, channelStatusKey(channelID), status, channelStatusTTL)
}

// InvalidateChannel drops the cached entries touched by a channel mutation.
func (s *CacheService) InvalidateChannel(ctx context.Context, channelID int) {
	if !s.Enabled() {
		return
	}
	if err := s.client.Del(ctx, channelStatusKey(channelID), channelListKey, statsCacheKey).Err(); err != nil {
		log.Printf("cache: invalidate channel %d: %v", channelID, err)
	}
}

// InvalidateStats drops the cached dashboard stats.
func (s *CacheService) InvalidateStats(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if err := s.client.Del(ctx, statsCacheKey).Err(); err != nil {
		log.Printf("cache: invalidate stats: %v", err)
	}
}

func (s *CacheService) get(ctx context.Context, key string, out any) bool {
	if !s.Enabled() {
		return false
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("cache: decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *CacheService) set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: encode %s: %v", key, err)
		return
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}
