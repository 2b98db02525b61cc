package service

import (
	"context"
	"testing"
	"time"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

func TestSweeper_CheckChannelStoresNewerUploads(t *testing.T) {
	store := newFakeStore()
	yt := newFakePlatform()
	ctx := context.Background()

	ch, _ := store.CreateChannel(ctx, &model.Channel{
		Name: "Example", Handle: "@Example", ChannelID: "UCexample", IsActive: true,
	})
	_, _ = store.CreateVideo(ctx, &model.Video{
		VideoID: "old", ChannelID: ch.ID,
		PublishedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProcessingStage: model.StageCompleted, Status: model.VideoCompleted,
	})

	yt.uploads["UCexample"] = []youtube.VideoInfo{
		{ID: "new", ChannelID: "UCexample", PublishedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "old", ChannelID: "UCexample", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	pipeline := NewPipeline(store, yt, fakeGenerator{}, NewCacheService(nil))
	s := NewSweeper(store, yt, pipeline, time.Hour)

	added, err := s.CheckChannel(ctx, ch, false)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if added != 1 {
		t.Fatalf("added = %d, want 1", added)
	}

	v, err := store.GetVideo(ctx, "new")
	if err != nil {
		t.Fatalf("new video not stored: %v", err)
	}
	if v.ProcessingStage != model.StageFetched || v.Status != model.VideoPending {
		t.Errorf("new video state = %s/%s, want fetched/pending", v.ProcessingStage, v.Status)
	}

	got, _ := store.GetChannel(ctx, ch.ID)
	if got.LastNewVideoCheck == nil {
		t.Error("check timestamp not touched")
	}
	if got.TotalVideos != 1 {
		t.Errorf("total videos = %d, want 1", got.TotalVideos)
	}

	// A second pass finds nothing newer.
	added, err = s.CheckChannel(ctx, got, false)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if added != 0 {
		t.Errorf("second check added = %d, want 0", added)
	}
}
