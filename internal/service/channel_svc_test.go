package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

func newTestChannelService(store *fakeStore, yt *fakePlatform) *ChannelService {
	cache := NewCacheService(nil)
	pipeline := NewPipeline(store, yt, fakeGenerator{}, cache)
	return NewChannelService(store, yt, pipeline, cache)
}

func TestChannelService_AddChannel(t *testing.T) {
	store := newFakeStore()
	yt := newFakePlatform()
	yt.handles["@Example"] = "UCexample"
	yt.channelInfo["UCexample"] = &youtube.ChannelInfo{ID: "UCexample", Title: "Example Channel"}

	svc := newTestChannelService(store, yt)

	ch, err := svc.AddChannel(context.Background(), "@Example")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if ch.Name != "Example Channel" || ch.ChannelID != "UCexample" {
		t.Errorf("channel = %q/%q, want Example Channel/UCexample", ch.Name, ch.ChannelID)
	}
	if !ch.IsActive {
		t.Error("new channel should be active")
	}
	if !hasActivity(store, model.LogSystem, "Added channel @Example") {
		t.Error("missing added-channel activity log")
	}
}

func TestChannelService_AddChannelDuplicate(t *testing.T) {
	store := newFakeStore()
	yt := newFakePlatform()
	yt.handles["@Example"] = "UCexample"
	yt.channelInfo["UCexample"] = &youtube.ChannelInfo{ID: "UCexample", Title: "Example Channel"}

	svc := newTestChannelService(store, yt)
	if _, err := svc.AddChannel(context.Background(), "@Example"); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := svc.AddChannel(context.Background(), "@Example"); !errors.Is(err, ErrChannelExists) {
		t.Fatalf("duplicate add = %v, want ErrChannelExists", err)
	}
}

func TestChannelService_AddChannelUnknownHandle(t *testing.T) {
	svc := newTestChannelService(newFakeStore(), newFakePlatform())
	if _, err := svc.AddChannel(context.Background(), "@Nobody"); !errors.Is(err, youtube.ErrChannelNotFound) {
		t.Fatalf("unknown handle = %v, want ErrChannelNotFound", err)
	}
}

func TestChannelService_ListChannelsProgress(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	ch, _ := store.CreateChannel(ctx, &model.Channel{Handle: "@A", ChannelID: "UCa", IsActive: true})
	_ = store.MarkChannelFetched(ctx, ch.ID, 10)
	_ = store.MarkChannelCompleted(ctx, ch.ID, 4)

	svc := newTestChannelService(store, newFakePlatform())
	list, err := svc.ListChannels(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}
	if list[0].Progress != 40 {
		t.Errorf("progress = %d, want 40", list[0].Progress)
	}
	if list[0].PendingVideos != 6 {
		t.Errorf("pending = %d, want 6", list[0].PendingVideos)
	}
}

func TestChannelService_DeleteChannel(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	ch, _ := store.CreateChannel(ctx, &model.Channel{Handle: "@A", ChannelID: "UCa"})
	_, _ = store.CreateVideo(ctx, &model.Video{VideoID: "v1", ChannelID: ch.ID})

	svc := newTestChannelService(store, newFakePlatform())
	if err := svc.DeleteChannel(ctx, ch.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetChannel(ctx, ch.ID); err == nil {
		t.Error("channel should be gone")
	}
	if _, err := store.GetVideo(ctx, "v1"); err == nil {
		t.Error("channel videos should be gone")
	}
}
