package youtube

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// listPageSize is the Data API maximum for playlist and comment pages.
	listPageSize  = 100
	videoPageSize = 50

	// maxEngagementPages bounds the comment scan per video. Past this depth
	// the account is treated as not having commented; the executor re-checks
	// engagement before posting, which keeps the action at-least-once safe.
	maxEngagementPages = 5
)

// VideoInfo is the platform-side view of one video.
type VideoInfo struct {
	ID          string
	Title       string
	Description string
	ChannelID   string
	PublishedAt time.Time
}

// ChannelInfo is the platform-side view of one channel.
type ChannelInfo struct {
	ID          string
	Title       string
	Description string
	Subscribers uint64
	VideoCount  uint64
}

// Engagement describes whether the connected account already engaged a video.
type Engagement struct {
	HasCommented bool
	HasLiked     bool
	CommentID    string
	CommentText  string
}

// Client wraps the YouTube Data API v3. Keyed reads rotate through the
// KeyPool; writes and "as me" reads go through the OAuthPool and require a
// token pair set via SetCredentials.
type Client struct {
	keys  *KeyPool
	oauth *OAuthPool

	mu       sync.Mutex
	services map[string]*yt.Service
	token    *oauth2.Token
}

func NewClient(keys *KeyPool, oauth *OAuthPool) *Client {
	return &Client{
		keys:     keys,
		oauth:    oauth,
		services: make(map[string]*yt.Service),
	}
}

// SetCredentials installs the account's token pair. The expiry is forced into
// the past so the token source refreshes on first use.
func (c *Client) SetCredentials(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-time.Minute),
	}
}

// ClearCredentials drops the stored token pair (account disconnect).
func (c *Client) ClearCredentials() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
}

// Connected reports whether a token pair is installed.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != nil
}

func (c *Client) GetAuthURL(state string) string {
	return c.oauth.AuthURL(state)
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth.Exchange(ctx, code)
}

// KeyRotations exposes the read pool's rotation count for status reporting.
func (c *Client) KeyRotations() int {
	return c.keys.Rotations()
}

func (c *Client) serviceForKey(ctx context.Context, apiKey string) (*yt.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if svc, ok := c.services[apiKey]; ok {
		return svc, nil
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	c.services[apiKey] = svc
	return svc, nil
}

// doKeyed runs a read call under key rotation.
func (c *Client) doKeyed(ctx context.Context, call func(svc *yt.Service) error) error {
	return c.keys.ExecuteWithRetry(func(apiKey string) error {
		svc, err := c.serviceForKey(ctx, apiKey)
		if err != nil {
			return err
		}
		return call(svc)
	}, false)
}

// doAuth runs an identity-bound call under OAuth client rotation.
func (c *Client) doAuth(ctx context.Context, call func(svc *yt.Service) error) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == nil {
		return ErrAuthRequired
	}

	return c.oauth.ExecuteWithRetry(func(cfg *oauth2.Config) error {
		svc, err := yt.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
		if err != nil {
			return err
		}
		return call(svc)
	})
}

// ResolveHandle resolves a channel handle ("@Example") to its channel id.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	q := handle
	if len(q) > 0 && q[0] == '@' {
		q = q[1:]
	}

	var channelID string
	err := c.doKeyed(ctx, func(svc *yt.Service) error {
		resp, err := svc.Search.List([]string{"snippet"}).
			Q(q).Type("channel").MaxResults(1).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
			return ErrChannelNotFound
		}
		channelID = resp.Items[0].Snippet.ChannelId
		return nil
	})
	if err != nil {
		return "", err
	}
	return channelID, nil
}

// GetChannelInfo fetches display metadata for a channel id.
func (c *Client) GetChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	var info *ChannelInfo
	err := c.doKeyed(ctx, func(svc *yt.Service) error {
		resp, err := svc.Channels.List([]string{"snippet", "statistics"}).
			Id(channelID).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}
		ch := resp.Items[0]
		info = &ChannelInfo{ID: ch.Id}
		if ch.Snippet != nil {
			info.Title = ch.Snippet.Title
			info.Description = ch.Snippet.Description
		}
		if ch.Statistics != nil {
			info.Subscribers = ch.Statistics.SubscriberCount
			info.VideoCount = ch.Statistics.VideoCount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// ListChannelVideos pages through the channel's canonical uploads playlist,
// which includes every upload type, unlike a generic search.
func (c *Client) ListChannelVideos(ctx context.Context, channelID, pageToken string) ([]VideoInfo, string, error) {
	uploads, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, "", err
	}

	var videos []VideoInfo
	var nextToken string
	err = c.doKeyed(ctx, func(svc *yt.Service) error {
		call := svc.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(uploads).MaxResults(videoPageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return err
		}
		videos = videos[:0]
		for _, item := range resp.Items {
			sn := item.Snippet
			if sn == nil || sn.ResourceId == nil || sn.ResourceId.VideoId == "" {
				continue
			}
			published, _ := time.Parse(time.RFC3339, sn.PublishedAt)
			videos = append(videos, VideoInfo{
				ID:          sn.ResourceId.VideoId,
				Title:       sn.Title,
				Description: sn.Description,
				ChannelID:   sn.ChannelId,
				PublishedAt: published,
			})
		}
		nextToken = resp.NextPageToken
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return videos, nextToken, nil
}

func (c *Client) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	var uploads string
	err := c.doKeyed(ctx, func(svc *yt.Service) error {
		resp, err := svc.Channels.List([]string{"contentDetails"}).
			Id(channelID).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}
		cd := resp.Items[0].ContentDetails
		if cd == nil || cd.RelatedPlaylists == nil || cd.RelatedPlaylists.Uploads == "" {
			return ErrNoUploadsPlaylist
		}
		uploads = cd.RelatedPlaylists.Uploads
		return nil
	})
	return uploads, err
}

// GetVideoDetails fetches full metadata for one video.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*VideoInfo, error) {
	var info *VideoInfo
	err := c.doKeyed(ctx, func(svc *yt.Service) error {
		resp, err := svc.Videos.List([]string{"snippet"}).
			Id(videoID).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrVideoNotFound
		}
		v := resp.Items[0]
		info = &VideoInfo{ID: v.Id}
		if v.Snippet != nil {
			info.Title = v.Snippet.Title
			info.Description = v.Snippet.Description
			info.ChannelID = v.Snippet.ChannelId
			info.PublishedAt, _ = time.Parse(time.RFC3339, v.Snippet.PublishedAt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// GetMyChannelID returns the channel id of the authenticated account.
func (c *Client) GetMyChannelID(ctx context.Context) (string, error) {
	var channelID string
	err := c.doAuth(ctx, func(svc *yt.Service) error {
		resp, err := svc.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) == 0 {
			return ErrChannelNotFound
		}
		channelID = resp.Items[0].Id
		return nil
	})
	if err != nil {
		return "", err
	}
	return channelID, nil
}

// CheckEngagement scans the video's top-level comments for one authored by
// userChannelID, bounded to maxEngagementPages pages.
//
// HasLiked is a documented stub: reading ratings needs an elevated scope this
// system does not request, so it is always false. Callers must treat "not
// liked" as unknown, not as fact.
func (c *Client) CheckEngagement(ctx context.Context, videoID, userChannelID string) (Engagement, error) {
	var eng Engagement

	pageToken := ""
	for page := 0; page < maxEngagementPages; page++ {
		var next string
		err := c.doKeyed(ctx, func(svc *yt.Service) error {
			call := svc.CommentThreads.List([]string{"snippet"}).
				VideoId(videoID).MaxResults(listPageSize).Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			resp, err := call.Do()
			if err != nil {
				return err
			}
			for _, item := range resp.Items {
				if item.Snippet == nil || item.Snippet.TopLevelComment == nil {
					continue
				}
				top := item.Snippet.TopLevelComment
				sn := top.Snippet
				if sn == nil || sn.AuthorChannelId == nil {
					continue
				}
				if sn.AuthorChannelId.Value == userChannelID {
					eng.HasCommented = true
					eng.CommentID = top.Id
					eng.CommentText = sn.TextDisplay
					return nil
				}
			}
			next = resp.NextPageToken
			return nil
		})
		if err != nil {
			return Engagement{}, err
		}
		if eng.HasCommented || next == "" {
			break
		}
		pageToken = next
	}

	return eng, nil
}

// PostComment inserts a top-level comment as the authenticated account.
func (c *Client) PostComment(ctx context.Context, videoID, text string) error {
	return c.doAuth(ctx, func(svc *yt.Service) error {
		thread := &yt.CommentThread{
			Snippet: &yt.CommentThreadSnippet{
				VideoId: videoID,
				TopLevelComment: &yt.Comment{
					Snippet: &yt.CommentSnippet{TextOriginal: text},
				},
			},
		}
		_, err := svc.CommentThreads.Insert([]string{"snippet"}, thread).Context(ctx).Do()
		return err
	})
}

// LikeVideo applies a "like" rating as the authenticated account.
func (c *Client) LikeVideo(ctx context.Context, videoID string) error {
	return c.doAuth(ctx, func(svc *yt.Service) error {
		return svc.Videos.Rate(videoID, "like").Context(ctx).Do()
	})
}
