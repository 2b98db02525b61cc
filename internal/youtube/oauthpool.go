package youtube

import (
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	yt "google.golang.org/api/youtube/v3"
)

// OAuthPool rotates through OAuth client credential sets (id/secret pairs)
// for identity-bound calls, mirroring KeyPool's policy: a quota-class failure
// advances to the next client, anything else propagates.
type OAuthPool struct {
	mu        sync.Mutex
	configs   []*oauth2.Config
	exhausted []bool
	current   int
}

// NewOAuthPool parses comma-separated "clientID:clientSecret" pairs.
func NewOAuthPool(pairs, redirectURL string) *OAuthPool {
	p := &OAuthPool{}
	for _, pair := range strings.Split(pairs, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, secret, ok := strings.Cut(pair, ":")
		if !ok || id == "" || secret == "" {
			log.Printf("oauthpool: skipping malformed client pair %q", keyPrefix(pair))
			continue
		}
		p.configs = append(p.configs, &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				yt.YoutubeReadonlyScope,
				yt.YoutubeForceSslScope,
			},
			Endpoint: google.Endpoint,
		})
	}
	p.exhausted = make([]bool, len(p.configs))
	log.Printf("oauthpool: configured %d OAuth client sets", len(p.configs))
	return p
}

func (p *OAuthPool) Size() int {
	return len(p.configs)
}

// Current returns the active client config, or nil when none are configured.
func (p *OAuthPool) Current() *oauth2.Config {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.configs) == 0 {
		return nil
	}
	for i := range p.configs {
		idx := (p.current + i) % len(p.configs)
		if !p.exhausted[idx] {
			p.current = idx
			return p.configs[idx]
		}
	}
	return p.configs[p.current]
}

func (p *OAuthPool) markExhausted(cfg *oauth2.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, c := range p.configs {
		if c == cfg {
			p.exhausted[i] = true
			p.current = (p.current + 1) % len(p.configs)
			return
		}
	}
}

// AuthURL builds the consent URL for the active client set.
func (p *OAuthPool) AuthURL(state string) string {
	cfg := p.Current()
	if cfg == nil {
		return ""
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token pair.
func (p *OAuthPool) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	cfg := p.Current()
	if cfg == nil {
		return nil, ErrAuthRequired
	}
	return cfg.Exchange(ctx, code)
}

// ExecuteWithRetry runs op with the current client set, swapping to the next
// set on quota-class failures, up to the pool size.
func (p *OAuthPool) ExecuteWithRetry(op func(cfg *oauth2.Config) error) error {
	maxAttempts := p.Size()
	if maxAttempts == 0 {
		return ErrAuthRequired
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		cfg := p.Current()
		lastErr = op(cfg)
		if lastErr == nil {
			return nil
		}
		if !IsQuotaError(lastErr) {
			return lastErr
		}
		p.markExhausted(cfg)
	}
	return lastErr
}
