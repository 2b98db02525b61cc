package youtube

import (
	"log"
	"strings"
	"sync"
	"time"
)

// quotaResetHourUTC is when the Data API daily quota resets: midnight Pacific.
const quotaResetHourUTC = 8

type keyStatus struct {
	used    bool
	resetAt time.Time
}

// KeyPool rotates through read-only Data API keys to survive per-key daily
// quota limits. Round robin with memory: rotation resumes from the last-used
// index rather than restarting at zero.
type KeyPool struct {
	mu        sync.Mutex
	keys      []string
	status    map[string]*keyStatus
	current   int
	rotations int
	now       func() time.Time
}

// NewKeyPool parses a comma-separated key list. Empty entries are dropped.
func NewKeyPool(apiKeys string) *KeyPool {
	p := &KeyPool{
		status: make(map[string]*keyStatus),
		now:    time.Now,
	}
	for _, k := range strings.Split(apiKeys, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		p.keys = append(p.keys, k)
	}
	for _, k := range p.keys {
		p.status[k] = &keyStatus{resetAt: nextResetTime(p.now())}
	}
	log.Printf("keypool: configured %d YouTube API keys", len(p.keys))
	return p
}

func nextResetTime(now time.Time) time.Time {
	reset := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(),
		quotaResetHourUTC, 0, 0, 0, time.UTC)
	if !now.Before(reset) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset
}

func (p *KeyPool) Size() int {
	return len(p.keys)
}

// Current returns the active key. Keys whose reset boundary has passed are
// lazily marked usable again. When every key is exhausted the current key is
// returned anyway and the caller surfaces the resulting quota error; the
// daily boundary clears the state.
func (p *KeyPool) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentLocked()
}

func (p *KeyPool) currentLocked() string {
	if len(p.keys) == 0 {
		return ""
	}

	now := p.now()
	for _, st := range p.status {
		if st.used && now.After(st.resetAt) {
			st.used = false
			st.resetAt = nextResetTime(now)
		}
	}

	for i := range p.keys {
		idx := (p.current + i) % len(p.keys)
		if st := p.status[p.keys[idx]]; st != nil && !st.used {
			p.current = idx
			return p.keys[idx]
		}
	}

	log.Printf("keypool: all %d keys exhausted, degrading to current key", len(p.keys))
	return p.keys[p.current]
}

// MarkExhausted flags the key as out of quota and advances the cursor.
func (p *KeyPool) MarkExhausted(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.status[key]
	if !ok {
		return
	}
	st.used = true
	p.current = (p.current + 1) % len(p.keys)
	p.rotations++
	log.Printf("keypool: key %s… exhausted, switched to index %d", keyPrefix(key), p.current)
}

// Rotations returns how many times a key has been rotated out, for the
// system status endpoint.
func (p *KeyPool) Rotations() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rotations
}

// ExecuteWithRetry runs op with the current key. On a quota-class failure of
// a keyed (non-auth) call, the key is marked exhausted and the next key is
// tried, up to the pool size. Auth-bound calls never rotate read keys; any
// other failure propagates immediately.
func (p *KeyPool) ExecuteWithRetry(op func(apiKey string) error, requiresAuth bool) error {
	maxAttempts := p.Size()
	if requiresAuth || maxAttempts == 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		key := p.Current()
		lastErr = op(key)
		if lastErr == nil {
			return nil
		}
		if requiresAuth || !IsQuotaError(lastErr) {
			return lastErr
		}
		p.MarkExhausted(key)
	}
	return lastErr
}

func keyPrefix(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:12]
}
