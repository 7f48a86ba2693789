// Package premium mirrors an externally managed premium-subscription list.
// The cache is refreshed wholesale on a timer; a refresh either replaces the
// whole map or leaves it untouched.
package premium

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"wabot/datastore"
	"wabot/pkg/retrylimit"
)

const snapshotKey = "numbers"

// Record is one premium subscription, keyed by bare phone number (not JID).
type Record struct {
	Number string    `json:"number"`
	Expiry time.Time `json:"expiry"`
}

type Cache struct {
	url     string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
	ds      *datastore.DataStore

	mu       sync.RWMutex
	byNumber map[string]Record
}

// New builds a Cache backed by the given snapshot file. A previously saved
// snapshot is loaded so premium checks work before the first refresh. apiURL
// may be empty; the cache then serves only the snapshot.
func New(apiURL, snapshotPath string) (*Cache, error) {
	ds, err := datastore.New(snapshotPath)
	if err != nil {
		return nil, err
	}

	c := &Cache{
		url:      apiURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		ds:       ds,
		byNumber: make(map[string]Record),
	}
	c.loadSnapshot()
	return c, nil
}

func (c *Cache) Close() error {
	return c.ds.Close()
}

// IsPremium reports whether number has an unexpired subscription.
func (c *Cache) IsPremium(number string) bool {
	c.mu.RLock()
	rec, ok := c.byNumber[number]
	c.mu.RUnlock()
	return ok && time.Now().Before(rec.Expiry)
}

// All returns a copy of the current records.
func (c *Cache) All() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, 0, len(c.byNumber))
	for _, rec := range c.byNumber {
		out = append(out, rec)
	}
	return out
}

// Refresh fetches the full list from the API and swaps the cache in one step.
// On any failure the previous contents stay in place.
func (c *Cache) Refresh(ctx context.Context) error {
	if c.url == "" {
		return fmt.Errorf("premium API URL is not configured")
	}

	var records []Record
	err := retrylimit.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("premium API status=%d", resp.StatusCode)
		}

		var parsed []Record
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &retrylimit.FatalError{Err: fmt.Errorf("premium API payload: %w", err)}
		}
		records = parsed
		return nil
	}, c.limiter, 3)
	if err != nil {
		return err
	}

	byNumber := make(map[string]Record, len(records))
	for _, rec := range records {
		byNumber[rec.Number] = rec
	}

	c.mu.Lock()
	c.byNumber = byNumber
	c.mu.Unlock()

	c.ds.Add(snapshotKey, records)
	if err := c.ds.SaveToFile(); err != nil {
		log.Printf("[WARN] Premium snapshot save failed: %v", err)
	}
	return nil
}

// Run refreshes the cache on a fixed interval until ctx is done. Call from
// main; errors are logged, never fatal.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if c.url == "" {
		log.Println("[INFO] Premium API URL not set, premium refresh disabled")
		return
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	if err := c.Refresh(ctx); err != nil {
		log.Printf("[WARN] Initial premium refresh failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				log.Printf("[WARN] Premium refresh failed: %v", err)
			}
		}
	}
}

func (c *Cache) loadSnapshot() {
	raw, ok := c.ds.Get(snapshotKey)
	if !ok {
		return
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return
	}
	var records []Record
	if err := json.Unmarshal(jsonData, &records); err != nil {
		log.Printf("[WARN] Premium snapshot unreadable: %v", err)
		return
	}

	byNumber := make(map[string]Record, len(records))
	for _, rec := range records {
		byNumber[rec.Number] = rec
	}
	c.mu.Lock()
	c.byNumber = byNumber
	c.mu.Unlock()
}
