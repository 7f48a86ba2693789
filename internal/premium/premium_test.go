package premium

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

func premiumPayload(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	srv := premiumPayload(t, `[{"number":"628111","expiry":"`+future+`"}]`)

	c, err := New(srv.URL, filepath.Join(t.TempDir(), "premium.json"))
	if err != nil {
		t.Fatalf("premium.New: %v", err)
	}
	defer c.Close()

	if c.IsPremium("628111") {
		t.Fatalf("cache should start empty")
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !c.IsPremium("628111") {
		t.Fatalf("refreshed number should be premium")
	}
	if c.IsPremium("628999") {
		t.Fatalf("unknown number must not be premium")
	}
}

func TestIsPremiumExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	srv := premiumPayload(t, `[{"number":"628111","expiry":"`+past+`"}]`)

	c, err := New(srv.URL, filepath.Join(t.TempDir(), "premium.json"))
	if err != nil {
		t.Fatalf("premium.New: %v", err)
	}
	defer c.Close()

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if c.IsPremium("628111") {
		t.Fatalf("expired subscription must not count as premium")
	}
	if len(c.All()) != 1 {
		t.Fatalf("expired records still appear in the listing")
	}
}

func TestRefreshBadPayloadKeepsOldCache(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	good := premiumPayload(t, `[{"number":"628111","expiry":"`+future+`"}]`)

	snapshot := filepath.Join(t.TempDir(), "premium.json")
	c, err := New(good.URL, snapshot)
	if err != nil {
		t.Fatalf("premium.New: %v", err)
	}
	defer c.Close()
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Point at a server with a broken payload; the parse error is fatal so
	// there is no retry backoff.
	bad := premiumPayload(t, `{broken`)
	c.url = bad.URL

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("broken payload should fail the refresh")
	}
	if !c.IsPremium("628111") {
		t.Fatalf("failed refresh must leave the previous cache intact")
	}
}

func TestRefreshWithoutURL(t *testing.T) {
	c, err := New("", filepath.Join(t.TempDir(), "premium.json"))
	if err != nil {
		t.Fatalf("premium.New: %v", err)
	}
	defer c.Close()

	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("refresh without a URL must error")
	}
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	srv := premiumPayload(t, `[{"number":"628111","expiry":"`+future+`"}]`)
	snapshot := filepath.Join(t.TempDir(), "premium.json")

	c, err := New(srv.URL, snapshot)
	if err != nil {
		t.Fatalf("premium.New: %v", err)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// No API this time: the snapshot alone must answer premium checks.
	c2, err := New("", snapshot)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	if !c2.IsPremium("628111") {
		t.Fatalf("snapshot should serve premium checks before any refresh")
	}
}
