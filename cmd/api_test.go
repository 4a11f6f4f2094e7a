package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skimtext/skim/pkg/cache"
	"github.com/skimtext/skim/pkg/config"
	"github.com/skimtext/skim/pkg/metrics"
	"github.com/skimtext/skim/pkg/telemetry"
)

func newTestAPIServer(t *testing.T, keys map[string]bool) *APIServer {
	t.Helper()

	tracing, err := telemetry.Init(context.Background(), telemetry.Config{Enabled: false})
	if err != nil {
		t.Fatalf("telemetry.Init failed: %v", err)
	}

	return &APIServer{
		cfg:       config.DefaultConfig(),
		metrics:   metrics.New(),
		tracing:   tracing,
		cache:     cache.New(cache.Config{MaxEntries: 16}),
		validKeys: keys,
		hasAuth:   len(keys) > 0,
	}
}

func TestHandleCacheFlush(t *testing.T) {
	s := newTestAPIServer(t, nil)

	key := cache.Key("some document", "english", "ratio", 0.2)
	s.cache.Set(key, []string{"A sentence."})

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/flush", nil)
	rec := httptest.NewRecorder()
	s.handleCacheFlush(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := s.cache.Get(key); err != cache.ErrNotFound {
		t.Errorf("expected cache emptied after flush, got %v", err)
	}
}

func TestHandleCacheFlush_MethodNotAllowed(t *testing.T) {
	s := newTestAPIServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/cache/flush", nil)
	rec := httptest.NewRecorder()
	s.handleCacheFlush(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestHandleCacheFlush_RequiresAuth(t *testing.T) {
	s := newTestAPIServer(t, map[string]bool{"secret": true})

	key := cache.Key("some document", "english", "ratio", 0.2)
	s.cache.Set(key, []string{"A sentence."})

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/flush", nil)
	rec := httptest.NewRecorder()
	s.handleCacheFlush(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if _, err := s.cache.Get(key); err != nil {
		t.Error("unauthorized flush must not empty the cache")
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/cache/flush", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.handleCacheFlush(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with valid key, got %d", rec.Code)
	}
	if _, err := s.cache.Get(key); err != cache.ErrNotFound {
		t.Errorf("expected cache emptied after authorized flush, got %v", err)
	}
}
