package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"ragbooks/internal/app"
	"ragbooks/internal/ragclient"
	"ragbooks/internal/ratelimit"
	"ragbooks/pkg/corpus"
)

func TestQueryRateLimit(t *testing.T) {
	ragSrv := httptest.NewServer(remoteOK(t))
	defer ragSrv.Close()
	redis := miniredis.RunT(t)

	limiter, err := ratelimit.NewRedisFixedWindowLimiter(redis.Addr(), "", "test:query", 1, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	appCore, err := app.New(app.Config{
		Corpus: corpus.NewSeededStore(),
		Client: ragclient.NewClient(ragSrv.URL),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: appCore, QueryLimiter: limiter}).Router())
	defer srv.Close()

	resp1 := postJSON(t, srv.URL+"/api/rag/query", map[string]string{"question": "first"})
	resp1.Body.Close()
	if resp1.StatusCode != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", resp1.StatusCode)
	}

	resp2 := postJSON(t, srv.URL+"/api/rag/query", map[string]string{"question": "second"})
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", resp2.StatusCode)
	}
}
