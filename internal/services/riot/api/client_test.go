package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{
		APIKey:     "test-key",
		Platform:   "na1",
		BaseURL:    srv.URL + "/%s",
		HTTPClient: srv.Client(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		region  string
	}{
		{name: "missing key", cfg: Config{}, wantErr: true},
		{name: "defaults", cfg: Config{APIKey: "k"}, region: RegionAmericas},
		{name: "platform derives region", cfg: Config{APIKey: "k", Platform: "KR"}, region: RegionAsia},
		{name: "explicit region", cfg: Config{APIKey: "k", Platform: "na1", Region: "europe"}, region: RegionEurope},
		{name: "unknown region", cfg: Config{APIKey: "k", Region: "mars"}, wantErr: true},
		{name: "unknown platform", cfg: Config{APIKey: "k", Platform: "pbe1"}, wantErr: true},
		{name: "unknown platform with region", cfg: Config{APIKey: "k", Platform: "pbe1", Region: "americas"}, region: RegionAmericas},
		{name: "bad base url", cfg: Config{APIKey: "k", BaseURL: "https://example.com"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("new client: %v", err)
			}
			if client.Region() != tt.region {
				t.Fatalf("region = %q, want %q", client.Region(), tt.region)
			}
		})
	}
}

func TestGetSendsHeadersAndEscapesPath(t *testing.T) {
	var gotPath, gotToken, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotToken = r.Header.Get("X-Riot-Token")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"puuid":"p-1","gameName":"Hide on bush","tagLine":"KR1"}`))
	})

	account, err := client.AccountByRiotID(context.Background(), "Hide on bush", "#KR1")
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if account.PUUID != "p-1" {
		t.Fatalf("puuid = %q", account.PUUID)
	}
	if gotPath != "/americas/riot/account/v1/accounts/by-riot-id/Hide%20on%20bush/KR1" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotToken != "test-key" {
		t.Fatalf("token = %q", gotToken)
	}
	if gotContentType != "application/json" {
		t.Fatalf("content type = %q", gotContentType)
	}
}

func TestGetMapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   apperrors.Code
	}{
		{status: http.StatusNotFound, want: apperrors.CodeNotFound},
		{status: http.StatusForbidden, want: apperrors.CodeUnauthorized},
		{status: http.StatusTooManyRequests, want: apperrors.CodeRateLimited},
		{status: http.StatusBadGateway, want: apperrors.CodeUpstreamUnavailable},
		{status: http.StatusBadRequest, want: apperrors.CodeUpstreamFailed},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"status":{"message":"nope"}}`, tt.status)
			})
			_, err := client.SummonerByPUUID(context.Background(), "p-1")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apperrors.CodeOf(err); got != tt.want {
				t.Fatalf("code = %s, want %s (%v)", got, tt.want, err)
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.status {
				t.Fatalf("expected status error with %d, got %v", tt.status, err)
			}
		})
	}
}

func TestGetRejectsMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{not json`))
	})
	_, err := client.SummonerByPUUID(context.Background(), "p-1")
	if got := apperrors.CodeOf(err); got != apperrors.CodeUpstreamFailed {
		t.Fatalf("code = %s (%v)", got, err)
	}
}

func TestGetDoesNotRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if _, err := client.SummonerByPUUID(context.Background(), "p-1"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestGetRetriesUnavailable(t *testing.T) {
	restore := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = restore })

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"puuid":"p-1","summonerLevel":30}`))
	}, func(cfg *Config) { cfg.MaxRetries = 2 })

	summoner, err := client.SummonerByPUUID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("summoner: %v", err)
	}
	if summoner.SummonerLevel != 30 || calls.Load() != 3 {
		t.Fatalf("level = %d calls = %d", summoner.SummonerLevel, calls.Load())
	}
}

func TestGetRetryGivesUpWithUpstreamError(t *testing.T) {
	restore := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = restore })

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, func(cfg *Config) { cfg.MaxRetries = 1 })

	_, err := client.SummonerByPUUID(context.Background(), "p-1")
	if got := apperrors.CodeOf(err); got != apperrors.CodeRateLimited {
		t.Fatalf("code = %s (%v)", got, err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestGetHonorsRetryAfter(t *testing.T) {
	restore := retryInitialInterval
	retryInitialInterval = time.Millisecond
	t.Cleanup(func() { retryInitialInterval = restore })

	var (
		mu    sync.Mutex
		times []time.Time
	)
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		first := len(times) == 1
		mu.Unlock()
		if first {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"puuid":"p-1","summonerLevel":30}`))
	}, func(cfg *Config) { cfg.MaxRetries = 1 })

	summoner, err := client.SummonerByPUUID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("summoner: %v", err)
	}
	if summoner.SummonerLevel != 30 {
		t.Fatalf("level = %d, want 30", summoner.SummonerLevel)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(times) != 2 {
		t.Fatalf("calls = %d, want 2", len(times))
	}
	if gap := times[1].Sub(times[0]); gap < 900*time.Millisecond {
		t.Fatalf("retry gap = %s, want at least the 1s Retry-After", gap)
	}
}

func TestGetDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}, func(cfg *Config) { cfg.MaxRetries = 3 })

	_, err := client.SummonerByPUUID(context.Background(), "p-1")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Route: routeMatch, StatusCode: http.StatusNotFound, Body: "missing"}
	if !strings.Contains(err.Error(), "404 Not Found: missing") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := map[string]time.Duration{
		"":    0,
		"3":   3 * time.Second,
		" 1 ": time.Second,
		"-1":  0,
		"Wed": 0,
	}
	for input, want := range tests {
		if got := parseRetryAfter(input); got != want {
			t.Fatalf("parseRetryAfter(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestLimiterBlocksPastBudget(t *testing.T) {
	l := newLimiter(1, 0)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected second wait to exceed deadline")
	}
}
