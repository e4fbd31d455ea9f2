package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/platform/otel"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
	"github.com/louisbranch/riftscout/internal/platform/timeouts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the host template for Riot API calls. The %s verb is
// replaced by a platform or regional route.
const DefaultBaseURL = "https://%s.api.riotgames.com"

const maxErrorBody = 512

// Config configures a Client.
type Config struct {
	APIKey string
	// Platform is the platform host for summoner, league and mastery calls.
	Platform string
	// Region overrides the regional route derived from Platform.
	Region string
	// BaseURL is a host template containing one %s verb.
	BaseURL string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// MaxRetries is how many times a rate limited or unavailable request is
	// repeated. Zero disables retries.
	MaxRetries        int
	RatePerSecond     int
	RatePerTwoMinutes int
	HTTPClient        *http.Client
}

// Client calls the Riot API.
type Client struct {
	apiKey     string
	platform   string
	region     string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	limiter    *limiter
	tracer     trace.Tracer
}

// NewClient validates cfg and returns a client.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("riot api key is required")
	}

	platform := NormalizePlatform(cfg.Platform)
	if platform == "" {
		platform = DefaultPlatform
	}
	derived, known := RegionForPlatform(platform)

	region := strings.ToLower(strings.TrimSpace(cfg.Region))
	switch {
	case region != "" && !IsRegion(region):
		return nil, fmt.Errorf("unknown riot region %q", cfg.Region)
	case region == "" && !known:
		return nil, fmt.Errorf("unknown riot platform %q; set a region explicitly", cfg.Platform)
	case region == "":
		region = derived
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.Count(baseURL, "%s") != 1 {
		return nil, fmt.Errorf("riot base url %q must contain one %%s", baseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = timeouts.RiotRequest
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		apiKey:     apiKey,
		platform:   platform,
		region:     region,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: maxRetries,
		httpClient: httpClient,
		limiter:    newLimiter(cfg.RatePerSecond, cfg.RatePerTwoMinutes),
		tracer:     otel.Tracer("github.com/louisbranch/riftscout/riot"),
	}, nil
}

// Platform returns the platform host used for platform endpoints.
func (c *Client) Platform() string { return c.platform }

// Region returns the regional route used for match endpoints.
func (c *Client) Region() string { return c.region }

// request describes one upstream GET.
type request struct {
	host  string
	route string
	path  string
	query url.Values
}

// newRequest fills route placeholders ({name}) in order with escaped
// segments. route stays unexpanded for span names and logs.
func newRequest(host, route string, segments ...string) request {
	path := route
	for _, segment := range segments {
		start := strings.Index(path, "{")
		end := strings.Index(path, "}")
		if start < 0 || end < start {
			break
		}
		path = path[:start] + url.PathEscape(segment) + path[end+1:]
	}
	return request{host: host, route: route, path: path}
}

func (r request) withQuery(key, value string) request {
	if r.query == nil {
		r.query = url.Values{}
	}
	r.query.Set(key, value)
	return r
}

// getJSON performs req and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, req request, out any) error {
	body, err := c.get(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		err = apperrors.Wrap(apperrors.CodeUpstreamFailed, "decode "+req.route, err)
		log.Printf("%sriot api error: %v", requestctx.LogPrefix(ctx), err)
		return err
	}
	return nil
}

// get performs req with rate limiting and retries and returns the body of a
// 2xx response. Failures are logged once here.
func (c *Client) get(ctx context.Context, req request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "riot.get", trace.WithAttributes(
		attribute.String("riot.host", req.host),
		attribute.String("riot.route", req.route),
	))
	defer span.End()

	body, status, err := c.getWithRetry(ctx, req)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		err = apperrors.Wrap(statusErr.Code(), "riot get", statusErr)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("%sriot api error: %v", requestctx.LogPrefix(ctx), err)
		return nil, err
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, req request) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeRateLimited, "wait for rate limit", err)
	}

	target := fmt.Sprintf(c.baseURL, req.host) + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeUpstreamFailed, "build request "+req.route, err)
	}
	httpReq.Header.Set("X-Riot-Token", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "get "+req.route, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "read "+req.route, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &StatusError{
			Route:      req.route,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       truncate(string(body), maxErrorBody),
		}
	}
	return body, resp.StatusCode, nil
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}
