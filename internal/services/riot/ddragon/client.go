// Package ddragon reads static game data from the Data Dragon CDN.
package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/platform/otel"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
	"github.com/louisbranch/riftscout/internal/platform/timeouts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the public Data Dragon host.
const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

// Champion is one entry of a champion table.
type Champion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client fetches Data Dragon documents.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient returns a client for baseURL, or the public CDN when empty.
// A nil httpClient gets the shared request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeouts.RiotRequest}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tracer:     otel.Tracer("github.com/louisbranch/riftscout/ddragon"),
	}
}

// LatestVersion returns the newest game data version.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	var versions []string
	if err := c.getJSON(ctx, "/api/versions.json", &versions); err != nil {
		return "", fmt.Errorf("latest version: %w", err)
	}
	if len(versions) == 0 || versions[0] == "" {
		return "", apperrors.New(apperrors.CodeUpstreamFailed, "latest version: empty version list")
	}
	return versions[0], nil
}

type championDocument struct {
	Data map[string]struct {
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// Champions returns the champion table for version and language, ordered by
// numeric id.
func (c *Client) Champions(ctx context.Context, version, language string) ([]Champion, error) {
	path := "/cdn/" + url.PathEscape(version) + "/data/" + url.PathEscape(language) + "/champion.json"

	var doc championDocument
	if err := c.getJSON(ctx, path, &doc); err != nil {
		return nil, fmt.Errorf("champions %s %s: %w", version, language, err)
	}

	champions := make([]Champion, 0, len(doc.Data))
	for slug, entry := range doc.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeUpstreamFailed, "champion "+slug+" key", err)
		}
		champions = append(champions, Champion{ID: id, Name: entry.Name})
	}
	sort.Slice(champions, func(i, j int) bool { return champions[i].ID < champions[j].ID })
	return champions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, span := c.tracer.Start(ctx, "ddragon.get", trace.WithAttributes(attribute.String("ddragon.path", path)))
	defer span.End()

	err := c.fetch(ctx, path, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("%sdata dragon error: %v", requestctx.LogPrefix(ctx), err)
	}
	return err
}

func (c *Client) fetch(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUpstreamFailed, "build request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "get "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.New(apperrors.CodeFromHTTPStatus(resp.StatusCode),
			fmt.Sprintf("get %s: %d %s", path, resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.CodeUpstreamFailed, "decode "+path, err)
	}
	return nil
}
