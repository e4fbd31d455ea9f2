// Package mcp parses MCP command configuration and wires the Riot adapter.
package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/riftscout/internal/platform/cmd"
	"github.com/louisbranch/riftscout/internal/services/mcp/domain"
	"github.com/louisbranch/riftscout/internal/services/mcp/service"
	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/louisbranch/riftscout/internal/services/riot/champions"
	championsqlite "github.com/louisbranch/riftscout/internal/services/riot/champions/storage/sqlite"
	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
)

// Config holds MCP command configuration.
type Config struct {
	APIKey         string        `env:"RIOT_API_KEY"`
	Platform       string        `env:"RIFTSCOUT_RIOT_PLATFORM"        envDefault:"na1"`
	Region         string        `env:"RIFTSCOUT_RIOT_REGION"`
	Language       string        `env:"RIFTSCOUT_DEFAULT_LANGUAGE"     envDefault:"en_US"`
	Transport      string        `env:"RIFTSCOUT_MCP_TRANSPORT"        envDefault:"stdio"`
	HTTPAddr       string        `env:"RIFTSCOUT_MCP_HTTP_ADDR"        envDefault:"localhost:8081"`
	AuthToken      string        `env:"RIFTSCOUT_MCP_AUTH_TOKEN"`
	AllowedHosts   []string      `env:"RIFTSCOUT_MCP_ALLOWED_HOSTS"    envSeparator:","`
	CatalogPath    string        `env:"RIFTSCOUT_CATALOG_DB"`
	RequestTimeout time.Duration `env:"RIFTSCOUT_RIOT_TIMEOUT"         envDefault:"30s"`
	MaxRetries     int           `env:"RIFTSCOUT_RIOT_MAX_RETRIES"     envDefault:"0"`
	RateLimit      int           `env:"RIFTSCOUT_RIOT_RATE_PER_SECOND" envDefault:"20"`
	RateLimitLong  int           `env:"RIFTSCOUT_RIOT_RATE_PER_2MIN"   envDefault:"100"`
	RiotBaseURL    string        `env:"RIFTSCOUT_RIOT_BASE_URL"`
	DataDragonURL  string        `env:"RIFTSCOUT_DDRAGON_URL"`
}

// ParseConfig parses environment and flags into a validated Config. A nil
// environ reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, environ, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Platform, "platform", cfg.Platform, "Riot platform routing value (na1, euw1, kr, ...)")
	fs.StringVar(&cfg.Region, "region", cfg.Region, "Riot regional route (americas, asia, europe, sea); derived from -platform when empty")
	fs.StringVar(&cfg.Language, "language", cfg.Language, "default champion name language")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.CatalogPath, "catalog-db", cfg.CatalogPath, "SQLite file caching champion tables; empty keeps them in memory")
	fs.DurationVar(&cfg.RequestTimeout, "riot-timeout", cfg.RequestTimeout, "timeout for each Riot request")
	fs.IntVar(&cfg.MaxRetries, "riot-max-retries", cfg.MaxRetries, "retries for rate limited or unavailable Riot requests")
}

func (c *Config) validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return errors.New("RIOT_API_KEY is required")
	}

	c.Platform = api.NormalizePlatform(c.Platform)
	c.Region = strings.ToLower(strings.TrimSpace(c.Region))
	if c.Region == "" {
		if _, ok := api.RegionForPlatform(c.Platform); !ok {
			return fmt.Errorf("unknown platform %q; set -region explicitly", c.Platform)
		}
	} else if !api.IsRegion(c.Region) {
		return fmt.Errorf("unknown region %q", c.Region)
	}

	language, err := ddragon.NormalizeLanguage(c.Language, ddragon.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("default language: %w", err)
	}
	c.Language = language

	switch service.TransportKind(c.Transport) {
	case service.TransportStdio, service.TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", c.Transport)
	}

	if c.RequestTimeout <= 0 {
		return errors.New("riot timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("riot max retries must not be negative")
	}
	return nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		deps, store, err := buildDeps(ctx, cfg)
		if err != nil {
			return err
		}
		return service.Run(ctx, service.Config{
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			AuthToken:    cfg.AuthToken,
			AllowedHosts: cfg.AllowedHosts,
			Deps:         deps,
			Store:        store,
		})
	})
}

// buildDeps constructs the Riot client and the champion catalog. The returned
// closer is nil when champion tables stay in memory.
func buildDeps(ctx context.Context, cfg Config) (domain.Deps, io.Closer, error) {
	riot, err := api.NewClient(api.Config{
		APIKey:            cfg.APIKey,
		Platform:          cfg.Platform,
		Region:            cfg.Region,
		BaseURL:           cfg.RiotBaseURL,
		Timeout:           cfg.RequestTimeout,
		MaxRetries:        cfg.MaxRetries,
		RatePerSecond:     cfg.RateLimit,
		RatePerTwoMinutes: cfg.RateLimitLong,
	})
	if err != nil {
		return domain.Deps{}, nil, fmt.Errorf("riot client: %w", err)
	}

	source := ddragon.NewClient(cfg.DataDragonURL, &http.Client{Timeout: cfg.RequestTimeout})
	options := []champions.Option{champions.WithDefaultLanguage(cfg.Language)}

	var closer io.Closer
	if path := strings.TrimSpace(cfg.CatalogPath); path != "" {
		store, err := championsqlite.Open(ctx, path)
		if err != nil {
			return domain.Deps{}, nil, fmt.Errorf("open champion store: %w", err)
		}
		log.Printf("champion tables cached in %s", path)
		options = append(options, champions.WithStore(store))
		closer = store
	}

	return domain.Deps{
		Riot:      riot,
		Champions: champions.NewCatalog(source, options...),
	}, closer, nil
}
