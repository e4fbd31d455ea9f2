// Package cmd holds startup helpers shared by riftscout commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/louisbranch/riftscout/internal/platform/config"
	"github.com/louisbranch/riftscout/internal/platform/otel"
	"github.com/louisbranch/riftscout/internal/platform/timeouts"
)

// ServiceMCP names the MCP adapter in telemetry and logs.
const ServiceMCP = "mcp"

// ParseConfigFromArgs fills cfg from environ (the process environment when
// nil), binds flags whose defaults are the env values, then parses args.
func ParseConfigFromArgs[T any](cfg *T, environ map[string]string, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if err := config.ParseEnvFrom(cfg, environ); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs the OpenTelemetry providers for service, runs
// run, and flushes spans once run returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
