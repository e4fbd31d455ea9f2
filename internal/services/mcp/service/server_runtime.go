package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
// Stdio serves a single local host process; HTTP serves remote clients.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(cfg.Deps, cfg.Store)
	if err != nil {
		closeStore(cfg)
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg)
	default:
		_ = server.Close()
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func closeStore(cfg Config) {
	if cfg.Store == nil {
		return
	}
	if err := cfg.Store.Close(); err != nil {
		log.Printf("close catalog store: %v", err)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
// The server and its store share a single exit path so cleanup behavior
// is consistent for both stdio and HTTP runs.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return s.finish(err)
}

// serveHTTP runs the HTTP transport and closes the store on exit.
func (s *Server) serveHTTP(ctx context.Context, cfg Config) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	transport := NewHTTPTransportWithServer(cfg.HTTPAddr, s.mcpServer)
	transport.applyConfig(cfg)
	return s.finish(transport.Start(ctx))
}

func (s *Server) finish(err error) error {
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close catalog store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close catalog store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
