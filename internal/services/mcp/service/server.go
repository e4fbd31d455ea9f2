package service

import (
	"fmt"
	"io"

	"github.com/louisbranch/riftscout/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "riftscout"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// DefaultHTTPAddr keeps the HTTP transport local unless configured otherwise.
const DefaultHTTPAddr = "localhost:8081"

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string
	// AuthToken, when set, is required as a Bearer token on /mcp.
	AuthToken string
	// AllowedHosts extends the loopback hosts accepted in Host and Origin.
	AllowedHosts []string
	Deps         domain.Deps
	// Store is closed when the server stops.
	Store io.Closer
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     io.Closer
}

// New creates a configured MCP server with every tool and resource module
// registered against deps.
func New(deps domain.Deps, store io.Closer) (*Server, error) {
	if deps.Riot == nil {
		return nil, fmt.Errorf("riot client is required")
	}
	if deps.Champions == nil {
		return nil, fmt.Errorf("champion catalog is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: domain.CompletionHandler(deps.Champions),
	})
	mcpServer.AddReceivingMiddleware(domain.InvocationMiddleware)
	if err := registerModules(mcpServer, registrationModules(deps)); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer, store: store}, nil
}

// Close releases the catalog store held by the server.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return err
	}
	s.store = nil
	return nil
}
