package service

import (
	"fmt"

	"github.com/louisbranch/riftscout/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// toolBinding holds a typed mcp.AddTool call until the server exists.
type toolBinding struct {
	name string
	bind func(*mcp.Server)
}

func bindTool[In, Out any](tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) toolBinding {
	return toolBinding{
		name: tool.Name,
		bind: func(server *mcp.Server) { mcp.AddTool(server, tool, handler) },
	}
}

// registrationModule groups the tools and resources one concern exposes.
type registrationModule struct {
	name      string
	tools     []toolBinding
	resources func(*mcp.Server)
}

const (
	playerToolsModule       = "player-tools"
	matchToolsModule        = "match-tools"
	championResourcesModule = "champion-resources"
)

func registrationModules(deps domain.Deps) []registrationModule {
	return []registrationModule{
		{
			name: playerToolsModule,
			tools: []toolBinding{
				bindTool(domain.TopChampionsTool(), domain.TopChampionsHandler(deps)),
				bindTool(domain.RecentMatchesTool(), domain.RecentMatchesHandler(deps)),
				bindTool(domain.ChampionMasteryTool(), domain.ChampionMasteryHandler(deps)),
				bindTool(domain.PlayerSummaryTool(), domain.PlayerSummaryHandler(deps)),
			},
		},
		{
			name:  matchToolsModule,
			tools: []toolBinding{bindTool(domain.MatchSummaryTool(), domain.MatchSummaryHandler(deps))},
		},
		{
			name: championResourcesModule,
			resources: func(server *mcp.Server) {
				server.AddResource(domain.ChampionIndexResource(), domain.ChampionIndexResourceHandler(deps.Champions))
				server.AddResourceTemplate(domain.ChampionTableResourceTemplate(), domain.ChampionTableResourceHandler(deps.Champions))
			},
		},
	}
}

// registerModules adds every module to server. Tool names must be unique
// across modules since the SDK silently replaces duplicates.
func registerModules(server *mcp.Server, modules []registrationModule) error {
	owners := make(map[string]string)
	for _, module := range modules {
		for _, tool := range module.tools {
			if tool.name == "" {
				return fmt.Errorf("register MCP module %q: tool name is empty", module.name)
			}
			if owner, ok := owners[tool.name]; ok {
				return fmt.Errorf("register MCP module %q: tool %q already registered by %q", module.name, tool.name, owner)
			}
			owners[tool.name] = module.name
		}
	}
	for _, module := range modules {
		for _, tool := range module.tools {
			tool.bind(server)
		}
		if module.resources != nil {
			module.resources(server)
		}
	}
	return nil
}
