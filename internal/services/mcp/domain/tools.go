package domain

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

// Tool names exposed to hosts.
const (
	TopChampionsToolName    = "get_top_champions_tool"
	RecentMatchesToolName   = "get_recent_matches_tool"
	ChampionMasteryToolName = "get_champion_mastery_tool"
	PlayerSummaryToolName   = "get_player_summary"
	MatchSummaryToolName    = "get_match_summary"
)

// TopChampionsInput represents the MCP tool input for top champion masteries.
type TopChampionsInput struct {
	GameName string `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine  string `json:"tag_line" jsonschema:"Riot ID tag line without the leading #"`
	Language string `json:"language,omitempty" jsonschema:"champion name locale such as en_US or ko_KR"`
	Count    int    `json:"count,omitempty" jsonschema:"number of champions to return (1 to 20, default 3)"`
}

// TopChampionsResult represents the MCP tool output for top champion masteries.
type TopChampionsResult struct {
	PUUID     string        `json:"puuid" jsonschema:"player universally unique id"`
	Language  string        `json:"language" jsonschema:"locale used for champion names"`
	Champions []TopChampion `json:"champions" jsonschema:"champions ordered by mastery points"`
}

// TopChampionsTool defines the MCP tool schema for top champion masteries.
func TopChampionsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        TopChampionsToolName,
		Description: "Get the player's top champion masteries, ordered by mastery points",
	}
}

// TopChampionsHandler executes a top champion masteries request.
func TopChampionsHandler(deps Deps) mcp.ToolHandlerFor[TopChampionsInput, TopChampionsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TopChampionsInput) (result *mcp.CallToolResult, _ TopChampionsResult, err error) {
		call, err := newToolInvocation(ctx, TopChampionsToolName)
		if err != nil {
			return nil, TopChampionsResult{}, err
		}
		defer func() { call.End(err) }()

		puuid, err := resolvePUUID(call.Ctx, deps.Riot, input.GameName, input.TagLine)
		if err != nil {
			return nil, TopChampionsResult{}, err
		}
		table, err := championTable(call.Ctx, deps.Champions, input.Language)
		if err != nil {
			return nil, TopChampionsResult{}, err
		}

		top := topChampions(call.Ctx, deps.Riot, table, puuid, defaultCount(input.Count, DefaultTopChampionCount))
		output := TopChampionsResult{PUUID: puuid, Language: table.Language, Champions: nonNil(top)}
		return CallToolResultWithMetadata(call.Meta, FormatTopChampions(top)), output, nil
	}
}

// RecentMatchesInput represents the MCP tool input for recent matches.
type RecentMatchesInput struct {
	GameName string `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine  string `json:"tag_line" jsonschema:"Riot ID tag line without the leading #"`
	Count    int    `json:"count,omitempty" jsonschema:"number of matches to return (1 to 100, default 3)"`
}

// RecentMatchesResult represents the MCP tool output for recent matches.
type RecentMatchesResult struct {
	PUUID   string        `json:"puuid" jsonschema:"player universally unique id"`
	Matches []RecentMatch `json:"matches" jsonschema:"matches ordered newest first"`
}

// RecentMatchesTool defines the MCP tool schema for recent matches.
func RecentMatchesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        RecentMatchesToolName,
		Description: "Get the player's recent match history with champion, score and result",
	}
}

// RecentMatchesHandler executes a recent matches request.
func RecentMatchesHandler(deps Deps) mcp.ToolHandlerFor[RecentMatchesInput, RecentMatchesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RecentMatchesInput) (result *mcp.CallToolResult, _ RecentMatchesResult, err error) {
		call, err := newToolInvocation(ctx, RecentMatchesToolName)
		if err != nil {
			return nil, RecentMatchesResult{}, err
		}
		defer func() { call.End(err) }()

		puuid, err := resolvePUUID(call.Ctx, deps.Riot, input.GameName, input.TagLine)
		if err != nil {
			return nil, RecentMatchesResult{}, err
		}

		matches := recentMatches(call.Ctx, deps.Riot, puuid, defaultCount(input.Count, DefaultRecentMatchCount))
		output := RecentMatchesResult{PUUID: puuid, Matches: nonNil(matches)}
		return CallToolResultWithMetadata(call.Meta, FormatRecentMatches(matches)), output, nil
	}
}

// ChampionMasteryInput represents the MCP tool input for one champion's mastery.
type ChampionMasteryInput struct {
	GameName     string `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine      string `json:"tag_line" jsonschema:"Riot ID tag line without the leading #"`
	ChampionName string `json:"champion_name" jsonschema:"champion name in the requested language, case insensitive"`
	Language     string `json:"language,omitempty" jsonschema:"locale of champion_name such as en_US or ko_KR"`
}

// ChampionMasteryResult represents the MCP tool output for one champion's mastery.
type ChampionMasteryResult struct {
	GameName        string              `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine         string              `json:"tag_line" jsonschema:"Riot ID tag line"`
	PUUID           string              `json:"puuid" jsonschema:"player universally unique id"`
	ChampionName    string              `json:"champion_name" jsonschema:"champion name as requested"`
	ChampionID      int                 `json:"champion_id" jsonschema:"numeric champion id"`
	ChampionMastery api.ChampionMastery `json:"champion_mastery" jsonschema:"mastery record from Riot"`
}

// ChampionMasteryTool defines the MCP tool schema for one champion's mastery.
func ChampionMasteryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ChampionMasteryToolName,
		Description: "Get the player's mastery details (level, points, last play time) for one champion",
	}
}

// ChampionMasteryHandler executes a single champion mastery request.
func ChampionMasteryHandler(deps Deps) mcp.ToolHandlerFor[ChampionMasteryInput, ChampionMasteryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ChampionMasteryInput) (result *mcp.CallToolResult, _ ChampionMasteryResult, err error) {
		call, err := newToolInvocation(ctx, ChampionMasteryToolName)
		if err != nil {
			return nil, ChampionMasteryResult{}, err
		}
		defer func() { call.End(err) }()

		puuid, err := resolvePUUID(call.Ctx, deps.Riot, input.GameName, input.TagLine)
		if err != nil {
			return nil, ChampionMasteryResult{}, err
		}
		table, err := deps.Champions.Table(call.Ctx, input.Language)
		if err != nil {
			return nil, ChampionMasteryResult{}, languageError(call.Ctx, input.Language, err)
		}

		championMeta := map[string]string{"Champion": input.ChampionName}
		championID, ok := table.Lookup(input.ChampionName)
		if !ok {
			return nil, ChampionMasteryResult{}, placeholder(call.Ctx, apperrors.CodeChampionNotFound, championMeta, nil)
		}
		mastery, err := deps.Riot.MasteryByChampion(call.Ctx, puuid, championID)
		if err != nil {
			return nil, ChampionMasteryResult{}, placeholder(call.Ctx, apperrors.CodeMasteryNotFound, championMeta, err)
		}

		output := ChampionMasteryResult{
			GameName:        input.GameName,
			TagLine:         input.TagLine,
			PUUID:           puuid,
			ChampionName:    input.ChampionName,
			ChampionID:      championID,
			ChampionMastery: mastery,
		}
		return CallToolResultWithMetadata(call.Meta, ""), output, nil
	}
}

// PlayerSummaryInput represents the MCP tool input for a player profile summary.
type PlayerSummaryInput struct {
	GameName string `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine  string `json:"tag_line" jsonschema:"Riot ID tag line without the leading #"`
	Language string `json:"language,omitempty" jsonschema:"champion name locale such as en_US or ko_KR"`
}

// PlayerSummaryResult represents the MCP tool output for a player profile summary.
type PlayerSummaryResult struct {
	GameName      string        `json:"game_name" jsonschema:"Riot ID game name"`
	TagLine       string        `json:"tag_line" jsonschema:"Riot ID tag line"`
	PUUID         string        `json:"puuid" jsonschema:"player universally unique id"`
	Level         int64         `json:"level" jsonschema:"summoner level"`
	Rank          string        `json:"rank" jsonschema:"solo queue standing"`
	TopChampions  []TopChampion `json:"top_champions" jsonschema:"top three champions by mastery"`
	RecentMatches []RecentMatch `json:"recent_matches" jsonschema:"three most recent matches"`
}

// PlayerSummaryTool defines the MCP tool schema for a player profile summary.
func PlayerSummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        PlayerSummaryToolName,
		Description: "Get a complete player summary: level, solo rank, top champion masteries and recent matches",
	}
}

// PlayerSummaryHandler executes a player summary request.
func PlayerSummaryHandler(deps Deps) mcp.ToolHandlerFor[PlayerSummaryInput, PlayerSummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlayerSummaryInput) (result *mcp.CallToolResult, _ PlayerSummaryResult, err error) {
		call, err := newToolInvocation(ctx, PlayerSummaryToolName)
		if err != nil {
			return nil, PlayerSummaryResult{}, err
		}
		defer func() { call.End(err) }()

		puuid, err := resolvePUUID(call.Ctx, deps.Riot, input.GameName, input.TagLine)
		if err != nil {
			return nil, PlayerSummaryResult{}, err
		}
		table, err := championTable(call.Ctx, deps.Champions, input.Language)
		if err != nil {
			return nil, PlayerSummaryResult{}, err
		}
		summoner, err := deps.Riot.SummonerByPUUID(call.Ctx, puuid)
		if err != nil {
			return nil, PlayerSummaryResult{}, placeholder(call.Ctx, apperrors.CodeSummonerUnavailable, nil, err)
		}

		output := PlayerSummaryResult{
			GameName: input.GameName,
			TagLine:  input.TagLine,
			PUUID:    puuid,
			Level:    summoner.SummonerLevel,
		}
		var top []TopChampion
		var matches []RecentMatch
		group, groupCtx := errgroup.WithContext(call.Ctx)
		group.Go(func() error {
			output.Rank = rankText(groupCtx, deps.Riot, summoner)
			return nil
		})
		group.Go(func() error {
			top = topChampions(groupCtx, deps.Riot, table, puuid, SummaryTopChampionCount)
			return nil
		})
		group.Go(func() error {
			matches = recentMatches(groupCtx, deps.Riot, puuid, SummaryRecentMatchCount)
			return nil
		})
		_ = group.Wait()

		output.TopChampions = nonNil(top)
		output.RecentMatches = nonNil(matches)
		return CallToolResultWithMetadata(call.Meta, FormatPlayerSummary(output)), output, nil
	}
}

// FormatPlayerSummary renders the multi-line profile text.
func FormatPlayerSummary(summary PlayerSummaryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 %s (Level %d)\n\n", summary.GameName, summary.Level)
	fmt.Fprintf(&b, "🏅 Rank: %s\n\n", summary.Rank)
	fmt.Fprintf(&b, "🔥 Top Champions:\n%s\n\n", FormatTopChampions(summary.TopChampions))
	fmt.Fprintf(&b, "🕹️ Recent Matches:\n%s\n", FormatRecentMatches(summary.RecentMatches))
	return b.String()
}

// MatchSummaryInput represents the MCP tool input for a match summary.
type MatchSummaryInput struct {
	MatchID string `json:"match_id" jsonschema:"match identifier such as NA1_1234567890"`
	PUUID   string `json:"puuid" jsonschema:"player universally unique id"`
}

// MatchSummaryResult represents the MCP tool output for a match summary.
type MatchSummaryResult struct {
	ChampionName                string   `json:"championName" jsonschema:"champion played"`
	Lane                        string   `json:"lane" jsonschema:"lane reported by Riot"`
	Role                        string   `json:"role" jsonschema:"role reported by Riot"`
	Kills                       int      `json:"kills" jsonschema:"kills"`
	Deaths                      int      `json:"deaths" jsonschema:"deaths"`
	Assists                     int      `json:"assists" jsonschema:"assists"`
	KDA                         *float64 `json:"kda" jsonschema:"kill death assist ratio, null when Riot omits it"`
	KillParticipation           *float64 `json:"killParticipation" jsonschema:"share of team kills, null when Riot omits it"`
	TotalDamageDealtToChampions int64    `json:"totalDamageDealtToChampions" jsonschema:"damage dealt to champions"`
	VisionScore                 int      `json:"visionScore" jsonschema:"vision score"`
	WardsPlaced                 int      `json:"wardsPlaced" jsonschema:"wards placed"`
	WardsKilled                 int      `json:"wardsKilled" jsonschema:"wards killed"`
	Win                         bool     `json:"win" jsonschema:"whether the player's team won"`
	TeamPosition                *string  `json:"teamPosition" jsonschema:"team position, null when absent"`
	TimePlayed                  int64    `json:"timePlayed" jsonschema:"seconds the player was in game"`
	GameDuration                int64    `json:"gameDuration" jsonschema:"game length in seconds"`
	QueueID                     int      `json:"queueId" jsonschema:"queue id"`
}

// MatchSummaryTool defines the MCP tool schema for a match summary.
func MatchSummaryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        MatchSummaryToolName,
		Description: "Get one player's stats (KDA, damage, vision, result) from a specific match",
	}
}

// MatchSummaryHandler executes a match summary request.
func MatchSummaryHandler(deps Deps) mcp.ToolHandlerFor[MatchSummaryInput, MatchSummaryResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MatchSummaryInput) (result *mcp.CallToolResult, _ MatchSummaryResult, err error) {
		call, err := newToolInvocation(ctx, MatchSummaryToolName)
		if err != nil {
			return nil, MatchSummaryResult{}, err
		}
		defer func() { call.End(err) }()

		match, err := deps.Riot.Match(call.Ctx, strings.TrimSpace(input.MatchID))
		if err != nil {
			return nil, MatchSummaryResult{}, placeholder(call.Ctx, apperrors.CodeMatchUnavailable, nil, err)
		}
		p, ok := match.Participant(input.PUUID)
		if !ok {
			return nil, MatchSummaryResult{}, placeholder(call.Ctx, apperrors.CodeParticipantNotFound, map[string]string{"PUUID": input.PUUID}, nil)
		}

		output := MatchSummaryResult{
			ChampionName:                p.ChampionName,
			Lane:                        p.Lane,
			Role:                        p.Role,
			Kills:                       p.Kills,
			Deaths:                      p.Deaths,
			Assists:                     p.Assists,
			KDA:                         p.KDA,
			KillParticipation:           p.KillParticipation,
			TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
			VisionScore:                 p.VisionScore,
			WardsPlaced:                 p.WardsPlaced,
			WardsKilled:                 p.WardsKilled,
			Win:                         p.Win,
			TeamPosition:                p.TeamPosition,
			TimePlayed:                  p.TimePlayed,
			GameDuration:                match.GameDuration(),
			QueueID:                     match.QueueID(),
		}
		return CallToolResultWithMetadata(call.Meta, ""), output, nil
	}
}

// nonNil keeps empty lists as [] in structured output.
func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
