package domain

import (
	"context"

	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/louisbranch/riftscout/internal/services/riot/champions"
)

// RiotClient is the subset of the Riot API the tools read.
type RiotClient interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (api.Account, error)
	SummonerByPUUID(ctx context.Context, puuid string) (api.Summoner, error)
	LeagueEntries(ctx context.Context, summoner api.Summoner) ([]api.LeagueEntry, error)
	TopMasteries(ctx context.Context, puuid string, count int) ([]api.ChampionMastery, error)
	MasteryByChampion(ctx context.Context, puuid string, championID int) (api.ChampionMastery, error)
	MatchIDs(ctx context.Context, puuid string, count int) ([]string, error)
	Match(ctx context.Context, matchID string) (api.Match, error)
}

// ChampionCatalog resolves champion tables per language.
type ChampionCatalog interface {
	Table(ctx context.Context, language string) (*champions.Table, error)
	Cached() []string
	DefaultLanguage() string
}

// Deps are the collaborators shared by every tool and resource.
type Deps struct {
	Riot      RiotClient
	Champions ChampionCatalog
}
