package domain

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/louisbranch/riftscout/internal/services/riot/champions"
	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeRiot struct {
	account     api.Account
	accountErr  error
	summoner    api.Summoner
	summonerErr error
	entries     []api.LeagueEntry
	entriesErr  error
	masteries   []api.ChampionMastery
	masteryErr  error
	matchIDs    []string
	matchIDsErr error
	matches     map[string]string
}

func (f *fakeRiot) AccountByRiotID(context.Context, string, string) (api.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeRiot) SummonerByPUUID(context.Context, string) (api.Summoner, error) {
	return f.summoner, f.summonerErr
}

func (f *fakeRiot) LeagueEntries(context.Context, api.Summoner) ([]api.LeagueEntry, error) {
	return f.entries, f.entriesErr
}

func (f *fakeRiot) TopMasteries(_ context.Context, _ string, count int) ([]api.ChampionMastery, error) {
	if f.masteryErr != nil {
		return nil, f.masteryErr
	}
	if count < len(f.masteries) {
		return f.masteries[:count], nil
	}
	return f.masteries, nil
}

func (f *fakeRiot) MasteryByChampion(_ context.Context, _ string, championID int) (api.ChampionMastery, error) {
	for _, m := range f.masteries {
		if m.ChampionID == championID {
			return m, nil
		}
	}
	return api.ChampionMastery{}, apperrors.New(apperrors.CodeNotFound, "mastery not found")
}

func (f *fakeRiot) MatchIDs(_ context.Context, _ string, count int) ([]string, error) {
	if f.matchIDsErr != nil {
		return nil, f.matchIDsErr
	}
	if count < len(f.matchIDs) {
		return f.matchIDs[:count], nil
	}
	return f.matchIDs, nil
}

func (f *fakeRiot) Match(_ context.Context, matchID string) (api.Match, error) {
	body, ok := f.matches[matchID]
	if !ok {
		return api.Match{}, apperrors.New(apperrors.CodeNotFound, "match not found")
	}
	return api.ParseMatch(matchID, []byte(body))
}

type fakeCatalog struct {
	tables map[string]*champions.Table
	err    error
}

func (f *fakeCatalog) Table(_ context.Context, language string) (*champions.Table, error) {
	if language == "" {
		language = ddragon.DefaultLanguage
	}
	if table, ok := f.tables[language]; ok {
		return table, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, apperrors.WithMetadata(apperrors.CodeUnsupportedLanguage, "unsupported", map[string]string{"Language": language})
}

func (f *fakeCatalog) Cached() []string {
	out := make([]string, 0, len(f.tables))
	for _, lang := range ddragon.Languages {
		if _, ok := f.tables[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

func (f *fakeCatalog) DefaultLanguage() string { return ddragon.DefaultLanguage }

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{tables: map[string]*champions.Table{
		"en_US": champions.NewTable("en_US", "14.1.1", []ddragon.Champion{
			{ID: 1, Name: "Annie"},
			{ID: 103, Name: "Ahri"},
			{ID: 62, Name: "Wukong"},
		}),
		"ko_KR": champions.NewTable("ko_KR", "14.1.1", []ddragon.Champion{
			{ID: 1, Name: "애니"},
			{ID: 103, Name: "아리"},
		}),
	}}
}

func matchBody(puuid, champion string, kills, deaths, assists int, win bool) string {
	return fmt.Sprintf(`{"info":{"gameDuration":1500,"queueId":420,"participants":[
		{"puuid":"someone-else","championName":"Annie"},
		{"puuid":%q,"championName":%q,"lane":"MIDDLE","role":"SOLO","teamPosition":"MIDDLE",
		 "kills":%d,"deaths":%d,"assists":%d,"win":%t,
		 "challenges":{"kda":4.5,"killParticipation":0.5},
		 "totalDamageDealtToChampions":21000,"visionScore":20,"wardsPlaced":9,"wardsKilled":3,"timePlayed":1490}]}}`,
		puuid, champion, kills, deaths, assists, win)
}

func newFakeRiot() *fakeRiot {
	return &fakeRiot{
		account:  api.Account{PUUID: "p-1", GameName: "Faker", TagLine: "KR1"},
		summoner: api.Summoner{PUUID: "p-1", SummonerLevel: 512},
		entries: []api.LeagueEntry{
			{QueueType: "RANKED_FLEX_SR", Tier: "SILVER", Rank: "I", LeaguePoints: 3, Wins: 1, Losses: 1},
			{QueueType: api.QueueRankedSolo, Tier: "GOLD", Rank: "II", LeaguePoints: 50, Wins: 10, Losses: 10},
		},
		masteries: []api.ChampionMastery{
			{ChampionID: 103, ChampionLevel: 7, ChampionPoints: 250000, LastPlayTime: 1700000000000},
			{ChampionID: 1, ChampionLevel: 5, ChampionPoints: 30000},
			{ChampionID: 999, ChampionLevel: 1, ChampionPoints: 100},
			{ChampionID: 62, ChampionLevel: 2, ChampionPoints: 900},
		},
		matchIDs: []string{"NA1_3", "NA1_2", "NA1_1"},
		matches: map[string]string{
			"NA1_3": matchBody("p-1", "Ahri", 10, 2, 8, true),
			"NA1_2": matchBody("p-1", "Annie", 1, 7, 3, false),
			"NA1_1": matchBody("p-1", "Wukong", 4, 4, 4, true),
		},
	}
}

func requireCode(t *testing.T, err error, code apperrors.Code, text string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error", code)
	}
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("code = %s, want %s (err %v)", got, code, err)
	}
	if err.Error() != text {
		t.Fatalf("error text = %q, want %q", err.Error(), text)
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) != 1 {
		t.Fatalf("expected one content block, got %+v", result)
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want *mcp.TextContent", result.Content[0])
	}
	return text.Text
}
