package domain

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/louisbranch/riftscout/internal/platform/errors/i18n"
	"github.com/louisbranch/riftscout/internal/platform/requestctx"
	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/louisbranch/riftscout/internal/services/riot/champions"
	"golang.org/x/sync/errgroup"
)

// Default counts for list tools.
const (
	DefaultTopChampionCount = 3
	DefaultRecentMatchCount = 3
	SummaryTopChampionCount = 3
	SummaryRecentMatchCount = 3
)

// resolvePUUID looks up the player, mapping any failure to the
// PLAYER_NOT_FOUND placeholder.
func resolvePUUID(ctx context.Context, client RiotClient, gameName, tagLine string) (string, error) {
	account, err := client.AccountByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return "", placeholder(ctx, apperrors.CodePlayerNotFound, nil, err)
	}
	return account.PUUID, nil
}

// championTable returns the table for language. Lookup failures other than an
// unsupported language degrade to an empty table so names render as ID(n).
func championTable(ctx context.Context, catalog ChampionCatalog, language string) (*champions.Table, error) {
	table, err := catalog.Table(ctx, language)
	if err == nil {
		return table, nil
	}
	if apperrors.HasCode(err, apperrors.CodeUnsupportedLanguage) {
		return nil, languageError(ctx, language, err)
	}
	log.Printf("%schampion table %q unavailable: %v", requestctx.LogPrefix(ctx), language, err)
	return champions.NewTable(language, "", nil), nil
}

// FormatRank renders the solo queue standing from league entries.
func FormatRank(entries []api.LeagueEntry) string {
	if len(entries) == 0 {
		return message(i18n.MessageNoRankedData, nil)
	}
	solo, ok := api.SoloQueue(entries)
	if !ok {
		return message(i18n.MessageUnrankedSolo, nil)
	}
	return fmt.Sprintf("%s %s (%d LP) - %dW %dL (%d%% WR)",
		solo.Tier, solo.Rank, solo.LeaguePoints, solo.Wins, solo.Losses, WinRate(solo.Wins, solo.Losses))
}

// WinRate is the rounded win percentage; ties round to even and zero games
// yields zero.
func WinRate(wins, losses int) int {
	games := wins + losses
	if games <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(wins) / float64(games) * 100))
}

func rankText(ctx context.Context, client RiotClient, summoner api.Summoner) string {
	entries, err := client.LeagueEntries(ctx, summoner)
	if err != nil {
		return message(i18n.MessageNoRankedData, nil)
	}
	return FormatRank(entries)
}

// TopChampion is one mastery line.
type TopChampion struct {
	ChampionID     int    `json:"champion_id" jsonschema:"numeric champion id"`
	ChampionName   string `json:"champion_name" jsonschema:"localized champion name or ID(n) when unknown"`
	ChampionLevel  int    `json:"champion_level" jsonschema:"mastery level"`
	ChampionPoints int    `json:"champion_points" jsonschema:"mastery points"`
}

func topChampions(ctx context.Context, client RiotClient, table *champions.Table, puuid string, count int) []TopChampion {
	masteries, err := client.TopMasteries(ctx, puuid, count)
	if err != nil {
		return nil
	}
	out := make([]TopChampion, 0, len(masteries))
	for _, m := range masteries {
		out = append(out, TopChampion{
			ChampionID:     m.ChampionID,
			ChampionName:   table.Name(m.ChampionID),
			ChampionLevel:  m.ChampionLevel,
			ChampionPoints: m.ChampionPoints,
		})
	}
	return out
}

// FormatTopChampions renders one "- name: Level n, p pts" line per champion.
func FormatTopChampions(top []TopChampion) string {
	if len(top) == 0 {
		return message(i18n.MessageNoMastery, nil)
	}
	lines := make([]string, len(top))
	for i, c := range top {
		lines[i] = fmt.Sprintf("- %s: Level %d, %d pts", c.ChampionName, c.ChampionLevel, c.ChampionPoints)
	}
	return strings.Join(lines, "\n")
}

// RecentMatch is one line of match history.
type RecentMatch struct {
	MatchID      string `json:"match_id" jsonschema:"match identifier"`
	ChampionName string `json:"champion_name" jsonschema:"champion played"`
	Kills        int    `json:"kills" jsonschema:"kills"`
	Deaths       int    `json:"deaths" jsonschema:"deaths"`
	Assists      int    `json:"assists" jsonschema:"assists"`
	Win          bool   `json:"win" jsonschema:"whether the player's team won"`
}

// recentMatches fetches match details concurrently and keeps match-id order.
// Matches that fail to load or do not include the player are skipped.
func recentMatches(ctx context.Context, client RiotClient, puuid string, count int) []RecentMatch {
	ids, err := client.MatchIDs(ctx, puuid, count)
	if err != nil || len(ids) == 0 {
		return nil
	}

	slots := make([]*RecentMatch, len(ids))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(recentMatchFetchLimit)
	for i, matchID := range ids {
		group.Go(func() error {
			match, err := client.Match(groupCtx, matchID)
			if err != nil {
				return nil
			}
			p, ok := match.Participant(puuid)
			if !ok {
				return nil
			}
			slots[i] = &RecentMatch{
				MatchID:      matchID,
				ChampionName: p.ChampionName,
				Kills:        p.Kills,
				Deaths:       p.Deaths,
				Assists:      p.Assists,
				Win:          p.Win,
			}
			return nil
		})
	}
	_ = group.Wait()

	out := make([]RecentMatch, 0, len(ids))
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

// FormatRecentMatches renders "id champion: k/d/a - Win|Loss" lines.
func FormatRecentMatches(matches []RecentMatch) string {
	if len(matches) == 0 {
		return message(i18n.MessageNoRecentMatches, nil)
	}
	lines := make([]string, len(matches))
	for i, m := range matches {
		result := "Loss"
		if m.Win {
			result = "Win"
		}
		lines[i] = fmt.Sprintf("%s %s: %d/%d/%d - %s", m.MatchID, m.ChampionName, m.Kills, m.Deaths, m.Assists, result)
	}
	return strings.Join(lines, "\n")
}

func defaultCount(count, fallback int) int {
	if count == 0 {
		return fallback
	}
	return count
}
