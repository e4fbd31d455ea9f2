package api

import (
	"context"
	"fmt"
)

// QueueRankedSolo is the solo/duo ranked queue type.
const QueueRankedSolo = "RANKED_SOLO_5x5"

// LeagueEntry is one ranked queue standing.
type LeagueEntry struct {
	LeagueID     string `json:"leagueId,omitempty"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak,omitempty"`
	Veteran      bool   `json:"veteran,omitempty"`
	FreshBlood   bool   `json:"freshBlood,omitempty"`
	Inactive     bool   `json:"inactive,omitempty"`
}

const (
	routeEntriesBySummoner = "/lol/league/v4/entries/by-summoner/{summonerId}"
	routeEntriesByPUUID    = "/lol/league/v4/entries/by-puuid/{puuid}"
)

// LeagueEntriesBySummoner returns ranked entries by encrypted summoner id.
func (c *Client) LeagueEntriesBySummoner(ctx context.Context, summonerID string) ([]LeagueEntry, error) {
	var entries []LeagueEntry
	if err := c.getJSON(ctx, newRequest(c.platform, routeEntriesBySummoner, summonerID), &entries); err != nil {
		return nil, fmt.Errorf("league entries by summoner: %w", err)
	}
	return entries, nil
}

// LeagueEntriesByPUUID returns ranked entries by player puuid.
func (c *Client) LeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	var entries []LeagueEntry
	if err := c.getJSON(ctx, newRequest(c.platform, routeEntriesByPUUID, puuid), &entries); err != nil {
		return nil, fmt.Errorf("league entries by puuid: %w", err)
	}
	return entries, nil
}

// LeagueEntries uses the summoner id when the profile carries one and falls
// back to the puuid endpoint otherwise.
func (c *Client) LeagueEntries(ctx context.Context, summoner Summoner) ([]LeagueEntry, error) {
	if summoner.ID != "" {
		return c.LeagueEntriesBySummoner(ctx, summoner.ID)
	}
	return c.LeagueEntriesByPUUID(ctx, summoner.PUUID)
}

// SoloQueue returns the solo/duo entry, if any.
func SoloQueue(entries []LeagueEntry) (LeagueEntry, bool) {
	for _, entry := range entries {
		if entry.QueueType == QueueRankedSolo {
			return entry, true
		}
	}
	return LeagueEntry{}, false
}
