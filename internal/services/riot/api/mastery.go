package api

import (
	"context"
	"fmt"
	"strconv"
)

// Riot caps top mastery counts at 20 per request.
const (
	MinMasteryCount = 1
	MaxMasteryCount = 20
)

// ChampionMastery is a champion-mastery-v4 entry.
type ChampionMastery struct {
	PUUID                        string `json:"puuid"`
	ChampionID                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int    `json:"championPoints"`
	LastPlayTime                 int64  `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int    `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int    `json:"championPointsUntilNextLevel"`
	TokensEarned                 int    `json:"tokensEarned"`
	ChampionSeasonMilestone      int    `json:"championSeasonMilestone,omitempty"`
	MarkRequiredForNextLevel     int    `json:"markRequiredForNextLevel,omitempty"`
}

const (
	routeTopMasteries      = "/lol/champion-mastery/v4/champion-masteries/by-puuid/{puuid}/top"
	routeMasteryByChampion = "/lol/champion-mastery/v4/champion-masteries/by-puuid/{puuid}/by-champion/{championId}"
)

// TopMasteries returns the player's highest mastery champions. count is
// clamped to the Riot limits.
func (c *Client) TopMasteries(ctx context.Context, puuid string, count int) ([]ChampionMastery, error) {
	count = Clamp(count, MinMasteryCount, MaxMasteryCount)
	req := newRequest(c.platform, routeTopMasteries, puuid).withQuery("count", strconv.Itoa(count))

	var masteries []ChampionMastery
	if err := c.getJSON(ctx, req, &masteries); err != nil {
		return nil, fmt.Errorf("top masteries: %w", err)
	}
	return masteries, nil
}

// MasteryByChampion returns the player's mastery of one champion.
func (c *Client) MasteryByChampion(ctx context.Context, puuid string, championID int) (ChampionMastery, error) {
	req := newRequest(c.platform, routeMasteryByChampion, puuid, strconv.Itoa(championID))

	var mastery ChampionMastery
	if err := c.getJSON(ctx, req, &mastery); err != nil {
		return ChampionMastery{}, fmt.Errorf("mastery by champion: %w", err)
	}
	return mastery, nil
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi int) int {
	return min(max(value, lo), hi)
}
