package api

import (
	"context"
	"fmt"
)

// Summoner is a summoner-v4 profile. ID is absent from newer payloads.
type Summoner struct {
	ID            string `json:"id,omitempty"`
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

const routeSummonerByPUUID = "/lol/summoner/v4/summoners/by-puuid/{puuid}"

// SummonerByPUUID returns the summoner profile for a player on the client's
// platform.
func (c *Client) SummonerByPUUID(ctx context.Context, puuid string) (Summoner, error) {
	var summoner Summoner
	if err := c.getJSON(ctx, newRequest(c.platform, routeSummonerByPUUID, puuid), &summoner); err != nil {
		return Summoner{}, fmt.Errorf("summoner by puuid: %w", err)
	}
	return summoner, nil
}
