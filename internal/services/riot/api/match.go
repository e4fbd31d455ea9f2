package api

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"github.com/tidwall/gjson"
)

// Riot caps match id counts at 100 per request.
const (
	MinMatchCount = 1
	MaxMatchCount = 100
)

const (
	routeMatchIDs = "/lol/match/v5/matches/by-puuid/{puuid}/ids"
	routeMatch    = "/lol/match/v5/matches/{matchId}"
)

// MatchIDs returns the player's most recent match ids, newest first.
func (c *Client) MatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	count = Clamp(count, MinMatchCount, MaxMatchCount)
	req := newRequest(c.region, routeMatchIDs, puuid).withQuery("count", strconv.Itoa(count))

	var ids []string
	if err := c.getJSON(ctx, req, &ids); err != nil {
		return nil, fmt.Errorf("match ids: %w", err)
	}
	return ids, nil
}

// Match returns a match-v5 payload.
func (c *Client) Match(ctx context.Context, matchID string) (Match, error) {
	body, err := c.get(ctx, newRequest(c.region, routeMatch, matchID))
	if err != nil {
		return Match{}, fmt.Errorf("match %s: %w", matchID, err)
	}
	return ParseMatch(matchID, body)
}

// Match is a match-v5 payload read lazily with gjson paths.
type Match struct {
	ID  string
	doc gjson.Result
}

// ParseMatch validates body as JSON and wraps it.
func ParseMatch(matchID string, body []byte) (Match, error) {
	if !gjson.ValidBytes(body) {
		return Match{}, apperrors.New(apperrors.CodeUpstreamFailed, "match "+matchID+": invalid json")
	}
	return Match{ID: matchID, doc: gjson.ParseBytes(body)}, nil
}

// GameDuration is info.gameDuration in seconds.
func (m Match) GameDuration() int64 { return m.doc.Get("info.gameDuration").Int() }

// QueueID is info.queueId.
func (m Match) QueueID() int { return int(m.doc.Get("info.queueId").Int()) }

// Participant is the per-player slice of a match.
type Participant struct {
	PUUID                       string
	ChampionID                  int
	ChampionName                string
	Lane                        string
	Role                        string
	TeamPosition                *string
	Kills                       int
	Deaths                      int
	Assists                     int
	KDA                         *float64
	KillParticipation           *float64
	TotalDamageDealtToChampions int64
	VisionScore                 int
	WardsPlaced                 int
	WardsKilled                 int
	Win                         bool
	TimePlayed                  int64
}

// Participant finds the player by puuid in info.participants.
func (m Match) Participant(puuid string) (Participant, bool) {
	var (
		found Participant
		ok    bool
	)
	m.doc.Get("info.participants").ForEach(func(_, p gjson.Result) bool {
		if p.Get("puuid").String() != puuid {
			return true
		}
		found, ok = participantFrom(p), true
		return false
	})
	return found, ok
}

func participantFrom(p gjson.Result) Participant {
	return Participant{
		PUUID:                       p.Get("puuid").String(),
		ChampionID:                  int(p.Get("championId").Int()),
		ChampionName:                p.Get("championName").String(),
		Lane:                        p.Get("lane").String(),
		Role:                        p.Get("role").String(),
		TeamPosition:                optionalString(p.Get("teamPosition")),
		Kills:                       int(p.Get("kills").Int()),
		Deaths:                      int(p.Get("deaths").Int()),
		Assists:                     int(p.Get("assists").Int()),
		KDA:                         optionalFloat(p.Get("challenges.kda")),
		KillParticipation:           optionalFloat(p.Get("challenges.killParticipation")),
		TotalDamageDealtToChampions: p.Get("totalDamageDealtToChampions").Int(),
		VisionScore:                 int(p.Get("visionScore").Int()),
		WardsPlaced:                 int(p.Get("wardsPlaced").Int()),
		WardsKilled:                 int(p.Get("wardsKilled").Int()),
		Win:                         p.Get("win").Bool(),
		TimePlayed:                  p.Get("timePlayed").Int(),
	}
}

func optionalString(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	value := r.String()
	return &value
}

func optionalFloat(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	value := r.Float()
	return &value
}
