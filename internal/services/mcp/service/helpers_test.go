package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/riftscout/internal/services/mcp/domain"
	"github.com/louisbranch/riftscout/internal/services/riot/api"
	"github.com/louisbranch/riftscout/internal/services/riot/champions"
	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const upstreamMatch = `{"info":{"gameDuration":1800,"queueId":420,"participants":[
	{"puuid":"p-1","championName":"Ahri","lane":"MIDDLE","role":"SOLO","teamPosition":"",
	 "kills":7,"deaths":1,"assists":9,"win":true,"challenges":{"kda":16,"killParticipation":0.7},
	 "totalDamageDealtToChampions":25000,"visionScore":30,"wardsPlaced":12,"wardsKilled":4,"timePlayed":1795}]}}`

// newUpstream serves the Riot and Data Dragon routes the tools read. Riot
// hosts are mounted as the first path segment.
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(pattern, body string) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	writeJSON("GET /americas/riot/account/v1/accounts/by-riot-id/Faker/KR1", `{"puuid":"p-1","gameName":"Faker","tagLine":"KR1"}`)
	writeJSON("GET /na1/lol/summoner/v4/summoners/by-puuid/p-1", `{"puuid":"p-1","profileIconId":6,"revisionDate":1,"summonerLevel":512}`)
	writeJSON("GET /na1/lol/league/v4/entries/by-puuid/p-1", `[{"queueType":"RANKED_SOLO_5x5","tier":"CHALLENGER","rank":"I","leaguePoints":1200,"wins":30,"losses":10}]`)
	writeJSON("GET /na1/lol/champion-mastery/v4/champion-masteries/by-puuid/p-1/top", `[
		{"puuid":"p-1","championId":103,"championLevel":7,"championPoints":250000},
		{"puuid":"p-1","championId":1,"championLevel":5,"championPoints":30000}]`)
	writeJSON("GET /na1/lol/champion-mastery/v4/champion-masteries/by-puuid/p-1/by-champion/103",
		`{"puuid":"p-1","championId":103,"championLevel":7,"championPoints":250000,"lastPlayTime":1700000000000}`)
	writeJSON("GET /americas/lol/match/v5/matches/by-puuid/p-1/ids", `["NA1_2"]`)
	writeJSON("GET /americas/lol/match/v5/matches/NA1_2", upstreamMatch)
	writeJSON("GET /ddragon/api/versions.json", `["14.1.1"]`)
	writeJSON("GET /ddragon/cdn/14.1.1/data/en_US/champion.json", `{"data":{
		"Ahri":{"key":"103","name":"Ahri"},
		"Annie":{"key":"1","name":"Annie"}}}`)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDeps(t *testing.T) domain.Deps {
	t.Helper()
	srv := newUpstream(t)
	riot, err := api.NewClient(api.Config{
		APIKey:     "test-key",
		Platform:   "na1",
		BaseURL:    srv.URL + "/%s",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("new riot client: %v", err)
	}
	catalog := champions.NewCatalog(ddragon.NewClient(srv.URL+"/ddragon", srv.Client()))
	return domain.Deps{Riot: riot, Champions: catalog}
}

// connectInMemory starts server on an in-memory transport and returns a
// connected client session.
func connectInMemory(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	done := make(chan error, 1)
	go func() {
		done <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
		_ = session.Close()
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T", result.Content[0])
	}
	return text.Text
}

type closeRecorder struct {
	calls int
	err   error
}

func (c *closeRecorder) Close() error {
	c.calls++
	return c.err
}
