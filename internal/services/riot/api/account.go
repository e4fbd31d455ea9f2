package api

import (
	"context"
	"fmt"
	"strings"
)

// Account is an account-v1 Riot account.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName,omitempty"`
	TagLine  string `json:"tagLine,omitempty"`
}

const routeAccountByRiotID = "/riot/account/v1/accounts/by-riot-id/{gameName}/{tagLine}"

// AccountByRiotID looks up an account by game name and tag line.
func (c *Client) AccountByRiotID(ctx context.Context, gameName, tagLine string) (Account, error) {
	gameName = strings.TrimSpace(gameName)
	tagLine = strings.TrimPrefix(strings.TrimSpace(tagLine), "#")
	if gameName == "" || tagLine == "" {
		return Account{}, fmt.Errorf("game name and tag line are required")
	}

	var account Account
	req := newRequest(AccountRegion(c.region), routeAccountByRiotID, gameName, tagLine)
	if err := c.getJSON(ctx, req, &account); err != nil {
		return Account{}, fmt.Errorf("account by riot id: %w", err)
	}
	if account.PUUID == "" {
		return Account{}, fmt.Errorf("account by riot id: empty puuid")
	}
	return account, nil
}
