// Package api is a read-only client for the Riot Games web API.
//
// Platform endpoints (summoner, league, champion mastery) are served from a
// platform host such as na1 or kr. Account and match endpoints are served from
// a regional route such as americas or asia. The client picks the right host
// for every call from its configured platform.
package api
