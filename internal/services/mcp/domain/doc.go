// Package domain translates MCP tool calls into Riot API reads.
//
// Each tool resolves a Riot ID to a player, fetches what it needs through the
// Riot client and the champion catalog, and renders both a structured result
// and a display string. Upstream failures never escape as protocol errors:
// they become placeholder messages, either as tool errors or as plain text
// when the call succeeded but returned nothing.
package domain
