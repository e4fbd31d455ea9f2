package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSummonerUnavailable = "SUMMONER_UNAVAILABLE"
	CodeChampionNotFound    = "CHAMPION_NOT_FOUND"
	CodeMasteryNotFound     = "MASTERY_NOT_FOUND"
	CodeMatchUnavailable    = "MATCH_UNAVAILABLE"
	CodeParticipantNotFound = "PARTICIPANT_NOT_FOUND"
	CodeCatalogUnavailable  = "CATALOG_UNAVAILABLE"
	CodeUnsupportedLanguage = "UNSUPPORTED_LANGUAGE"

	// Empty-result messages have no matching error code.
	MessageNoRankedData    = "NO_RANKED_DATA"
	MessageUnrankedSolo    = "UNRANKED_SOLO"
	MessageNoMastery       = "NO_MASTERY"
	MessageNoRecentMatches = "NO_RECENT_MATCHES"
)

var enUSMessages = map[Code]string{
	CodePlayerNotFound:      "Failed to find player.",
	CodeSummonerUnavailable: "Failed to get summoner profile.",
	CodeChampionNotFound:    "Champion '{{.Champion}}' not found.",
	CodeMasteryNotFound:     "Could not find mastery data for {{.Champion}}.",
	CodeMatchUnavailable:    "Failed to load match data.",
	CodeParticipantNotFound: "No participant found with puuid: {{.PUUID}}",
	CodeCatalogUnavailable:  "Failed to load champion data.",
	CodeUnsupportedLanguage: "Unsupported language '{{.Language}}'.",

	MessageNoRankedData:    "No ranked data available.",
	MessageUnrankedSolo:    "Unranked in Solo Queue.",
	MessageNoMastery:       "No champion mastery data found.",
	MessageNoRecentMatches: "No recent matches found.",
}
