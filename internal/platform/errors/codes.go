// Package errors provides structured error handling for upstream and tool
// failures.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Input errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Upstream errors
	CodeNotFound            Code = "NOT_FOUND"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamFailed      Code = "UPSTREAM_FAILED"

	// Tool placeholder errors
	CodePlayerNotFound      Code = "PLAYER_NOT_FOUND"
	CodeSummonerUnavailable Code = "SUMMONER_UNAVAILABLE"
	CodeChampionNotFound    Code = "CHAMPION_NOT_FOUND"
	CodeMasteryNotFound     Code = "MASTERY_NOT_FOUND"
	CodeMatchUnavailable    Code = "MATCH_UNAVAILABLE"
	CodeParticipantNotFound Code = "PARTICIPANT_NOT_FOUND"
	CodeCatalogUnavailable  Code = "CATALOG_UNAVAILABLE"
	CodeUnsupportedLanguage Code = "UNSUPPORTED_LANGUAGE"
)

// CodeFromHTTPStatus maps an upstream HTTP status to a code.
func CodeFromHTTPStatus(status int) Code {
	switch {
	case status == http.StatusNotFound:
		return CodeNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return CodeUnauthorized
	case status == http.StatusTooManyRequests:
		return CodeRateLimited
	case status >= 500:
		return CodeUpstreamUnavailable
	default:
		return CodeUpstreamFailed
	}
}

// Retryable reports whether a request failing with this code may succeed
// when repeated.
func (c Code) Retryable() bool {
	switch c {
	case CodeRateLimited, CodeUpstreamUnavailable:
		return true
	default:
		return false
	}
}
