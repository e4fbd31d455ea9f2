package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
)

// StatusError is a non-2xx Riot response.
type StatusError struct {
	Route      string
	StatusCode int
	RetryAfter time.Duration
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: %d %s", e.Route, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Code maps the status to a domain error code.
func (e *StatusError) Code() apperrors.Code {
	return apperrors.CodeFromHTTPStatus(e.StatusCode)
}

// IsNotFound reports whether err is a 404 from Riot.
func IsNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.CodeNotFound)
}

func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
