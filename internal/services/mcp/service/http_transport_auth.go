package service

import (
	"crypto/subtle"
	"errors"
	"log"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

var (
	errNilRequest     = errors.New("invalid request")
	errHostRejected   = errors.New("invalid host")
	errOriginRejected = errors.New("invalid origin")
)

// validateLocalRequest guards against DNS rebinding: both Host and, when
// present, Origin must name a loopback address or a configured host.
func (t *HTTPTransport) validateLocalRequest(r *http.Request) error {
	if r == nil {
		return errNilRequest
	}
	if !t.allowsHost(r.Host) {
		return errHostRejected
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || !t.allowsHost(u.Host) {
		return errOriginRejected
	}
	return nil
}

func (t *HTTPTransport) allowsHost(hostport string) bool {
	host, ok := normalizeHost(hostport)
	if !ok {
		return false
	}
	if isLoopbackHost(host) {
		return true
	}
	_, ok = t.allowedHosts[strings.ToLower(host)]
	return ok
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	addr, err := netip.ParseAddr(host)
	return err == nil && addr.IsLoopback()
}

// parseAllowedHosts builds the lookup set from RIFTSCOUT_MCP_ALLOWED_HOSTS.
func parseAllowedHosts(hosts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}

// normalizeHost strips the port and IPv6 brackets from a Host or Origin
// authority. Bare IPv6 literals are returned as-is.
func normalizeHost(hostport string) (string, bool) {
	hostport = strings.TrimSpace(hostport)
	switch {
	case hostport == "":
		return "", false
	case strings.HasPrefix(hostport, "["):
		if host, _, err := net.SplitHostPort(hostport); err == nil {
			return host, true
		}
		inner, ok := strings.CutPrefix(hostport, "[")
		if inner, ok = strings.CutSuffix(inner, "]"); ok {
			return inner, true
		}
		return "", false
	case strings.Count(hostport, ":") > 1:
		return hostport, true
	case strings.Contains(hostport, ":"):
		host, _, err := net.SplitHostPort(hostport)
		return host, err == nil
	default:
		return hostport, true
	}
}

func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := t.validateLocalRequest(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("write health response: %v", err)
	}
}

// authorizeRequest enforces RIFTSCOUT_MCP_AUTH_TOKEN when one is set.
func (t *HTTPTransport) authorizeRequest(w http.ResponseWriter, r *http.Request) bool {
	if t.apiToken == "" {
		return true
	}
	token, ok := bearerToken(r)
	if !ok {
		writeUnauthorized(w, "authorization required")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(t.apiToken)) != 1 {
		writeUnauthorized(w, "invalid access token")
		return false
	}
	return true
}

func bearerToken(r *http.Request) (string, bool) {
	rest, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	token := strings.TrimSpace(rest)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="riftscout"`)
	http.Error(w, message, http.StatusUnauthorized)
}
