// Package timeouts defines shared timeout constants used across riftscout.
package timeouts

import "time"

// RiotRequest caps a single upstream Riot or Data Dragon request.
const RiotRequest = 30 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// CatalogLoad caps one champion table load (version lookup, store read and
// download), which runs detached from the caller that started it.
const CatalogLoad = 2 * time.Minute
