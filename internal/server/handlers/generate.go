// Package handlers provides HTTP request handlers for the venuemap API.
//
// Handlers are organized by domain:
//
//   - market.go: stored snapshots
//   - sync.go: provider sync trigger
//   - analytics.go: benchmark, share, scatter and trend views
//   - report.go: Markdown briefing
//   - health.go: health, readiness and stats
//   - realtime.go: WebSocket and SSE sync events
//
// Read handlers follow the same pattern:
//
//  1. Check the method and query
//  2. Load through the cache
//  3. Derive the view
//  4. Write the response envelope
//
// The cache is cleared whenever the client stores a new snapshot.
package handlers

//go:generate gomarkdoc --output README.md .
