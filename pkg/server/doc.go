// Package server serves veld apps over HTTP. A page request renders the
// app into a per-session in-memory document and returns the markup with a
// thin-client bootstrap; the client then attaches over a websocket, sends
// DOM events up, and applies the streamed host mutations coming back.
//
// Each session owns a single event-loop goroutine; events, state updates,
// and flushes for the session all execute there, which preserves the
// reconciler's single-threaded cooperative model. Prometheus metrics are
// exposed on /metrics and event dispatches are traced via OpenTelemetry.
package server
