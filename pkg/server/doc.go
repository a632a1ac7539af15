// Package server exposes glob compilation over HTTP.
//
// Endpoints:
//
//	POST /v1/compile   {"pattern", "options"}          -> {"source", "ignoreCase", "negated"}
//	POST /v1/split     {"pattern", "options"}          -> {"path", "pattern"}
//	POST /v1/match     {"pattern", "options", "paths"} -> {"matches"}
//	GET  /v1/ws/match?pattern=...&dot=true             WebSocket live matcher
//	GET  /healthz
//	GET  /metrics                                      Prometheus exposition
//
// Requests without options use the configured defaults. Errors are JSON
// GlobError objects with a 4xx status.
//
// On /v1/ws/match every text frame is one path and every reply is a JSON
// {"path", "matched"} object.
//
// Compiled patterns are memoized; compile spans go to the global
// OpenTelemetry tracer provider.
package server
