// Package metric provides Prometheus metrics for the CatchDB client.
//
// A Registry implements catchdb.Observer, so it can be set on a connection
// config to count commands, latencies and bytes per round trip. Metrics are
// served in Prometheus text format by Registry.Handler.
package metric
