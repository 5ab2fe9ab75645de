// Package metric provides Prometheus metrics for canikit.
//
//   - prometheus.go: the registry, operation counters and the HTTP handler
//   - collector.go: a collector reporting stable memory regions
//
// Metrics are exposed at /metrics by the "canikit metrics" command.
package metric
