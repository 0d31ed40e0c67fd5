// Package metrics implements the routing half of a metrics pipeline:
// instrument-to-stream resolution, view matching, StreamId dedup, and
// collection into ResourceMetrics. Its aggregators keep running sums,
// last values, and histogram counts and sums, but no histogram buckets;
// PrometheusBridge exposes the collected data through
// github.com/prometheus/client_golang.
package metrics
