// Package oteltest provides in-memory test doubles for the telemetry
// pipeline: span/log recorders satisfying trace.Exporter/logs.Exporter,
// and an http.Header-backed carrier satisfying propagation.TextMapCarrier.
package oteltest
