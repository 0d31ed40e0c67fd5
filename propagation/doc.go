// Package propagation implements context propagation across a
// text-based carrier: the W3C TraceContext, Jaeger, and B3 wire formats,
// all sharing a common TextMapPropagator contract.
//
// Every propagator in this package is hardened against hostile input:
// extraction never panics, never allocates unboundedly, and on any
// rejection returns the caller's context unchanged rather than
// attaching an invalid SpanContext.
package propagation
