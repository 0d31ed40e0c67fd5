// Package tracestate implements the W3C tracestate list: an
// insertion-order-preserving, vendor-extensible set of key-value pairs
// attached to a SpanContext.
//
// A TraceState is immutable; Insert and Delete return a new value. The
// zero TraceState is empty and valid.
package tracestate
