// Package baggage implements user-defined key/value pairs that travel
// alongside a trace without ever being auto-attached to spans: a
// Baggage is propagated by a carrier-based TextMapPropagator exactly
// like a SpanContext, but consulted only by instrumentation that asks
// for it explicitly.
package baggage
