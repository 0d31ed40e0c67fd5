package oteltest

import "net/http"

// HeaderCarrier adapts an http.Header to propagation.TextMapCarrier.
// http.Header canonicalizes keys on Set/Get (net/textproto's
// CanonicalMIMEHeaderKey), so propagators that write lower-case keys
// (traceparent, tracestate, b3, ...) round-trip correctly.
type HeaderCarrier http.Header

// Get implements propagation.TextMapCarrier.
func (c HeaderCarrier) Get(key string) string {
	return http.Header(c).Get(key)
}

// Set implements propagation.TextMapCarrier.
func (c HeaderCarrier) Set(key, value string) {
	http.Header(c).Set(key, value)
}

// Keys implements propagation.TextMapCarrier.
func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
