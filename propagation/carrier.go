package propagation

import "context"

// TextMapCarrier abstracts the key/value store a propagator reads from
// and writes to: an HTTP header map, a message's metadata, etc. Keys are
// treated case-sensitively by this package; callers bridging to a
// case-insensitive transport (like net/http.Header) are responsible for
// any normalization their carrier needs.
type TextMapCarrier interface {
	// Get returns the value associated with key, or "" if absent.
	Get(key string) string
	// Set stores value under key, overwriting any existing value.
	Set(key, value string)
	// Keys returns all keys currently stored in the carrier.
	Keys() []string
}

// TextMapPropagator injects a context's propagated state into a carrier,
// and extracts it back out on the receiving side.
type TextMapPropagator interface {
	// Inject writes the span context (and any other propagated state)
	// found in ctx into carrier.
	Inject(ctx context.Context, carrier TextMapCarrier)
	// Extract returns a copy of ctx with any propagated state found in
	// carrier attached. Malformed or absent carrier data leaves ctx
	// unchanged; Extract never panics and never attaches an invalid
	// SpanContext.
	Extract(ctx context.Context, carrier TextMapCarrier) context.Context
	// Fields returns the carrier keys this propagator reads and writes,
	// so callers can pre-allocate or pre-declare them (e.g. as CORS
	// allowed headers).
	Fields() []string
}

// MapCarrier is a TextMapCarrier backed by a plain map, handy for tests
// and for transports that already deal in map[string]string.
type MapCarrier map[string]string

// Get implements TextMapCarrier.
func (c MapCarrier) Get(key string) string { return c[key] }

// Set implements TextMapCarrier.
func (c MapCarrier) Set(key, value string) { c[key] = value }

// Keys implements TextMapCarrier.
func (c MapCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// maxHeaderLen bounds how much of a single carrier value this package
// will ever attempt to parse, so a hostile caller cannot force unbounded
// work or allocation out of a single header.
const maxHeaderLen = 4096

// CompositeTextMapPropagator chains propagators: Inject calls every
// child in order; Extract calls every child in order, each building on
// the context returned by the one before it.
type CompositeTextMapPropagator []TextMapPropagator

// Inject implements TextMapPropagator.
func (c CompositeTextMapPropagator) Inject(ctx context.Context, carrier TextMapCarrier) {
	for _, p := range c {
		p.Inject(ctx, carrier)
	}
}

// Extract implements TextMapPropagator.
func (c CompositeTextMapPropagator) Extract(ctx context.Context, carrier TextMapCarrier) context.Context {
	for _, p := range c {
		ctx = p.Extract(ctx, carrier)
	}
	return ctx
}

// Fields implements TextMapPropagator.
func (c CompositeTextMapPropagator) Fields() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c {
		for _, f := range p.Fields() {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				out = append(out, f)
			}
		}
	}
	return out
}
