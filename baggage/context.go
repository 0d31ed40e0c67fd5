package baggage

import "context"

type baggageContextKey struct{}

// ContextWithBaggage returns a copy of ctx carrying b as the current
// Baggage.
func ContextWithBaggage(ctx context.Context, b Baggage) context.Context {
	return context.WithValue(ctx, baggageContextKey{}, b)
}

// FromContext returns the Baggage carried by ctx, or an empty Baggage if
// none was set.
func FromContext(ctx context.Context) Baggage {
	if b, ok := ctx.Value(baggageContextKey{}).(Baggage); ok {
		return b
	}
	return New()
}
