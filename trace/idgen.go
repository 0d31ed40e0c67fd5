package trace

import (
	"context"
	"encoding/binary"

	"github.com/google/uuid"
)

// IdGenerator allocates TraceIDs and SpanIDs for new traces/spans. It is
// consulted by Tracer.Start whenever no valid parent SpanContext is found
// in ctx (new trace) or a valid one is found (new span in an existing
// trace).
type IdGenerator interface {
	// NewIDs returns a fresh TraceID/SpanID pair for the root span of a
	// new trace.
	NewIDs(ctx context.Context) (TraceID, SpanID)
	// NewSpanID returns a fresh SpanID for a new span within traceID.
	NewSpanID(ctx context.Context, traceID TraceID) SpanID
}

// randomIDGenerator generates IDs by drawing raw entropy from
// github.com/google/uuid's random source (the same CSPRNG-backed pool the
// package uses for uuid.New), rather than maintaining a second
// math/rand.Rand of its own.
type randomIDGenerator struct{}

// NewRandomIDGenerator returns the default IdGenerator.
func NewRandomIDGenerator() IdGenerator {
	return randomIDGenerator{}
}

func (randomIDGenerator) NewIDs(context.Context) (TraceID, SpanID) {
	var tid TraceID
	for {
		tid = TraceID(uuidBytes16())
		if tid.IsValid() {
			break
		}
	}
	var sid SpanID
	for {
		sid = spanIDFromUUID()
		if sid.IsValid() {
			break
		}
	}
	return tid, sid
}

func (randomIDGenerator) NewSpanID(context.Context, TraceID) SpanID {
	var sid SpanID
	for {
		sid = spanIDFromUUID()
		if sid.IsValid() {
			break
		}
	}
	return sid
}

// uuidBytes16 returns 16 bytes of entropy from a fresh random (v4) UUID.
func uuidBytes16() [16]byte {
	return uuid.New()
}

// spanIDFromUUID derives 8 bytes of entropy from a fresh UUID, folding the
// two halves together so a single uuid.New() call isn't wasted generating
// only 8 of its 16 bytes.
func spanIDFromUUID() SpanID {
	u := uuid.New()
	var sid SpanID
	hi := binary.BigEndian.Uint64(u[0:8])
	lo := binary.BigEndian.Uint64(u[8:16])
	binary.BigEndian.PutUint64(sid[:], hi^lo)
	return sid
}
