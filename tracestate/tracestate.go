package tracestate

import "strings"

const (
	maxKeyLen   = 256
	maxValueLen = 256
	maxVendor   = 13
)

// Member is a single tracestate list-member: a vendor key and its opaque
// value.
type Member struct {
	Key   string
	Value string
}

// TraceState is an ordered, immutable list of Members. The zero value is
// an empty, valid TraceState.
type TraceState struct {
	members []Member
}

// Len reports the number of list-members.
func (ts TraceState) Len() int {
	return len(ts.members)
}

// Get returns the value associated with key, and whether it was present.
func (ts TraceState) Get(key string) (string, bool) {
	for _, m := range ts.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Members returns a copy of the ordered list-members.
func (ts TraceState) Members() []Member {
	out := make([]Member, len(ts.members))
	copy(out, ts.members)
	return out
}

// Insert returns a new TraceState with key set to value, moved (or added)
// to the front of the list, per the W3C "update tracestate" algorithm. It
// returns ErrInvalidKey/ErrInvalidValue if either fails validation; the
// receiver is never modified.
func (ts TraceState) Insert(key, value string) (TraceState, error) {
	if !validKey(key) {
		return ts, ErrInvalidKey
	}
	if !validValue(value) {
		return ts, ErrInvalidValue
	}

	members := make([]Member, 0, len(ts.members)+1)
	members = append(members, Member{Key: key, Value: value})
	for _, m := range ts.members {
		if m.Key != key {
			members = append(members, m)
		}
	}
	return TraceState{members: members}, nil
}

// Delete returns a new TraceState with key removed, if present. Returns
// ErrInvalidKey if key fails validation (deleting an absent-but-valid key
// is a no-op, not an error).
func (ts TraceState) Delete(key string) (TraceState, error) {
	if !validKey(key) {
		return ts, ErrInvalidKey
	}
	members := make([]Member, 0, len(ts.members))
	for _, m := range ts.members {
		if m.Key != key {
			members = append(members, m)
		}
	}
	return TraceState{members: members}, nil
}

// Header serializes the TraceState as a W3C tracestate header value:
// "k1=v1,k2=v2". An empty TraceState serializes to "".
func (ts TraceState) Header() string {
	if len(ts.members) == 0 {
		return ""
	}
	var b strings.Builder
	for i, m := range ts.members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(m.Key)
		b.WriteByte('=')
		b.WriteString(m.Value)
	}
	return b.String()
}

// FromKeyValues builds a TraceState from an ordered set of members,
// validating each. The whole call fails if any member is invalid; no
// partial TraceState is returned on error.
func FromKeyValues(members ...Member) (TraceState, error) {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if !validKey(m.Key) {
			return TraceState{}, ErrInvalidKey
		}
		if !validValue(m.Value) {
			return TraceState{}, ErrInvalidValue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return TraceState{}, nil
	}
	return TraceState{members: out}, nil
}

// Parse parses a W3C tracestate header into a TraceState. Parsing is
// all-or-nothing: if any list-member is malformed (missing "=", invalid
// key, or invalid value) the whole header is rejected and an empty
// TraceState is returned along with an error. Callers extracting a
// tracestate header defensively (§4.4.1) should fall back to the zero
// value on error rather than propagating it.
func Parse(header string) (TraceState, error) {
	if header == "" {
		return TraceState{}, nil
	}
	parts := strings.Split(header, ",")
	members := make([]Member, 0, len(parts))
	for _, part := range parts {
		idx := strings.IndexByte(part, '=')
		if idx < 0 {
			return TraceState{}, ErrInvalidKey
		}
		key := part[:idx]
		value := part[idx+1:]
		members = append(members, Member{Key: key, Value: value})
	}
	return FromKeyValues(members...)
}

// validKey reports whether key satisfies the W3C tracestate key grammar:
// 1..=256 bytes, lowercase ascii letters/digits plus "_-*/", an optional
// single "@vendor" suffix (1..=13 chars), first char a lowercase letter or
// digit.
func validKey(key string) bool {
	if len(key) == 0 || len(key) > maxKeyLen {
		return false
	}

	vendorStart := -1
	for i := 0; i < len(key); i++ {
		b := key[i]
		if !(isLowerAlpha(b) || isDigit(b) || isAllowedSpecial(b) || b == '@') {
			return false
		}

		if i == 0 && !(isLowerAlpha(b) || isDigit(b)) {
			return false
		}

		if b == '@' {
			if vendorStart >= 0 || i+1 >= len(key) || len(key)-i-1 > maxVendor {
				return false
			}
			vendorStart = i
		} else if vendorStart >= 0 && i == vendorStart+1 {
			if !(isLowerAlpha(b) || isDigit(b)) {
				return false
			}
		}
	}
	return true
}

// validValue reports whether value satisfies the W3C tracestate value
// grammar: 0..=256 bytes, any printable ASCII except "," and "=".
func validValue(value string) bool {
	if len(value) > maxValueLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		if b := value[i]; b < 0x20 || b > 0x7e || b == ',' || b == '=' {
			return false
		}
	}
	return true
}

func isLowerAlpha(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isAllowedSpecial(b byte) bool {
	return b == '_' || b == '-' || b == '*' || b == '/'
}
