package baggage

import (
	"fmt"
	"sort"
	"strings"
)

// Limits on a Baggage's size, per the W3C Baggage spec.
const (
	MaxMembers       = 64
	MaxTotalKVMBytes = 8192
)

// invalidKeyChars are the RFC 7230 token-delimiter bytes a key must not
// contain, per https://datatracker.ietf.org/doc/html/rfc7230#section-3.2.6.
const invalidKeyChars = `()<>@,;:\"/[]?={} ` + "\t"

// member holds one entry's value and optional metadata.
type member struct {
	value    string
	metadata string
}

// Baggage is an immutable-by-convention set of name/value pairs (plus
// optional per-value metadata) that travels alongside a trace without
// ever being auto-attached to spans. The zero value is an empty Baggage
// ready to use.
type Baggage struct {
	entries   map[string]member
	keys      []string // insertion order
	totalSize int
}

// New returns an empty Baggage.
func New() Baggage {
	return Baggage{}
}

// Get returns the value stored under key, if any.
func (b Baggage) Get(key string) (string, bool) {
	m, ok := b.entries[key]
	return m.value, ok
}

// GetMetadata returns the metadata stored alongside key's value, if any.
func (b Baggage) GetMetadata(key string) (string, bool) {
	m, ok := b.entries[key]
	return m.metadata, ok
}

// Len returns the number of entries.
func (b Baggage) Len() int { return len(b.keys) }

// Insert returns a copy of b with key=value (and optional metadata) set,
// enforcing the 64-entry / 8192-byte limits and RFC 7230 token key
// validation. If the entry would violate a limit, or the key is invalid,
// Insert returns b unchanged and ok=false: existing state is never
// corrupted by a rejected insertion.
func (b Baggage) Insert(key, value string, metadata ...string) (Baggage, bool) {
	meta := ""
	if len(metadata) > 0 {
		meta = strings.TrimSpace(metadata[0])
	}
	if !validKey(key) {
		return b, false
	}

	_, exists := b.entries[key]
	if !exists && len(b.keys) >= MaxMembers {
		return b, false
	}

	newSize := b.totalSize + entrySize(key, value, meta)
	if exists {
		newSize -= entrySize(key, b.entries[key].value, b.entries[key].metadata)
	}
	if newSize > MaxTotalKVMBytes {
		return b, false
	}

	out := b.clone()
	if !exists {
		out.keys = append(out.keys, key)
	}
	out.entries[key] = member{value: value, metadata: meta}
	out.totalSize = newSize
	return out, true
}

// Delete returns a copy of b with key removed, if present.
func (b Baggage) Delete(key string) Baggage {
	if _, ok := b.entries[key]; !ok {
		return b
	}
	out := b.clone()
	delete(out.entries, key)
	for i, k := range out.keys {
		if k == key {
			out.keys = append(out.keys[:i], out.keys[i+1:]...)
			break
		}
	}
	out.totalSize -= entrySize(key, b.entries[key].value, b.entries[key].metadata)
	return out
}

func (b Baggage) clone() Baggage {
	out := Baggage{
		entries:   make(map[string]member, len(b.entries)+1),
		keys:      append([]string(nil), b.keys...),
		totalSize: b.totalSize,
	}
	for k, v := range b.entries {
		out.entries[k] = v
	}
	return out
}

func entrySize(key, value, metadata string) int {
	return len(key) + len(value) + len(metadata)
}

// validKey reports whether key is a non-empty RFC 7230 token: visible
// ASCII, excluding the token delimiter characters.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c <= 0x20 || c >= 0x7f || strings.IndexByte(invalidKeyChars, c) >= 0 {
			return false
		}
	}
	return true
}

// Header serializes b as a W3C Baggage header value: comma-separated
// "key=value" members (URL-encoded values), with ";metadata" appended
// when present. Entries are emitted in a stable, sorted-by-key order so
// the same Baggage always serializes identically.
func (b Baggage) Header() string {
	if len(b.keys) == 0 {
		return ""
	}
	sorted := append([]string(nil), b.keys...)
	sort.Strings(sorted)

	var sb strings.Builder
	for i, k := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		m := b.entries[k]
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(encodeValue(m.value))
		if m.metadata != "" {
			sb.WriteByte(';')
			sb.WriteString(m.metadata)
		}
	}
	return sb.String()
}

func encodeValue(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '.' || c == '-' || c == '_' || c == '~':
			sb.WriteByte(c)
		case c == ' ':
			sb.WriteString("%20")
		default:
			fmt.Fprintf(&sb, "%%%02X", c)
		}
	}
	return sb.String()
}
