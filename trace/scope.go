package trace

// InstrumentationScope identifies the library emitting telemetry. It
// flows through the pipeline unchanged so exporters can group output by
// library.
type InstrumentationScope struct {
	Name       string
	Version    string
	SchemaURL  string
	Attributes []KeyValue
}

// KeyValue is a single attribute pair. Value holds one of: string, bool,
// int64, float64, or []string (for StringSlice attributes).
type KeyValue struct {
	Key   string
	Value any
}

// String builds a string-valued KeyValue.
func String(key, value string) KeyValue { return KeyValue{Key: key, Value: value} }

// Bool builds a bool-valued KeyValue.
func Bool(key string, value bool) KeyValue { return KeyValue{Key: key, Value: value} }

// Int64 builds an int64-valued KeyValue.
func Int64(key string, value int64) KeyValue { return KeyValue{Key: key, Value: value} }

// Float64 builds a float64-valued KeyValue.
func Float64(key string, value float64) KeyValue { return KeyValue{Key: key, Value: value} }

// StringSlice builds a []string-valued KeyValue.
func StringSlice(key string, value []string) KeyValue { return KeyValue{Key: key, Value: value} }
