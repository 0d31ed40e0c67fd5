package resource

import (
	"os"
	"sort"
	"strings"
	"sync"

	validator "github.com/go-playground/validator/v10"
	yaml "go.yaml.in/yaml/v2"
)

// SDK identity attributes, attached to every default Resource.
const (
	AttributeSDKName     = "telemetry.sdk.name"
	AttributeSDKLanguage = "telemetry.sdk.language"
	AttributeSDKVersion  = "telemetry.sdk.version"
	AttributeServiceName = "service.name"
)

// SDKName, SDKLanguage, and SDKVersion identify this implementation in
// the default Resource's telemetry.sdk.* attributes.
const (
	SDKName     = "otelcore"
	SDKLanguage = "go"
	SDKVersion  = "0.1.0"
)

// UnknownServiceName is the service.name value given to a default
// Resource when nothing else supplies one.
const UnknownServiceName = "unknown_service"

// Attribute is a single Key/Value pair describing the producing entity.
// Value holds one of: string, bool, int64, float64.
type Attribute struct {
	Key   string
	Value any
}

// String builds a string-valued Attribute.
func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

var resourceValidate = validator.New()

// Resource is an immutable Key/Value mapping. The zero value is an empty
// resource; use New or Default to build a populated one. Once built, a
// Resource is never mutated — Merge always returns a new value.
type Resource struct {
	mu   sync.RWMutex
	attr map[string]any
	keys []string // insertion order, for stable String()/Attributes()
}

// resourceSpec is a validated intermediate used only by LoadYAML, where
// service_name is a required field.
type resourceSpec struct {
	ServiceName string            `yaml:"service_name" validate:"required"`
	Attributes  map[string]string `yaml:"attributes"`
}

// New builds a Resource from the given attributes. Later entries with a
// duplicate key overwrite earlier ones, matching the "last write wins"
// rule used by Merge.
func New(attrs ...Attribute) *Resource {
	r := &Resource{attr: make(map[string]any, len(attrs))}
	for _, a := range attrs {
		r.set(a.Key, a.Value)
	}
	return r
}

func (r *Resource) set(key string, value any) {
	if _, exists := r.attr[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.attr[key] = value
}

// Default returns the SDK's default Resource: SDK identity attributes
// plus a service.name of "unknown_service", further augmented by the
// OTEL_RESOURCE_ATTRIBUTES environment variable (comma-separated
// "key=value" pairs; malformed entries are silently skipped).
func Default() *Resource {
	r := New(
		String(AttributeSDKName, SDKName),
		String(AttributeSDKLanguage, SDKLanguage),
		String(AttributeSDKVersion, SDKVersion),
		String(AttributeServiceName, UnknownServiceName),
	)
	applyEnv(r)
	return r
}

func applyEnv(r *Resource) {
	raw, ok := os.LookupEnv("OTEL_RESOURCE_ATTRIBUTES")
	if !ok || raw == "" {
		return
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" {
			continue
		}
		r.set(k, v)
	}
}

// LoadYAML parses a small YAML document of the form:
//
//	service_name: my-service
//	attributes:
//	  deployment.environment: prod
//	  team: payments
//
// into a Resource seeded with the SDK identity attributes, returning an
// error if service_name is missing.
func LoadYAML(data []byte) (*Resource, error) {
	var spec resourceSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if err := resourceValidate.Struct(spec); err != nil {
		return nil, err
	}
	r := New(
		String(AttributeSDKName, SDKName),
		String(AttributeSDKLanguage, SDKLanguage),
		String(AttributeSDKVersion, SDKVersion),
		String(AttributeServiceName, spec.ServiceName),
	)
	keys := make([]string, 0, len(spec.Attributes))
	for k := range spec.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.set(k, spec.Attributes[k])
	}
	return r, nil
}

// Get returns the value stored under key, if any.
func (r *Resource) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.attr[key]
	return v, ok
}

// Attributes returns the Resource's attributes as a slice, in insertion
// order.
func (r *Resource) Attributes() []Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Attribute, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, Attribute{Key: k, Value: r.attr[k]})
	}
	return out
}

// Merge returns a new Resource containing a's attributes overlaid with
// b's; where both define a key, b wins. Either argument may be nil,
// treated as empty.
func Merge(a, b *Resource) *Resource {
	out := New()
	if a != nil {
		for _, attr := range a.Attributes() {
			out.set(attr.Key, attr.Value)
		}
	}
	if b != nil {
		for _, attr := range b.Attributes() {
			out.set(attr.Key, attr.Value)
		}
	}
	return out
}
