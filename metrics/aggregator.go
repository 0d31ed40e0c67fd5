package metrics

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jonwraymond/otelcore/trace"
)

// DataPoint is one collected measurement for a StreamId: an attribute
// set and the value(s) recorded against it. Count/Sum are populated for
// AggregationHistogram (no bucket boundaries: §4.5 is a routing sketch,
// not an aggregation engine); Value is populated for
// AggregationSum/AggregationLastValue.
type DataPoint struct {
	Attributes []trace.KeyValue
	Value      float64
	Count      uint64
	Sum        float64
}

// aggregator accumulates measurements for one StreamId, grouped by
// attribute set.
type aggregator interface {
	record(value float64, attrs []trace.KeyValue)
	collect() []DataPoint
}

func newAggregator(kind Aggregation) aggregator {
	switch kind {
	case AggregationSum:
		return &sumAggregator{points: make(map[string]*sumPoint)}
	case AggregationLastValue:
		return &lastValueAggregator{points: make(map[string]*lastValuePoint)}
	case AggregationHistogram:
		return &histogramAggregator{points: make(map[string]*histogramPoint)}
	default:
		return dropAggregator{}
	}
}

// attrKey canonicalizes an attribute set into a stable map key,
// independent of the order Add/Record was called with them.
func attrKey(attrs []trace.KeyValue) string {
	if len(attrs) == 0 {
		return ""
	}
	keyed := make([]string, len(attrs))
	for i, a := range attrs {
		keyed[i] = a.Key + "=" + formatValue(a.Value)
	}
	sort.Strings(keyed)
	return strings.Join(keyed, ",")
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case []string:
		return strings.Join(x, "|")
	default:
		return ""
	}
}

type sumPoint struct {
	attrs []trace.KeyValue
	value float64
}

type sumAggregator struct {
	mu     sync.Mutex
	points map[string]*sumPoint
}

func (a *sumAggregator) record(value float64, attrs []trace.KeyValue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrKey(attrs)
	p, ok := a.points[key]
	if !ok {
		p = &sumPoint{attrs: attrs}
		a.points[key] = p
	}
	p.value += value
}

func (a *sumAggregator) collect() []DataPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]DataPoint, 0, len(a.points))
	for _, p := range a.points {
		out = append(out, DataPoint{Attributes: p.attrs, Value: p.value})
	}
	return out
}

type lastValuePoint struct {
	attrs []trace.KeyValue
	value float64
}

type lastValueAggregator struct {
	mu     sync.Mutex
	points map[string]*lastValuePoint
}

func (a *lastValueAggregator) record(value float64, attrs []trace.KeyValue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.points[attrKey(attrs)] = &lastValuePoint{attrs: attrs, value: value}
}

func (a *lastValueAggregator) collect() []DataPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]DataPoint, 0, len(a.points))
	for _, p := range a.points {
		out = append(out, DataPoint{Attributes: p.attrs, Value: p.value})
	}
	return out
}

type histogramPoint struct {
	attrs []trace.KeyValue
	count uint64
	sum   float64
}

type histogramAggregator struct {
	mu     sync.Mutex
	points map[string]*histogramPoint
}

func (a *histogramAggregator) record(value float64, attrs []trace.KeyValue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := attrKey(attrs)
	p, ok := a.points[key]
	if !ok {
		p = &histogramPoint{attrs: attrs}
		a.points[key] = p
	}
	p.count++
	p.sum += value
}

func (a *histogramAggregator) collect() []DataPoint {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]DataPoint, 0, len(a.points))
	for _, p := range a.points {
		out = append(out, DataPoint{Attributes: p.attrs, Count: p.count, Sum: p.sum})
	}
	return out
}

type dropAggregator struct{}

func (dropAggregator) record(float64, []trace.KeyValue) {}
func (dropAggregator) collect() []DataPoint             { return nil }
