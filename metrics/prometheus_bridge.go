package metrics

import (
	"context"
	"strings"

	"github.com/jonwraymond/otelcore/trace"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusBridge exposes a Pipeline's routed ResourceMetrics as a
// prometheus.Collector: it owns no aggregation math of its own (that
// stays out of scope per §4.5), it only maps each collected Metric onto
// the Prometheus families client_golang already knows how to encode.
type PrometheusBridge struct {
	pipeline *Pipeline
	ctx      context.Context
}

// NewPrometheusBridge wraps pipeline so it can be registered with a
// prometheus.Registry. ctx is used for every Collect-triggered
// pipeline.Collect call; pass context.Background() unless callbacks
// need cancellation.
func NewPrometheusBridge(ctx context.Context, pipeline *Pipeline) *PrometheusBridge {
	return &PrometheusBridge{pipeline: pipeline, ctx: ctx}
}

var _ prometheus.Collector = (*PrometheusBridge)(nil)

// Describe is intentionally a no-op: stream names are only known once
// the wrapped pipeline has observed instrument registrations, so this
// bridge is an "unchecked" collector per prometheus.Collector's own
// contract for dynamic metric sets.
func (b *PrometheusBridge) Describe(chan<- *prometheus.Desc) {}

// Collect triggers one pipeline collection pass and emits every
// resulting data point as a Prometheus metric, labeled by the
// instrumentation scope and the data point's attribute set.
func (b *PrometheusBridge) Collect(ch chan<- prometheus.Metric) {
	rm, err := b.pipeline.Collect(b.ctx)
	if err != nil {
		return
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			b.collectMetric(ch, sm, m)
		}
	}
}

func (b *PrometheusBridge) collectMetric(ch chan<- prometheus.Metric, sm ScopeMetrics, m Metric) {
	name := sanitizeMetricName(m.StreamId.Name)
	help := m.StreamId.Description
	if help == "" {
		help = m.StreamId.Name
	}

	for _, dp := range m.Points {
		labelNames, labelValues := splitLabels(dp.Attributes)
		labelNames = append(labelNames, "otel_scope_name")
		labelValues = append(labelValues, sm.Scope.Name)

		switch m.StreamId.Aggregation {
		case AggregationHistogram:
			desc := prometheus.NewDesc(name, help, labelNames, nil)
			metric, err := prometheus.NewConstHistogram(desc, dp.Count, dp.Sum, nil, labelValues...)
			if err == nil {
				ch <- metric
			}
		default:
			valueType := prometheus.GaugeValue
			if m.StreamId.Aggregation == AggregationSum && m.StreamId.Monotonic {
				valueType = prometheus.CounterValue
			}
			desc := prometheus.NewDesc(name, help, labelNames, nil)
			metric, err := prometheus.NewConstMetric(desc, valueType, dp.Value, labelValues...)
			if err == nil {
				ch <- metric
			}
		}
	}
}

func splitLabels(attrs []trace.KeyValue) (names, values []string) {
	names = make([]string, 0, len(attrs))
	values = make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, sanitizeMetricName(a.Key))
		values = append(values, formatValue(a.Value))
	}
	return names, values
}

func sanitizeMetricName(name string) string {
	r := strings.NewReplacer(".", "_", "-", "_", " ", "_")
	return r.Replace(name)
}
