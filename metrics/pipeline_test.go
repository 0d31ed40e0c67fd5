package metrics

import (
	"context"
	"testing"

	"github.com/jonwraymond/otelcore/trace"
)

func TestPipelineCreateInstrumentAndCollectSum(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	desc := InstrumentDescriptor{Name: "requests", Kind: InstrumentKindCounter}
	inst := p.CreateInstrument(desc, NumberKindInt64, TemporalityCumulative)

	inst.Record(1, trace.String("route", "/a"))
	inst.Record(2, trace.String("route", "/a"))
	inst.Record(5, trace.String("route", "/b"))

	rm, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(rm.ScopeMetrics) != 1 || len(rm.ScopeMetrics[0].Metrics) != 1 {
		t.Fatalf("ResourceMetrics = %+v, want one scope with one metric", rm)
	}
	points := rm.ScopeMetrics[0].Metrics[0].Points
	var total float64
	for _, dp := range points {
		total += dp.Value
	}
	if total != 8 {
		t.Errorf("summed value across attribute sets = %v, want 8", total)
	}
	if len(points) != 2 {
		t.Errorf("distinct attribute-keyed points = %d, want 2 (/a and /b)", len(points))
	}
}

func TestPipelineSkippedInstrumentYieldsNoMetric(t *testing.T) {
	p := NewPipeline(nil, nil, nil, Drop("ignored"))
	desc := InstrumentDescriptor{Name: "ignored", Kind: InstrumentKindCounter}
	inst := p.CreateInstrument(desc, NumberKindInt64, TemporalityCumulative)
	inst.Record(42)

	rm, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(rm.ScopeMetrics) != 0 {
		t.Errorf("ScopeMetrics = %+v, want none for a dropped instrument", rm.ScopeMetrics)
	}
}

func TestPipelineRunsObservableCallbacks(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	desc := InstrumentDescriptor{Name: "queue.depth", Kind: InstrumentKindObservableGauge}
	inst := p.CreateInstrument(desc, NumberKindInt64, TemporalityCumulative)

	called := false
	p.RegisterCallback(desc.Scope, func(ctx context.Context) error {
		called = true
		inst.Record(7)
		return nil
	})

	rm, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if !called {
		t.Fatalf("registered callback was not invoked during Collect")
	}
	if rm.ScopeMetrics[0].Metrics[0].Points[0].Value != 7 {
		t.Errorf("observed gauge value = %v, want 7", rm.ScopeMetrics[0].Metrics[0].Points[0].Value)
	}
}

func TestPipelineHistogramAggregatesCountAndSum(t *testing.T) {
	p := NewPipeline(nil, nil, nil)
	desc := InstrumentDescriptor{Name: "latency", Kind: InstrumentKindHistogram}
	inst := p.CreateInstrument(desc, NumberKindFloat64, TemporalityCumulative)

	inst.Record(1.5)
	inst.Record(2.5)

	rm, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	dp := rm.ScopeMetrics[0].Metrics[0].Points[0]
	if dp.Count != 2 {
		t.Errorf("Count = %d, want 2", dp.Count)
	}
	if dp.Sum != 4 {
		t.Errorf("Sum = %v, want 4", dp.Sum)
	}
}
