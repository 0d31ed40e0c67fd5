package logs

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/jonwraymond/otelcore/resource"
	"github.com/jonwraymond/otelcore/trace"
)

// resourceSetter is implemented by Processors that need the late-bound
// Resource forwarded to their Exporter once the LoggerProvider is built.
type resourceSetter interface {
	setResource(*resource.Resource)
}

// loggerProviderInner is the shared state behind every LoggerProvider
// handle and every Logger it vends. It never changes after Build, except
// for isShutdown.
type loggerProviderInner struct {
	resource   *resource.Resource
	processors []Processor
	isShutdown atomic.Bool
}

// LoggerProvider owns a Resource and an ordered list of Processors, and
// vends Logger handles scoped by InstrumentationScope. Safe for
// concurrent use; cheap to share since it is a handle around shared
// state, not a copy of it.
type LoggerProvider struct {
	inner *loggerProviderInner
}

// LoggerProviderBuilder builds a LoggerProvider via a fluent chain of
// With* calls, finished with Build.
type LoggerProviderBuilder struct {
	resource   *resource.Resource
	processors []Processor
}

// NewLoggerProviderBuilder returns an empty builder; Build fills in
// defaults for anything left unset.
func NewLoggerProviderBuilder() *LoggerProviderBuilder {
	return &LoggerProviderBuilder{}
}

// WithResource sets the Resource describing the producing entity.
// Default: resource.Default().
func (b *LoggerProviderBuilder) WithResource(r *resource.Resource) *LoggerProviderBuilder {
	b.resource = r
	return b
}

// WithLogProcessor registers a Processor. Processors run in registration
// order for OnEmit/ForceFlush/Shutdown.
func (b *LoggerProviderBuilder) WithLogProcessor(p Processor) *LoggerProviderBuilder {
	b.processors = append(b.processors, p)
	return b
}

// Build finalizes the LoggerProvider. The Resource is propagated to
// every registered Processor that accepts one before the first record
// can be emitted.
func (b *LoggerProviderBuilder) Build() *LoggerProvider {
	res := b.resource
	if res == nil {
		res = resource.Default()
	}

	inner := &loggerProviderInner{
		resource:   res,
		processors: append([]Processor(nil), b.processors...),
	}
	for _, p := range inner.processors {
		if rs, ok := p.(resourceSetter); ok {
			rs.setResource(res)
		}
	}

	lp := &LoggerProvider{inner: inner}
	// Best-effort safety net: if every handle to lp is dropped without an
	// explicit Shutdown, run one on its behalf so processors still flush
	// and release their exporters. This is not a substitute for calling
	// Shutdown: it only runs when the garbage collector happens to reclaim
	// lp, which is unspecified timing, never a calling-convention guarantee.
	runtime.AddCleanup(lp, func(inner *loggerProviderInner) {
		if inner.isShutdown.CompareAndSwap(false, true) {
			for _, p := range inner.processors {
				p.Shutdown(context.Background())
			}
		}
	}, inner)
	return lp
}

// Resource returns the Resource shared by every Logger this provider
// produces.
func (lp *LoggerProvider) Resource() *resource.Resource {
	return lp.inner.resource
}

// LoggerOption configures a Logger obtained from LoggerProvider.Logger.
type LoggerOption func(*trace.InstrumentationScope)

// WithInstrumentationVersion sets the instrumenting library's version.
func WithInstrumentationVersion(v string) LoggerOption {
	return func(s *trace.InstrumentationScope) { s.Version = v }
}

// WithSchemaURL sets the semantic-convention schema URL the
// instrumenting library conforms to.
func WithSchemaURL(url string) LoggerOption {
	return func(s *trace.InstrumentationScope) { s.SchemaURL = url }
}

// WithScopeAttributes attaches attributes to the InstrumentationScope
// itself.
func WithScopeAttributes(attrs ...trace.KeyValue) LoggerOption {
	return func(s *trace.InstrumentationScope) { s.Attributes = append(s.Attributes, attrs...) }
}

// Logger returns a Logger scoped to the named instrumenting library.
// Valid before and after Shutdown: after shutdown, the returned
// Logger's Emit is a no-op.
func (lp *LoggerProvider) Logger(name string, opts ...LoggerOption) Logger {
	scope := trace.InstrumentationScope{Name: name}
	for _, opt := range opts {
		opt(&scope)
	}
	return &loggerImpl{
		scope: scope,
		inner: lp.inner,
	}
}

// Shutdown shuts down every registered Processor in registration order,
// collecting (not short-circuiting on) individual failures. It is
// idempotent: the first caller to observe isShutdown transition from
// false to true drives shutdown and returns its aggregate result; every
// later call returns ErrAlreadyShutdown immediately.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if !lp.inner.isShutdown.CompareAndSwap(false, true) {
		return ErrAlreadyShutdown
	}
	var errs []error
	for _, p := range lp.inner.processors {
		if err := p.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ForceFlush flushes every registered Processor, succeeding only if all
// of them succeed; failures from individual processors are collected and
// joined rather than causing an early return.
func (lp *LoggerProvider) ForceFlush(ctx context.Context) error {
	var errs []error
	for _, p := range lp.inner.processors {
		if err := p.ForceFlush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
