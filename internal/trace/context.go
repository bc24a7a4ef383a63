package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the attached tracer or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithParent makes spans begun from ctx children of span.
func WithParent(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, spanKey{}, span.ID())
}

// ParentFrom returns the span id attached by WithParent, or 0.
func ParentFrom(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(spanKey{}).(uint64); ok {
			return id
		}
	}
	return 0
}
