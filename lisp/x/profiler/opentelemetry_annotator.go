package profiler

import (
	"context"
	"errors"

	"github.com/slip-lang/slip/lisp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey = "otelParentTracer"
)

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    trace.Span
	contexts       []context.Context
}

// NewOpenTelemetryAnnotator returns a profiler that opens an OpenTelemetry
// span for every function call the interpreter makes.
func NewOpenTelemetryAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

func (p *otelAnnotator) SetFile(filename string) error {
	return errors.New("no need to set a file for this profiler type")
}

func (p *otelAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "slip"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(fun *lisp.LVal) {
	if p.skipTrace(fun) {
		return
	}
	funName := funName(fun)
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = contextTracer(p.currentContext).Start(p.currentContext, funName)
	p.addCodeAttributes(fun, funName)
}

func (p *otelAnnotator) End(fun *lisp.LVal) {
	if p.skipTrace(fun) {
		return
	}
	if len(p.contexts) == 0 {
		return
	}
	p.currentSpan.End()
	// And pop the current context back
	p.currentContext = p.contexts[len(p.contexts)-1]
	p.contexts = p.contexts[:len(p.contexts)-1]
	p.currentSpan = trace.SpanFromContext(p.currentContext)
}

func (p *otelAnnotator) addCodeAttributes(fun *lisp.LVal, funName string) {
	loc := getSourceLoc(fun)
	attrs := []attribute.KeyValue{
		semconv.CodeFunction(funName),
	}
	if loc != nil {
		attrs = append(attrs,
			semconv.CodeFilepath(loc.File),
			semconv.CodeLineNumber(loc.Line),
		)
	}
	p.currentSpan.SetAttributes(attrs...)
}
