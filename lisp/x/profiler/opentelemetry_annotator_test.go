package profiler_test

import (
	"context"
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/lisp/x/profiler"
	"github.com/slip-lang/slip/parser"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const testSlip = `
(define add-it (lambda (x y) (+ x y)))
(define twice (lambda (x) (add-it x (add-it x x))))
(twice 5)
`

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	env := lisp.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, context.Background())
	assert.NoError(t, ppa.Enable())
	lerr := lisp.InitializeUserEnv(env)
	assert.NoError(t, lisp.GoError(lerr))
	result := env.LoadString("test.slip", testSlip)
	assert.NotEqual(t, lisp.LError, result.Type, result.Str)
	assert.Equal(t, "15", result.String())
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	assert.GreaterOrEqual(t, len(spans), 3, "Expected at least three spans")
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	env := lisp.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	skipBuiltins := func(fun *lisp.LVal) bool {
		return fun.Builtin() != nil
	}
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, context.Background(),
		profiler.WithSkipFilter(skipBuiltins))
	assert.NoError(t, ppa.Enable())
	lerr := lisp.InitializeUserEnv(env)
	assert.NoError(t, lisp.GoError(lerr))
	result := env.LoadString("test.slip", testSlip)
	assert.NotEqual(t, lisp.LError, result.Type, result.Str)
	assert.NoError(t, ppa.Complete())

	// One call of twice and two calls of add-it.  Calls of + are filtered.
	spans := exporter.GetSpans()
	assert.Equal(t, 3, len(spans), "Expected selective spans")
}

func TestOpenTelemetryAnnotatorRequiresContext(t *testing.T) {
	env := lisp.NewEnv(nil)
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, nil)
	assert.Error(t, ppa.Enable())
	assert.Error(t, ppa.SetFile("profile.out"))
}
