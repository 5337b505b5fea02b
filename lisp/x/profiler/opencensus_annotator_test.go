package profiler_test

import (
	"context"
	"log"
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/lisp/x/profiler"
	"github.com/slip-lang/slip/parser"
	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestNewOpenCensusAnnotator(t *testing.T) {
	env := lisp.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	// Let's sample at 100% for the purposes of this test...
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	trace.RegisterExporter(new(customExporter))
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, context.Background())
	assert.NoError(t, ppa.Enable())
	lerr := lisp.InitializeUserEnv(env)
	if lisp.GoError(lerr) != nil {
		t.Fatal(lisp.GoError(lerr))
	}
	result := env.LoadString("test.slip", testSlip)
	assert.NotEqual(t, lisp.LError, result.Type)
	assert.Equal(t, "15", result.String())
	// Mark the profile as complete and dump the rest of the profile
	assert.NoError(t, ppa.Complete())
}

func TestOpenCensusAnnotatorEnableWithContext(t *testing.T) {
	env := lisp.NewEnv(nil)
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, nil)
	assert.Error(t, ppa.Enable())
	assert.Error(t, ppa.EnableWithContext(nil))
	assert.NoError(t, ppa.EnableWithContext(context.Background()))
	assert.Error(t, ppa.SetFile("profile.out"))
}

// a simple exporter that prints to the screen - in the real world, you'd go to
// one of the myriad exporters supported by opencensus
// https://opencensus.io/exporters/supported-exporters/go/
type customExporter struct{}

func (cse *customExporter) ExportSpan(sd *trace.SpanData) {
	log.Printf("Name: %s\n\tTraceID: %x\n\tSpanID: %x\n\tParentSpanID: %x\n\tStartTime: %s\n\tEndTime: %s\n\tAnnotations: %+v\n",
		sd.Name, sd.TraceID, sd.SpanID, sd.ParentSpanID, sd.StartTime, sd.EndTime, sd.Annotations)
}
