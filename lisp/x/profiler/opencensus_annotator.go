package profiler

import (
	"context"
	"errors"

	"github.com/slip-lang/slip/lisp"
	"go.opencensus.io/trace"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       []context.Context
}

// NewOpenCensusAnnotator returns a profiler that opens an OpenCensus span for
// every function call the interpreter makes.
func NewOpenCensusAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) SetFile(filename string) error {
	return errors.New("no need to set a file for this profiler type")
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(fun *lisp.LVal) {
	if p.skipTrace(fun) {
		return
	}
	fName := funName(fun)
	p.contexts = append(p.contexts, p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, fName)
}

func (p *ocAnnotator) End(fun *lisp.LVal) {
	if p.skipTrace(fun) {
		return
	}
	if len(p.contexts) == 0 {
		return
	}
	loc := getSourceLoc(fun)
	if loc != nil {
		p.currentSpan.Annotate([]trace.Attribute{
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		}, "source")
	}
	p.currentSpan.End()
	// And pop the current context back
	p.currentContext = p.contexts[len(p.contexts)-1]
	p.contexts = p.contexts[:len(p.contexts)-1]
	p.currentSpan = trace.FromContext(p.currentContext)
}
