package profiler

import (
	"fmt"
	"regexp"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser/token"
)

// SkipFilter decides whether a function should be excluded from profiling
// output.
type SkipFilter func(fun *lisp.LVal) bool

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

// WithSkipFilter configures a filter excluding functions from profiling
// output.
func WithSkipFilter(fn SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = fn
	}
}

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *lisp.LVal) bool {
	return !p.enabled || v.Type != lisp.LFun || p.skipFilter != nil && p.skipFilter(v)
}

var builtinRegex = regexp.MustCompile("\\<builtin \\`\\`(.*)\\'\\'\\>")

// Gets a canonical version of the function name suitable for human viewing.
func getFunNameFromFID(in string) string {
	if !builtinRegex.MatchString(in) {
		return in
	}
	return builtinRegex.FindStringSubmatch(in)[1]
}

// funName constructs a pretty canonical name using the function identifier.
func funName(fun *lisp.LVal) string {
	if fun.Type != lisp.LFun {
		return ""
	}
	funData := fun.FunData()
	if funData == nil {
		return ""
	}
	return getFunNameFromFID(funData.FID)
}

func getSourceLoc(fun *lisp.LVal) *token.Location {
	if fun.Source != nil {
		return fun.Source
	}
	if len(fun.Cells) > 0 {
		if cell := fun.Cells[0]; cell != nil && cell.Source != nil {
			return cell.Source
		}
	}
	return nil
}
