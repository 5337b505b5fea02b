// Copyright © 2024 The SLIP authors

package lisp

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/slip-lang/slip/parser/token"
)

// InitializeUserEnv creates the default user environment.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	env.AddBuiltins(DefaultBuiltins()...)
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Nil()
}

// LEnv is a lisp environment.  Symbol lookups traverse the Parent chain up to
// the root environment; lookups which fail everywhere produce the empty
// value rather than an error.
type LEnv struct {
	Loc     *token.Location
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnvRuntime initializes a new LEnv, like NewEnv, but it explicitly
// specifies the runtime to use.  NewEnvRuntime is only suitable for creating
// a root LEnv object, so it does not take a parent argument.  When rt is nil
// StandardRuntime() is called to create a new Runtime for the returned LEnv.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		Scope:   make(map[string]*LVal),
		Runtime: rt,
	}
}

// NewEnv initializes and returns a new LEnv.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	var loc *token.Location
	if parent != nil {
		runtime = parent.Runtime
		loc = parent.Loc
	} else {
		runtime = StandardRuntime()
		loc = nativeSource()
	}
	return &LEnv{
		Loc:     loc,
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

// LoadString parses and evaluates the expressions contained in exprs.
func (env *LEnv) LoadString(name, exprs string) *LVal {
	return env.Load(name, strings.NewReader(exprs))
}

// LoadFile attempts to use env.Runtime.Library to read a source file and
// evaluate the expressions it contains.  Any error encountered will prevent
// execution of loaded source and be returned.  If env.Runtime.Reader has not
// been set then an error will be returned by LoadFile.
func (env *LEnv) LoadFile(name string) *LVal {
	if env.Runtime.Library == nil {
		return env.Errorf("no source library in environment runtime")
	}
	ctx := env.Runtime.sourceContext()
	loc, src, err := env.Runtime.Library.LoadSource(ctx, name)
	if err != nil {
		return env.Errorf("library error: %v", err)
	}
	return env.LoadLocation(name, loc, bytes.NewReader(src))
}

// Load reads LVals from r and evaluates them in order.  The value returned by
// the last evaluated LVal will be returned.  If env.Runtime.Reader has not
// been set then an error will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return env.Error(err)
	}
	return env.load(exprs)
}

// LoadLocation is like Load but it explicitly specifies a physical location
// for the stream so that errors can reference it.  When env.Runtime.Reader
// does not implement LocationReader the location is ignored.
func (env *LEnv) LoadLocation(name string, loc string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	reader, ok := env.Runtime.Reader.(LocationReader)
	if !ok {
		return env.Load(name, r)
	}
	exprs, err := reader.ReadLocation(name, loc, r)
	if err != nil {
		return env.Error(err)
	}
	return env.load(exprs)
}

func (env *LEnv) load(exprs []*LVal) *LVal {
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.  Symbols
// with no binding anywhere on the environment chain produce the empty value.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return Nil()
	}
	// The canonical true symbol is a constant in every environment.
	if k.Str == TrueSymbol {
		return singletonTrue
	}
	for {
		v, ok := env.Scope[k.Str]
		if ok {
			return v
		}
		if env.Parent == nil {
			return Nil()
		}
		env = env.Parent
	}
}

// Put takes an LSymbol k and binds it to v in env.  If k is already bound to
// a value the binding is updated so that k is bound to v.
func (env *LEnv) Put(k, v *LVal) *LVal {
	if k.Type != LSymbol {
		return env.Errorf("key is not a symbol: %v", k.Type)
	}
	if k.Str == TrueSymbol {
		return env.Errorf("cannot rebind constant: %v", k.Str)
	}
	env.Scope[k.Str] = v
	return Nil()
}

// Lambda returns a new function closing over env.  The formals value is
// either a chain of parameter symbols, possibly terminated by a rest
// parameter, or a bare symbol which receives the entire argument list.
func (env *LEnv) Lambda(formals *LVal, body *LVal) *LVal {
	return &LVal{
		Type:   LFun,
		Source: env.Loc,
		Native: &LFunData{
			FID: env.Runtime.GenFID(),
			Env: env,
		},
		Cells: []*LVal{formals, body},
	}
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in the environment.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	for _, f := range funs {
		k := Symbol(f.Name())
		id := fmt.Sprintf("<builtin ``%s''>", f.Name())
		v := Fun(id, f.Eval)
		v.FunData().Env = env
		env.Scope[k.Str] = v
	}
}

// Error returns an LError value with an error message given by rendering msg.
//
// Unlike the exported function, the Error method returns an LVal with a copy
// of env.Runtime.Stack.
func (env *LEnv) Error(err error) *LVal {
	return env.ErrorCondition("error", err)
}

// ErrorCondition returns an LError with the given condition type.
//
// Unlike the exported function, the ErrorCondition method returns an LVal
// with a copy of env.Runtime.Stack.
func (env *LEnv) ErrorCondition(condition string, err error) *LVal {
	lerr := &LVal{
		Source: env.Loc,
		Type:   LError,
		Str:    condition,
		Native: err,
	}
	(*ErrorVal)(lerr).SetCallStack(env.Runtime.Stack)
	return lerr
}

// Errorf returns an LError value with a formatted error message.
//
// Unlike the exported function, the Errorf method returns an LVal with a copy
// of env.Runtime.Stack.
func (env *LEnv) Errorf(format string, v ...interface{}) *LVal {
	return env.ErrorConditionf("error", format, v...)
}

// ErrorConditionf returns an LError value with the given condition type and a
// formatted error message rendered using fmt.Sprintf.
//
// Unlike the exported function, the ErrorConditionf method returns an LVal
// with a copy of env.Runtime.Stack.
func (env *LEnv) ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return env.ErrorCondition(condition, fmt.Errorf(format, v...))
}

// ErrorAssociate associates the LError value lerr with env's current call
// stack and source location.  ErrorAssociate panics if lerr is not LError.
func (env *LEnv) ErrorAssociate(lerr *LVal) {
	if lerr.Type != LError {
		panic("not an error: " + lerr.Type.String())
	}
	if (*ErrorVal)(lerr).CallStack() == nil {
		(*ErrorVal)(lerr).SetCallStack(env.Runtime.Stack)
	}
	if lerr.Source == nil || lerr.Source.Pos < 0 {
		lerr.Source = env.Loc
	}
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
func (env *LEnv) Eval(v *LVal) *LVal {
	env.Loc = v.Source
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LPair:
		res := env.evalSExpr(v)
		if res.Type == LError {
			env.ErrorAssociate(res)
		}
		return res
	case LMarkTailRec:
		panic("tail recursion marker used as expression")
	default:
		// Ints, the empty value, procedures, and errors are self evaluating.
		return v
	}
}

// evalSExpr evaluates a compound expression.  A pair whose first element is a
// special form head symbol dispatches to the form's handler with the rest of
// the expression unevaluated.  Every other pair is a procedure application.
func (env *LEnv) evalSExpr(s *LVal) *LVal {
	head := s.Cells[0]
	if head.Type == LSymbol {
		if op, ok := specialForms[head.Str]; ok {
			return op(env, s.Cells[1])
		}
	}
	fun, args := env.evalCallCells(s)
	if fun.Type == LError {
		return fun
	}
	return env.FunCall(fun, args)
}

// evalCallCells evaluates the head and arguments of an application.  The
// frame under evaluation is marked non-terminal for the duration so that no
// tail recursion marker can be produced while a call is still pending.
func (env *LEnv) evalCallCells(s *LVal) (fun *LVal, args *LVal) {
	loc := env.Loc
	defer func() { env.Loc = loc }()

	if top := env.Runtime.Stack.Top(); top != nil && top.Terminal {
		top.Terminal = false
		defer func() { top.Terminal = true }()
	}
	f := env.Eval(s.Cells[0])
	if f.Type == LError {
		return f, nil
	}
	if f.Type == LMarkTailRec {
		_, _ = env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
		log.Panicf("tail recursion optimization attempted during argument evaluation: %v", f.Cells)
	}
	if f.Type != LFun {
		return env.Errorf("first element of expression is not a procedure: %v", f), nil
	}

	var cells []*LVal
	for rest := s.Cells[1]; rest.Type == LPair; rest = rest.Cells[1] {
		v := env.Eval(rest.Cells[0])
		if v.Type == LError {
			return v, nil
		}
		if v.Type == LMarkTailRec {
			_, _ = env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
			log.Panicf("tail recursion optimization attempted during argument evaluation: %v", v.Cells)
		}
		cells = append(cells, v)
	}
	return f, List(cells...)
}

// evalInner evaluates v in a non-tail position.  The frame under evaluation
// is marked non-terminal for the duration so that no tail recursion marker
// can escape through a form's subexpression.
func (env *LEnv) evalInner(v *LVal) *LVal {
	if top := env.Runtime.Stack.Top(); top != nil && top.Terminal {
		top.Terminal = false
		defer func() { top.Terminal = true }()
	}
	r := env.Eval(v)
	if r.Type == LMarkTailRec {
		_, _ = env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
		log.Panicf("tail recursion optimization attempted in a non-tail position: %v", r.Cells)
	}
	return r
}

// FunCall invokes procedure fun with the argument list args.
func (env *LEnv) FunCall(fun, args *LVal) *LVal {
	return env.funCall(fun, args)
}

func (env *LEnv) trace(fun *LVal) func() {
	p := env.Runtime.Profiler
	if p == nil || !p.IsEnabled() {
		return func() {}
	}
	p.Start(fun)
	return func() { p.End(fun) }
}

func (env *LEnv) funCall(fun, args *LVal) *LVal {
	if fun.Type != LFun {
		return env.Errorf("not a procedure: %v", fun.Type)
	}

	if env.Runtime.Profiler != nil {
		defer env.trace(fun)()
	}

	// Check for possible tail recursion before pushing the callee's frame.
	// Only a terminal call to the function occupying the top frame may reuse
	// that frame.
	npop := env.Runtime.Stack.TerminalSelfCall(fun.FID())

	env.Runtime.Stack.PushFID(env.Loc, fun.FID(), "")
	defer env.Runtime.Stack.Pop()
	if err := env.Runtime.Stack.CheckHeight(); err != nil {
		return env.Error(err)
	}

	if npop > 0 {
		return markTailRec(npop, fun, args)
	}

callf:
	r := env.call(fun, args)
	if r == nil {
		_, _ = env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
		panic("nil LVal returned from procedure call")
	}
	if r.Type == LError {
		return r
	}

	if r.Type == LMarkTailRec {
		// Tail recursion optimization is occurring.
		done := decrementMarkTailRec(r)
		if done {
			env.Runtime.Stack.Top().HeightLogical += r.tailRecElided()
			err := env.Runtime.Stack.CheckHeight()
			if err != nil {
				return env.Error(err)
			}
			fun, args = extractMarkTailRec(r)
			goto callf
		}
	}

	return r
}

// call invokes LFun fun with the list args.  In general it is not safe to
// call env.call because the stack must be set up for tail recursion
// optimization.
func (env *LEnv) call(fun *LVal, args *LVal) *LVal {
	// The frame may be re-entered through the tail recursion loop with its
	// Terminal flag still set from the previous pass.  Clear it so that only
	// the final body expression below reinstates it.
	if top := env.Runtime.Stack.Top(); top != nil {
		top.Terminal = false
	}

	fn := fun.Builtin()
	if fn != nil {
		return fn(env, args)
	}

	fenv := env.bind(fun, args)
	body := fun.Cells[1]
	if body.Type != LPair {
		return Nil()
	}
	for body.Cells[1].Type == LPair {
		ret := fenv.Eval(body.Cells[0])
		if ret.Type == LError {
			return ret
		}
		if ret.Type == LMarkTailRec {
			_, _ = env.Runtime.Stack.DebugPrint(env.Runtime.Stderr)
			panic("tail recursion optimization attempted in a non-tail position")
		}
		body = body.Cells[1]
	}
	env.Runtime.Stack.Top().Terminal = true
	return fenv.Eval(body.Cells[0])
}

// bind returns a new environment for executing fun with args bound to its
// formal parameters.  Surplus arguments are ignored and parameters with no
// matching argument are left unbound.  A rest parameter receives the chain of
// remaining arguments.
//
// The bind function does not modify fun or args.
func (env *LEnv) bind(fun, args *LVal) *LEnv {
	fenv := NewEnv(fun.Env())
	formals := fun.Cells[0]
	for {
		if formals.Type == LSymbol {
			// Rest parameter, or a bare symbol receiving all arguments.
			fenv.Put(formals, args)
			return fenv
		}
		if formals.Type != LPair || args.Type != LPair {
			return fenv
		}
		fenv.Put(formals.Cells[0], args.Cells[0])
		formals = formals.Cells[1]
		args = args.Cells[1]
	}
}
