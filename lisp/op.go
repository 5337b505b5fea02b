// Copyright © 2024 The SLIP authors

package lisp

// specialFormFn evaluates a special form.  The args value is the unevaluated
// chain following the form's head symbol.
type specialFormFn func(env *LEnv, args *LVal) *LVal

// specialForms dispatches compound expressions on their head symbol before
// the expression can be treated as a procedure application.  Each handler
// validates the shape of its form and produces the empty value when the form
// is malformed.  The map is populated in init because the handlers evaluate
// subexpressions and therefore refer back to the map through the evaluator.
var specialForms = map[string]specialFormFn{}

func init() {
	specialForms[QuoteSymbol] = opQuote
	specialForms[DefineSymbol] = opDefine
	specialForms[IfSymbol] = opIf
	specialForms[LetSymbol] = opLet
	specialForms[LambdaSymbol] = opLambda
}

// opQuote implements (quote expr).  The quoted expression is returned without
// evaluation.  Values are immutable so the program structure itself may be
// returned without copying.
func opQuote(env *LEnv, args *LVal) *LVal {
	if args.Type != LPair || !args.Cells[1].IsNil() {
		return Nil()
	}
	return args.Cells[0]
}

// opDefine implements (define sym expr).  The expression is evaluated and its
// value bound to sym in the current environment.  The form itself evaluates
// to the empty value.
func opDefine(env *LEnv, args *LVal) *LVal {
	if args.Type != LPair {
		return Nil()
	}
	sym := args.Cells[0]
	rest := args.Cells[1]
	if sym.Type != LSymbol || rest.Type != LPair || !rest.Cells[1].IsNil() {
		return Nil()
	}
	v := env.evalInner(rest.Cells[0])
	if v.Type == LError {
		return v
	}
	if lerr := env.Put(sym, v); lerr.Type == LError {
		return lerr
	}
	return Nil()
}

// opIf implements (if test then else).  The chosen branch is evaluated in
// tail position.  A form without both branches is malformed and produces the
// empty value without evaluating the test.
func opIf(env *LEnv, args *LVal) *LVal {
	if args.Type != LPair || args.Cells[1].Type != LPair {
		return Nil()
	}
	branches := args.Cells[1]
	if branches.Cells[1].Type != LPair || !branches.Cells[1].Cells[1].IsNil() {
		return Nil()
	}
	test := env.evalInner(args.Cells[0])
	if test.Type == LError {
		return test
	}
	if test.IsTrue() {
		return env.Eval(branches.Cells[0])
	}
	return env.Eval(branches.Cells[1].Cells[0])
}

// opLet implements (let bindings body...).  Each binding is a two element
// list (sym expr).  Binding expressions are evaluated sequentially in the new
// scope, so later bindings see earlier ones.  The final body expression is
// evaluated in tail position.
func opLet(env *LEnv, args *LVal) *LVal {
	if args.Type != LPair {
		return Nil()
	}
	body := args.Cells[1]
	if body.Type != LPair {
		return Nil()
	}
	if !validBindings(args.Cells[0]) {
		return Nil()
	}
	letenv := NewEnv(env)
	for bindings := args.Cells[0]; bindings.Type == LPair; {
		b := bindings.Cells[0]
		v := letenv.evalInner(b.Cells[1].Cells[0])
		if v.Type == LError {
			return v
		}
		if lerr := letenv.Put(b.Cells[0], v); lerr.Type == LError {
			return lerr
		}
		bindings = bindings.Cells[1]
	}
	for body.Cells[1].Type == LPair {
		ret := letenv.evalInner(body.Cells[0])
		if ret.Type == LError {
			return ret
		}
		body = body.Cells[1]
	}
	return letenv.Eval(body.Cells[0])
}

// opLambda implements (lambda formals body...).  The formals are either a
// bare symbol which receives the entire argument list or a chain of
// parameter symbols, optionally terminated by a rest parameter symbol.
func opLambda(env *LEnv, args *LVal) *LVal {
	if args.Type != LPair {
		return Nil()
	}
	formals := args.Cells[0]
	if !validFormals(formals) {
		return Nil()
	}
	return env.Lambda(formals, args.Cells[1])
}

// validBindings checks the shape of a let binding list before any binding
// expression is evaluated so that a malformed form has no side effects.
func validBindings(bindings *LVal) bool {
	for bindings.Type == LPair {
		b := bindings.Cells[0]
		if b.Type != LPair || b.Cells[0].Type != LSymbol {
			return false
		}
		if b.Cells[1].Type != LPair || !b.Cells[1].Cells[1].IsNil() {
			return false
		}
		bindings = bindings.Cells[1]
	}
	return bindings.IsNil()
}

func validFormals(formals *LVal) bool {
	for formals.Type == LPair {
		if formals.Cells[0].Type != LSymbol {
			return false
		}
		formals = formals.Cells[1]
	}
	return formals.IsNil() || formals.Type == LSymbol
}
