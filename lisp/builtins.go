// Copyright © 2024 The SLIP authors

package lisp

import (
	"fmt"
	"strings"
)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *LVal) *LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var langBuiltins = []*langBuiltin{
	{"car", builtinCAR},
	{"cdr", builtinCDR},
	{"cons", builtinCons},
	{"=", builtinEq},
	{"symbol?", builtinIsSymbol},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"write", builtinWrite},
	{"read", builtinRead},
	{"load", builtinLoad},
}

// DefaultBuiltins returns the default set of builtin definitions an
// environment is initialized with.
func DefaultBuiltins() []LBuiltinDef {
	funs := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		funs[i] = langBuiltins[i]
	}
	return funs
}

// argv flattens the argument chain given to a builtin into a slice.
func argv(args *LVal) []*LVal {
	v := make([]*LVal, 0, args.Len())
	for args.Type == LPair {
		v = append(v, args.Cells[0])
		args = args.Cells[1]
	}
	return v
}

func builtinCAR(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 1 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	if v[0].Type != LPair {
		return env.Errorf("argument 1 is not a pair: %v", v[0].Type)
	}
	return v[0].Cells[0]
}

func builtinCDR(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 1 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	if v[0].Type != LPair {
		return env.Errorf("argument 1 is not a pair: %v", v[0].Type)
	}
	return v[0].Cells[1]
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 2 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	return Cons(v[0], v[1])
}

// builtinEq compares the empty value and symbols.  Two empty values are
// equal, two symbols are equal when they have the same name, and every other
// comparison produces the empty value, including comparisons between numbers.
func builtinEq(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 2 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	a, b := v[0], v[1]
	if a.IsNil() && b.IsNil() {
		return Bool(true)
	}
	if a.Type == LSymbol && b.Type == LSymbol {
		return Bool(a.Str == b.Str)
	}
	return Bool(false)
}

func builtinIsSymbol(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 1 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	return Bool(v[0].Type == LSymbol)
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	sum := 0
	for i, x := range argv(args) {
		if x.Type != LInt {
			return env.Errorf("argument %d is not a number: %v", i+1, x.Type)
		}
		sum += x.Int
	}
	return Int(sum)
}

// builtinSub subtracts the sum of any remaining arguments from the first.  A
// single argument is negated.
func builtinSub(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) == 0 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	for i, x := range v {
		if x.Type != LInt {
			return env.Errorf("argument %d is not a number: %v", i+1, x.Type)
		}
	}
	if len(v) == 1 {
		return Int(-v[0].Int)
	}
	diff := v[0].Int
	for _, x := range v[1:] {
		diff -= x.Int
	}
	return Int(diff)
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	prod := 1
	for i, x := range argv(args) {
		if x.Type != LInt {
			return env.Errorf("argument %d is not a number: %v", i+1, x.Type)
		}
		prod *= x.Int
	}
	return Int(prod)
}

func builtinWrite(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 1 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	_, err := fmt.Fprintln(env.Runtime.Stdout, v[0].String())
	if err != nil {
		return env.Error(err)
	}
	return Nil()
}

// builtinRead reads a line of text from the runtime's input stream and parses
// a single expression from it.  A blank line or end of input produces the
// empty value.
func builtinRead(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 0 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	if env.Runtime.Stdin == nil {
		return env.Errorf("no input stream for environment runtime")
	}
	line, err := env.Runtime.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return Nil()
	}
	exprs, err := env.Runtime.Reader.Read("<stdin>", strings.NewReader(line))
	if err != nil {
		return env.Error(err)
	}
	if len(exprs) == 0 {
		return Nil()
	}
	return exprs[0]
}

// builtinLoad evaluates the named source file in a fresh environment layered
// over the root environment so that definitions from the file do not leak
// into the calling scope's lexical frame.
func builtinLoad(env *LEnv, args *LVal) *LVal {
	v := argv(args)
	if len(v) != 1 {
		return env.Errorf("invalid number of arguments: %d", len(v))
	}
	if v[0].Type != LSymbol {
		return env.Errorf("argument is not a symbol: %v", v[0].Type)
	}
	fileEnv := NewEnv(env.root())
	return fileEnv.LoadFile(v[0].Str)
}
