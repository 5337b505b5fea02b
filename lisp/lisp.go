// Copyright © 2024 The SLIP authors

package lisp

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/slip-lang/slip/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LInt values store an int in the LVal.Int field.
	LInt
	// LSymbol values store a string representation of the symbol in the
	// LVal.Str field.
	LSymbol
	// LNil is the unique empty value.  It terminates proper lists, stands in
	// for false, and is the result of every operation with nothing better to
	// return.  There is exactly one LNil value, shared everywhere.
	LNil
	// LPair values are cons cells.  The LVal.Cells slice holds exactly two
	// items, the first and rest slots of the pair.  A pair is immutable once
	// constructed and may be shared freely; quoted program structure is
	// returned to callers without copying.
	LPair
	// LFun values store an *LFunData in the LVal.Native field.  A function
	// defined in lisp (with lambda) additionally uses LVal.Cells to store the
	// following items:
	//		[0] the formal parameter list (a symbol chain, possibly dotted,
	//		    or a bare symbol for fully variadic functions)
	//		[1] the chain of body expressions (possibly empty)
	LFun
	// LError values store an error condition in the LVal.Str field, the
	// underlying Go error in the LVal.Native field, and a copy of the call
	// stack at the time of their creation in LVal.Cells[0].Native (when
	// produced through an LEnv).
	LError
	// LMarkTailRec values transmit tail-recursion control transfers up the Go
	// call stack as ordinary return values.  The environment is solely
	// responsible for creating and consuming marks; they are never valid
	// inputs to evaluation and must not escape the evaluator.
	LMarkTailRec
	// LTypeMax is not a real type.  It is numerically greater than all valid
	// LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid:     "INVALID",
	LInt:         "int",
	LSymbol:      "symbol",
	LNil:         "nil",
	LPair:        "pair",
	LFun:         "procedure",
	LError:       "error",
	LMarkTailRec: "marker-tail-recursion",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is a Go function backing a native procedure.  The args value is a
// proper list of already evaluated argument values.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LFunData holds the parts of a function that can't be represented as lisp
// values.
type LFunData struct {
	Builtin LBuiltin
	Env     *LEnv
	FID     string
}

// LVal is a lisp value
type LVal struct {
	// Native is generic storage for data which cannot be represented as an
	// LVal (function data, Go errors).
	Native interface{}

	// Source is the value's originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be shared
	// by multiple LVals.
	Source *token.Location

	// Str is used by LSymbol and LError values.
	Str string

	// Cells is used by LPair and LFun values as storage for lisp objects.
	Cells []*LVal

	// Type is the native type for a value in lisp.
	Type LType

	// Int is used by LInt values.
	Int int
}

// Shared singletons for the empty value and the canonical true symbol.  Both
// are immutable; no operation in the dialect mutates constructed values.
var (
	singletonNil  = &LVal{Source: nativeSource(), Type: LNil}
	singletonTrue = &LVal{Source: nativeSource(), Type: LSymbol, Str: TrueSymbol}
)

// Nil returns the unique empty value.  The returned value is a shared
// singleton and must not be mutated.
func Nil() *LVal {
	return singletonNil
}

// Bool returns the canonical truthy symbol when b is true and Nil otherwise.
// Anything other than Nil is true under the dialect's truthiness rule.
func Bool(b bool) *LVal {
	if b {
		return singletonTrue
	}
	return singletonNil
}

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LInt,
		Int:    x,
	}
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LSymbol,
		Str:    s,
	}
}

// Cons returns a pair with the given first and rest slots.  The returned pair
// is immutable; callers may share it freely.
func Cons(car, cdr *LVal) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LPair,
		Cells:  []*LVal{car, cdr},
	}
}

// List returns a proper list containing the given values in order.
func List(vals ...*LVal) *LVal {
	lis := Nil()
	for i := len(vals) - 1; i >= 0; i-- {
		lis = Cons(vals[i], lis)
	}
	return lis
}

// Reverse returns a proper list with the elements of the proper list lis in
// reverse order.  The input chain is not modified.
func Reverse(lis *LVal) *LVal {
	acc := Nil()
	for lis.Type == LPair {
		acc = Cons(lis.Cells[0], acc)
		lis = lis.Cells[1]
	}
	return acc
}

// Fun returns an LVal representing a native procedure.
func Fun(fid string, fn LBuiltin) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LFun,
		Native: &LFunData{
			FID:     fid,
			Builtin: fn,
		},
	}
}

// Error returns an LError representing err.  The Env.Error method is
// typically preferred because it records the call stack.
func Error(err error) *LVal {
	return ErrorCondition("error", err)
}

// ErrorCondition returns an LError representing err and having the given
// condition type.  The condition type must be a valid lisp symbol.
func ErrorCondition(condition string, err error) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LError,
		Str:    condition,
		Native: err,
	}
}

// Errorf returns an LError with a formatted error message.
func Errorf(format string, v ...interface{}) *LVal {
	return ErrorConditionf("error", format, v...)
}

// ErrorConditionf returns an LError with the given condition type and a
// formatted error message.
func ErrorConditionf(condition string, format string, v ...interface{}) *LVal {
	return ErrorCondition(condition, fmt.Errorf(format, v...))
}

func markTailRec(npop int, fun *LVal, args *LVal) *LVal {
	return &LVal{
		Type:  LMarkTailRec,
		Cells: []*LVal{Int(npop), Int(npop), fun, args},
	}
}

func (v *LVal) tailRecElided() int {
	if v.Type != LMarkTailRec {
		panic("not marker-tail-recursion")
	}
	return v.Cells[1].Int
}

func (v *LVal) tailRecFun() *LVal {
	if v.Type != LMarkTailRec {
		panic("not marker-tail-recursion")
	}
	return v.Cells[2]
}

func (v *LVal) tailRecArgs() *LVal {
	if v.Type != LMarkTailRec {
		panic("not marker-tail-recursion")
	}
	return v.Cells[3]
}

// Decrement the tail recursion counter until it indicates 0 additional stack
// frames should be popped.  When that happens we can jump into the next call.
//
// mark must be LMarkTailRec
func decrementMarkTailRec(mark *LVal) (done bool) {
	if len(mark.Cells) != 4 {
		panic("invalid mark")
	}
	mark.Cells[0].Int--
	return mark.Cells[0].Int <= 0
}

func extractMarkTailRec(mark *LVal) (fun, args *LVal) {
	return mark.tailRecFun(), mark.tailRecArgs()
}

// Car returns the first slot of a pair.  Car panics if v is not a pair.
func (v *LVal) Car() *LVal {
	if v.Type != LPair {
		panic("not a pair: " + v.Type.String())
	}
	return v.Cells[0]
}

// Cdr returns the rest slot of a pair.  Cdr panics if v is not a pair.
func (v *LVal) Cdr() *LVal {
	if v.Type != LPair {
		panic("not a pair: " + v.Type.String())
	}
	return v.Cells[1]
}

func (v *LVal) FunData() *LFunData {
	if v.Type != LFun {
		panic("not a function: " + v.Type.String())
	}
	return v.Native.(*LFunData)
}

func (v *LVal) Builtin() LBuiltin {
	return v.FunData().Builtin
}

func (v *LVal) FID() string {
	return v.FunData().FID
}

func (v *LVal) Env() *LEnv {
	return v.FunData().Env
}

// IsNil returns true if v is the empty value.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsTrue returns true if v is truthy.  Every value other than the empty value
// is truthy.
func (v *LVal) IsTrue() bool {
	return v.Type != LNil
}

// Len returns the number of elements in the proper-list prefix of v.  The
// terminal value of an improper list is not counted.
func (v *LVal) Len() int {
	n := 0
	for v.Type == LPair {
		n++
		v = v.Cells[1]
	}
	return n
}

// Equal returns true if v and other are structurally equal.  Procedures are
// equal only when they are the same object.
func (v *LVal) Equal(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNil:
		return true
	case LInt:
		return v.Int == other.Int
	case LSymbol:
		return v.Str == other.Str
	case LPair:
		return v.Cells[0].Equal(other.Cells[0]) && v.Cells[1].Equal(other.Cells[1])
	case LFun:
		return v == other
	default:
		return v == other
	}
}

func (v *LVal) String() string {
	switch v.Type {
	case LInt:
		return strconv.Itoa(v.Int)
	case LSymbol:
		return v.Str
	case LNil:
		return "()"
	case LFun:
		return "#<procedure>"
	case LError:
		return (*ErrorVal)(v).Error()
	case LPair:
		return pairString(v)
	case LMarkTailRec:
		return fmt.Sprintf("#<tail-recursion frames=%d (%s %s)>", v.Cells[0].Int, v.Cells[2], v.Cells[3])
	default:
		return fmt.Sprintf("#<%s %#v>", v.Type, v)
	}
}

func pairString(v *LVal) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for {
		buf.WriteString(v.Cells[0].String())
		v = v.Cells[1]
		if v.Type != LPair {
			break
		}
		buf.WriteString(" ")
	}
	if !v.IsNil() {
		buf.WriteString(" . ")
		buf.WriteString(v.String())
	}
	buf.WriteString(")")
	return buf.String()
}

var defaultSourceLocation = &token.Location{
	File: "<native code>",
	Pos:  -1,
}

func nativeSource() *token.Location {
	return defaultSourceLocation
}
