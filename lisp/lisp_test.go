// Copyright © 2024 The SLIP authors

package lisp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLValString(t *testing.T) {
	tests := []struct {
		v      *LVal
		output string
	}{
		{Nil(), "()"},
		{Bool(true), "t"},
		{Bool(false), "()"},
		{Int(0), "0"},
		{Int(-12), "-12"},
		{Symbol("abc"), "abc"},
		{Cons(Int(1), Int(2)), "(1 . 2)"},
		{Cons(Int(1), Nil()), "(1)"},
		{List(), "()"},
		{List(Int(1), Int(2), Int(3)), "(1 2 3)"},
		{List(Symbol("a"), List(Symbol("b")), Nil()), "(a (b) ())"},
		{Cons(Int(1), Cons(Int(2), Int(3))), "(1 2 . 3)"},
		{Fun("_fun1", func(env *LEnv, args *LVal) *LVal { return Nil() }), "#<procedure>"},
	}
	for i, test := range tests {
		name := fmt.Sprintf("test%d_%s", i, test.output)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.output, test.v.String())
		})
	}
}

func TestLValEqual(t *testing.T) {
	fn := Fun("_fun1", func(env *LEnv, args *LVal) *LVal { return Nil() })
	tests := []struct {
		a, b  *LVal
		equal bool
	}{
		{Nil(), Nil(), true},
		{Nil(), Int(0), false},
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{Symbol("a"), Symbol("a"), true},
		{Symbol("a"), Symbol("b"), false},
		{Symbol("1"), Int(1), false},
		{List(Int(1), Int(2)), List(Int(1), Int(2)), true},
		{List(Int(1), Int(2)), List(Int(1)), false},
		{Cons(Int(1), Int(2)), Cons(Int(1), Int(2)), true},
		{Cons(Int(1), Int(2)), List(Int(1), Int(2)), false},
		{fn, fn, true},
		{fn, Fun("_fun1", func(env *LEnv, args *LVal) *LVal { return Nil() }), false},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, test.a.Equal(test.b), "test %d", i)
		assert.Equal(t, test.equal, test.b.Equal(test.a), "test %d (sym)", i)
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		lis    *LVal
		output string
	}{
		{Nil(), "()"},
		{List(Int(1)), "(1)"},
		{List(Int(1), Int(2), Int(3)), "(3 2 1)"},
		// The terminal value of an improper list is dropped.
		{Cons(Int(1), Cons(Int(2), Int(3))), "(2 1)"},
	}
	for i, test := range tests {
		assert.Equal(t, test.output, Reverse(test.lis).String(), "test %d", i)
	}
}

func TestLValLen(t *testing.T) {
	assert.Equal(t, 0, Nil().Len())
	assert.Equal(t, 0, Int(1).Len())
	assert.Equal(t, 3, List(Int(1), Int(2), Int(3)).Len())
	assert.Equal(t, 2, Cons(Int(1), Cons(Int(2), Int(3))).Len())
}

func TestSingletons(t *testing.T) {
	// Empty lists share a singleton so it must never be mutated.
	assert.True(t, Nil() == Nil())
	assert.True(t, Bool(true) == Bool(true))
	assert.Equal(t, LSymbol, Bool(true).Type)
	assert.Equal(t, TrueSymbol, Bool(true).Str)
}
