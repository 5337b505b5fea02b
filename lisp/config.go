// Copyright © 2024 The SLIP authors

package lisp

import (
	"bufio"
	"io"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumLogicalStackHeight returns a Config that will prevent an
// execution environment from allowing the logical stack height to exceed n.
// The logical height of the stack is the stack's physical height plus the
// number of stack frames which have been elided due to tail recursive call
// optimizations.
func WithMaximumLogicalStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeightLogical = n
		return Nil()
	}
}

// WithMaximumPhysicalStackHeight returns a Config that will prevent an
// execution environment from allowing the physical stack height to exceed n.
// The physical stack height is the literal number of frames in the call stack
// and does not account for stack frames elided due to tail recursive call
// optimizations.
func WithMaximumPhysicalStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeightPhysical = n
		return Nil()
	}
}

// WithLoader returns a Config that executes fn against the environment.
// Despite fn having the same signature as a Config WithLoader allows a Loader
// to function more like the LEnv methods LoadFile, LoadString, etc.
func WithLoader(fn Loader) Config {
	return func(env *LEnv) *LVal {
		return fn(env)
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdin returns a Config that makes the read builtin consume input from r
// instead of the default, os.Stdin.
func WithStdin(r io.Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdin = bufio.NewReader(r)
		return Nil()
	}
}

// WithStdout returns a Config that makes the write builtin print to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithLibrary returns a Config that makes environments use l
// as a source library.
func WithLibrary(l SourceLibrary) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Library = l
		return Nil()
	}
}

// WithProfiler returns a Config that attaches a profiler to the runtime.  The
// profiler must be enabled before it records anything.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Profiler = p
		return Nil()
	}
}
