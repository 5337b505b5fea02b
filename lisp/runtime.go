// Copyright © 2024 The SLIP authors

package lisp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// Runtime is an object underlying a tree of LEnv values.  It is responsible
// for holding shared environment state, generating function identifiers, and
// connecting the interpreter to its input and output streams.
type Runtime struct {
	Stack    *CallStack
	Reader   Reader
	Library  SourceLibrary
	Profiler Profiler
	Stdin    *bufio.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	numfun   atomicCounter
}

// StandardRuntime returns a new Runtime connected to the standard streams of
// the process.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack: &CallStack{
			MaxHeightPhysical: DefaultMaxHeightPhysical,
			MaxHeightLogical:  DefaultMaxHeightLogical,
		},
		Stdin:  bufio.NewReader(os.Stdin),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// GenFID returns a function identifier that is unique within the runtime.
func (r *Runtime) GenFID() string {
	return fmt.Sprintf("_fun%d", r.numfun.Add(1))
}

// sourceContext uses the CallStack to determine the location of the currently
// executing file (i.e. the file containing the `(load ...)` expression that
// is being evaluated).
func (r *Runtime) sourceContext() SourceContext {
	top := r.Stack.Top()
	if top != nil && top.Source != nil {
		return &sourceContext{
			name: top.Source.File,
			loc:  top.Source.Path,
		}
	}
	return &sourceContext{}
}

type atomicCounter uint64

func (c *atomicCounter) Add(n uint) uint {
	return uint(atomic.AddUint64((*uint64)(c), uint64(n)))
}
