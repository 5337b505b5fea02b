// Copyright © 2024 The SLIP authors

package lisp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ErrorVal implements the error interface so that errors raised during
// evaluation can be returned from Go functions naturally.  ErrorVal is
// nothing more than an LVal with type LError.
type ErrorVal LVal

// Error implements the error interface.  Errors are rendered with their
// condition type prefixed, except for the generic "error" condition.
func (e *ErrorVal) Error() string {
	buf := &bytes.Buffer{}
	if e.Str != "" && e.Str != "error" {
		fmt.Fprintf(buf, "%s: ", e.Str)
	}
	if err, ok := e.Native.(error); ok {
		buf.WriteString(err.Error())
	} else if e.Native != nil {
		fmt.Fprint(buf, e.Native)
	} else {
		buf.WriteString("unspecified error")
	}
	return buf.String()
}

// ErrorMessage returns the error's message without its condition type.
func (e *ErrorVal) ErrorMessage() string {
	if err, ok := e.Native.(error); ok {
		return err.Error()
	}
	if e.Native != nil {
		return fmt.Sprint(e.Native)
	}
	return "unspecified error"
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	stack := e.CallStack()
	if stack != nil {
		if !wrote(stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Unwrap returns the Go error underlying e, if any, to support the errors
// package matching functions.
func (e *ErrorVal) Unwrap() error {
	err, _ := e.Native.(error)
	return err
}

// Condition returns the error's condition type.
func (e *ErrorVal) Condition() string {
	return e.Str
}

// CallStack returns the call stack attached to the error, if any.
func (e *ErrorVal) CallStack() *CallStack {
	if len(e.Cells) == 0 {
		return nil
	}
	stack, _ := e.Cells[0].Native.(*CallStack)
	return stack
}

// SetCallStack stores a copy of stack in e, overwriting any previously
// attached stack.
func (e *ErrorVal) SetCallStack(stack *CallStack) {
	cell := &LVal{Type: LInvalid, Native: stack.Copy()}
	if len(e.Cells) == 0 {
		e.Cells = []*LVal{cell}
		return
	}
	e.Cells[0] = cell
}

// GoError unwraps the Go error underlying v when v has type LError.  When v
// is any other type GoError returns nil.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}
