// Copyright © 2024 The SLIP authors

package lisp

import (
	"fmt"
	"io"

	"github.com/slip-lang/slip/parser/token"
)

// The default limits placed on the size of the call stack.
const (
	DefaultMaxHeightPhysical = 25000
	DefaultMaxHeightLogical  = 50000
)

// PhysicalStackOverflowError is an error returned when the interpreter's
// physical stack height exceeds its configured limit.
type PhysicalStackOverflowError struct {
	height int
}

func (e *PhysicalStackOverflowError) Error() string {
	return fmt.Sprintf("physical stack height exceeded maximum: %d", e.height)
}

// LogicalStackOverflowError is an error returned when the interpreter's
// logical stack height exceeds its configured limit.  The logical stack
// height counts call frames elided through tail recursion.
type LogicalStackOverflowError struct {
	height int
}

func (e *LogicalStackOverflowError) Error() string {
	return fmt.Sprintf("logical stack height exceeded maximum: %d", e.height)
}

// CallStack is a function call stack.
type CallStack struct {
	Frames            []CallFrame
	MaxHeightPhysical int
	MaxHeightLogical  int
}

// CallFrame is one frame in the CallStack.
type CallFrame struct {
	Source *token.Location
	FID    string
	Name   string
	// Terminal indicates the next function call the frame makes would be in a
	// tail position.
	Terminal bool
	// HeightLogical tracks how many frames would be at this position in the
	// stack had no tail calls been elided.
	HeightLogical int
}

// QualifiedName returns a name for the frame suitable for debug output.
func (f *CallFrame) QualifiedName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.FID
}

func (f *CallFrame) String() string {
	desc := f.QualifiedName()
	if f.Terminal {
		desc += " [terminal]"
	}
	return desc
}

// Copy creates a copy of the stack so that it can be attached to an error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	cp := *s
	cp.Frames = frames
	return &cp
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// CheckHeight returns an error if the stack exceeds either of its height
// limits.  A negative limit disables the corresponding check.
func (s *CallStack) CheckHeight() error {
	if s.MaxHeightPhysical >= 0 && len(s.Frames) > s.MaxHeightPhysical {
		return &PhysicalStackOverflowError{height: len(s.Frames)}
	}
	if s.MaxHeightLogical >= 0 {
		if top := s.Top(); top != nil && top.HeightLogical > s.MaxHeightLogical {
			return &LogicalStackOverflowError{height: top.HeightLogical}
		}
	}
	return nil
}

// PushFID pushes a new stack frame with the given FID onto s.
func (s *CallStack) PushFID(src *token.Location, fid string, name string) *CallFrame {
	height := len(s.Frames)
	if top := s.Top(); top != nil && top.HeightLogical > height {
		height = top.HeightLogical
	}
	s.Frames = append(s.Frames, CallFrame{
		Source:        src,
		FID:           fid,
		Name:          name,
		HeightLogical: height,
	})
	return s.Top()
}

// TerminalSelfCall returns 1 if the frame on the top of the stack is a
// terminal frame invoking the function fid, indicating that a recursive call
// to fid may reuse that frame.  Otherwise TerminalSelfCall returns 0.  Only
// the top frame is consulted; calls through intermediate functions are not
// elided.
func (s *CallStack) TerminalSelfCall(fid string) int {
	top := s.Top()
	if top != nil && top.Terminal && top.FID == fid {
		return 1
	}
	return 0
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics
// when the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) == 0 {
		panic("pop called on an empty stack")
	}
	frame := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return frame
}

// DebugPrint prints s, one frame per line, outermost first.
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	total := 0
	n, err := fmt.Fprintf(w, "stack height %d:\n", len(s.Frames))
	total += n
	if err != nil {
		return total, err
	}
	for i := range s.Frames {
		n, err := fmt.Fprintf(w, "  %s\n", s.Frames[i].String())
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
