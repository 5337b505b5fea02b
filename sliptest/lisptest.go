// Copyright © 2024 The SLIP authors

package sliptest

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser"
)

func BenchmarkParse(path string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("test", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// NewEnv returns a root environment suitable for tests.  Output written by
// the write builtin and debug output are both directed at the test log.
func NewEnv(t testing.TB) *lisp.LEnv {
	logger := NewLogger(t)
	env := lisp.NewEnv(nil)
	err := lisp.GoError(lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
		lisp.WithStdout(logger),
		lisp.WithStderr(logger),
	))
	if err != nil {
		t.Fatalf("failed to initialize lisp environment: %v", err)
	}
	return env
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
	Output string // output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		log.Printf("test %d -- %s", i, test.Name)
		env := lisp.NewEnv(nil)
		var outBuf bytes.Buffer
		err := lisp.GoError(lisp.InitializeUserEnv(env,
			lisp.WithMaximumLogicalStackHeight(50000),
			lisp.WithMaximumPhysicalStackHeight(25000),
			lisp.WithReader(parser.NewReader()),
			lisp.WithStdout(&outBuf),
			lisp.WithStderr(io.Discard),
		))
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			outBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			result := env.Eval(v[0]).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if outBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, outBuf.String())
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed
// from source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env := lisp.NewEnv(nil)
		err := lisp.GoError(lisp.InitializeUserEnv(env,
			lisp.WithMaximumLogicalStackHeight(50000),
			lisp.WithMaximumPhysicalStackHeight(25000),
			lisp.WithReader(p),
			lisp.WithStdout(io.Discard),
			lisp.WithStderr(io.Discard),
		))
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			lerr := env.Eval(expr)
			if lerr.Type == lisp.LError {
				b.Fatalf("expr %d: %v", i, lerr)
			}
		}
		b.StopTimer()
	}
}
