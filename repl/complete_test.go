// Copyright © 2024 The SLIP authors

package repl

import (
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser"
)

func TestSymbolCompleter(t *testing.T) {
	env := lisp.NewEnv(nil)
	lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
	)

	c := &symbolCompleter{env: env}

	// "c" should match car, cdr, and cons.
	candidates, offset := c.Do([]rune("(c"), 2)
	if offset != 1 {
		t.Errorf("offset = %d, want 1", offset)
	}
	if len(candidates) != 3 {
		t.Errorf("expected 3 completions for 'c', got %d", len(candidates))
	}

	// Special form names complete even though they are not bound in scope.
	candidates, offset = c.Do([]rune("(lam"), 4)
	if offset != 3 {
		t.Errorf("offset = %d, want 3", offset)
	}
	if len(candidates) != 1 {
		t.Errorf("expected 1 completion for 'lam', got %d", len(candidates))
	}

	// Completion after a quote.
	candidates, _ = c.Do([]rune("(symbol? 'de"), 12)
	if len(candidates) != 1 {
		t.Errorf("expected 1 completion for 'de', got %d", len(candidates))
	}

	// User definitions participate in completion.
	env.LoadString("test", "(define zebra 1)")
	candidates, _ = c.Do([]rune("(zeb"), 4)
	if len(candidates) != 1 {
		t.Errorf("expected 1 completion for 'zeb', got %d", len(candidates))
	}

	// "zzz-nonexistent" should have no completions.
	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	if len(candidates) != 0 {
		t.Errorf("expected no completions for 'zzz-nonexistent', got %d", len(candidates))
	}
}
