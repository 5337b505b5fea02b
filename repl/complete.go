// Copyright © 2024 The SLIP authors

package repl

import (
	"sort"
	"strings"

	"github.com/slip-lang/slip/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating symbols
// bound on the environment chain.
type symbolCompleter struct {
	env *lisp.LEnv
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace or
	// open paren).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\n' || ch == '\'' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		suffix := sym[len(prefix):]
		result = append(result, []rune(suffix))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	for env := c.env; env != nil; env = env.Parent {
		for name := range env.Scope {
			add(name)
		}
	}
	for _, name := range []string{
		lisp.TrueSymbol,
		lisp.QuoteSymbol,
		lisp.DefineSymbol,
		lisp.IfSymbol,
		lisp.LetSymbol,
		lisp.LambdaSymbol,
	} {
		add(name)
	}

	sort.Strings(result)
	return result
}
