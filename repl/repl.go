// Copyright © 2024 The SLIP authors

package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser"
	"github.com/slip-lang/slip/parser/lexer"
	"github.com/slip-lang/slip/parser/rdparser"
	"github.com/slip-lang/slip/parser/token"
)

// Keywords which terminate an interactive session when entered on a line by
// themselves.
var exitKeywords = []string{"exit", "quit"}

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// RunRepl runs a simple repl in a vanilla environment.
func RunRepl(prompt string, opts ...Option) {
	env := lisp.NewEnv(nil)

	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{}),
	}

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}

	rc := lisp.InitializeUserEnv(env, envOpts...)
	if !rc.IsNil() {
		errlnf("Language initialization failure: %v", rc)
		os.Exit(1)
	}

	RunEnv(env, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEnv runs a simple repl with env as a root environment.
func RunEnv(env *lisp.LEnv, prompt, cont string, opts ...Option) {
	if env.Parent != nil {
		errlnf("REPL environment is not a root environment.")
		os.Exit(1)
	}

	p := rdparser.NewInteractive(nil)
	p.SetPrompts(prompt, cont)

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)

	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stderr,
		Stderr:            env.Runtime.Stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}

	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	p.Read = func() []*token.Token {
		rl.SetPrompt(p.Prompt())
		for {
			var line []byte
			line, err = rl.ReadSlice()
			if err != nil && err != readline.ErrInterrupt {
				return []*token.Token{{
					Type: token.EOF,
					Text: "",
				}}
			}
			if err == readline.ErrInterrupt {
				line = nil
				continue
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			if !p.IsParsing() && isExitKeyword(string(line)) {
				return []*token.Token{{
					Type: token.EOF,
					Text: "",
				}}
			}
			var tokens []*token.Token
			scanner := token.NewScanner("stdin", bytes.NewReader(line))
			lex := lexer.New(scanner)
			for {
				tok := lex.ReadToken()
				if len(tok) != 1 {
					panic("bad tokens")
				}
				if tok[0].Type == token.EOF {
					return tokens
				}
				tokens = append(tokens, tok...)
				if tok[0].Type == token.ERROR {
					// This will work itself out eventually...
					return tokens
				}
			}
		}
	}

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(env.Runtime.Stderr, err) //nolint:errcheck // best-effort error display
			continue
		}
		val := env.Eval(expr)
		fmt.Fprintln(env.Runtime.Stderr, val) //nolint:errcheck // best-effort REPL output
	}
}

func isExitKeyword(line string) bool {
	for _, kw := range exitKeywords {
		if line == kw {
			return true
		}
	}
	return false
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slip_history")
}

// ensureHistoryFilePermissions restricts the history file to the current user
// because entered expressions may contain sensitive data.  The file is created
// when it does not exist so that readline never creates it with a wider mode.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck // best-effort cleanup
	_ = os.Chmod(path, 0600)
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
