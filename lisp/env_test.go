// Copyright © 2024 The SLIP authors

package lisp_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadTestEnv(t *testing.T, config ...lisp.Config) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(io.Discard),
		lisp.WithStderr(io.Discard),
	}, config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	require.NoError(t, lisp.GoError(lerr))
	return env
}

func TestLoadString(t *testing.T) {
	env := newLoadTestEnv(t)

	result := env.LoadString("test", "(define x 2) (+ x x)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "4", result.String())

	result = env.LoadString("test", "")
	assert.Equal(t, "()", result.String())

	result = env.LoadString("test", "(define y")
	require.Error(t, lisp.GoError(result))
	assert.Equal(t, "syntax-error", (*lisp.ErrorVal)(result).Condition())

	// A runtime error stops evaluation of the remaining expressions.
	result = env.LoadString("test", "(define z (+ 1 'a)) (define w 1)")
	require.Error(t, lisp.GoError(result))
	assert.Equal(t, "()", env.LoadString("test", "w").String())
}

func TestLoadBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "prelude", "(define greeting 'hello) greeting")

	env := newLoadTestEnv(t, lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{RootDir: dir}))

	result := env.LoadString("test", "(load 'prelude)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "hello", result.String())

	// Loaded definitions do not leak into the calling scope.
	assert.Equal(t, "()", env.LoadString("test", "greeting").String())

	result = env.LoadString("test", "(load 'no-such-source)")
	require.Error(t, lisp.GoError(result))

	result = env.LoadString("test", "(load)")
	require.Error(t, lisp.GoError(result))

	result = env.LoadString("test", "(load 5)")
	require.Error(t, lisp.GoError(result))
}

func TestLoadBuiltinRelative(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeSource(t, sub, "main", "(load 'helper)")
	writeSource(t, sub, "helper", "'from-helper")

	// The nested load resolves against the directory containing main, not
	// against the library root.
	env := newLoadTestEnv(t, lisp.WithLibrary(&lisp.RelativeFileSystemLibrary{RootDir: dir}))
	result := env.LoadString("test", "(load 'sub/main)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "from-helper", result.String())
}

func TestLoadBuiltinNoLibrary(t *testing.T) {
	env := newLoadTestEnv(t)
	result := env.LoadString("test", "(load 'prelude)")
	require.Error(t, lisp.GoError(result))
}

func TestReadBuiltin(t *testing.T) {
	input := "(+ 1 2)\nfoo\n"
	env := newLoadTestEnv(t, lisp.WithStdin(strings.NewReader(input)))

	// The expression read is returned unevaluated.
	result := env.LoadString("test", "(read)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "(+ 1 2)", result.String())

	result = env.LoadString("test", "(read)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "foo", result.String())

	// End of input produces the empty value.
	result = env.LoadString("test", "(read)")
	require.NoError(t, lisp.GoError(result))
	assert.Equal(t, "()", result.String())
}

func TestEnvGetPut(t *testing.T) {
	env := newLoadTestEnv(t)
	child := lisp.NewEnv(env)

	require.NoError(t, lisp.GoError(env.Put(lisp.Symbol("x"), lisp.Int(1))))
	assert.Equal(t, "1", child.Get(lisp.Symbol("x")).String())

	// A child binding shadows the parent without modifying it.
	require.NoError(t, lisp.GoError(child.Put(lisp.Symbol("x"), lisp.Int(2))))
	assert.Equal(t, "2", child.Get(lisp.Symbol("x")).String())
	assert.Equal(t, "1", env.Get(lisp.Symbol("x")).String())

	assert.Equal(t, "()", env.Get(lisp.Symbol("unbound")).String())
	assert.Equal(t, "t", env.Get(lisp.Symbol("t")).String())
	assert.Equal(t, "()", env.Get(lisp.Int(1)).String())

	require.Error(t, lisp.GoError(env.Put(lisp.Symbol("t"), lisp.Int(1))))
	require.Error(t, lisp.GoError(env.Put(lisp.Int(1), lisp.Int(1))))
}

func writeSource(t *testing.T, dir, name, source string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(source), 0644)
	require.NoError(t, err)
}
