// Copyright © 2024 The SLIP authors

package lisp_test

import (
	"path/filepath"
	"testing"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/sliptest"
	"github.com/stretchr/testify/require"
)

// The example programs double as integration fixtures.  Each one must load
// without error.
func TestExamplePrograms(t *testing.T) {
	files, err := filepath.Glob("../examples/*.slip")
	require.NoError(t, err)
	require.NotEmpty(t, files, "no example programs found")
	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			env := sliptest.NewEnv(t)
			result := env.LoadFile(path)
			require.NoError(t, lisp.GoError(result))
		})
	}
}
