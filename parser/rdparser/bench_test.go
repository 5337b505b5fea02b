// Copyright © 2024 The SLIP authors

package rdparser_test

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/slip-lang/slip/parser/rdparser"
	"github.com/slip-lang/slip/sliptest"
)

const fixtureDir = "../../examples"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.slip"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		b.Run(filepath.Base(path), sliptest.BenchmarkParse(path, rdparser.NewReader))
	}
}
