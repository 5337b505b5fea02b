// Copyright © 2024 The SLIP authors

package parser

import (
	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser/rdparser"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}
