// Copyright © 2024 The SLIP authors

package lisp

// Symbols with predefined meaning in the language.
const (
	// TrueSymbol is the canonical truthy value.  It evaluates to itself in
	// every environment.
	TrueSymbol = "t"

	// Special form head symbols.  A list whose first element is one of these
	// symbols is dispatched to the corresponding form handler instead of
	// being evaluated as a procedure application.
	QuoteSymbol  = "quote"
	DefineSymbol = "define"
	IfSymbol     = "if"
	LetSymbol    = "let"
	LambdaSymbol = "lambda"
)
