// Copyright © 2024 The SLIP authors

package lexer

import (
	"io"
	"strings"

	"github.com/slip-lang/slip/parser/token"
)

const delimRunes = "()'."

// Lexer splits a source stream into slip tokens.  The token stream is lazy
// and cannot be restarted.  Whitespace delimits atoms and is never emitted.
type Lexer struct {
	scanner *token.Scanner
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

func (lex *Lexer) ReadToken() []*token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		err := lex.scanner.Err()
		if err != nil {
			return lex.emitError(err)
		}
		return lex.emit(token.ERROR, "unexpected scan failure")
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case '\'':
		return lex.emitText(token.QUOTE)
	case '.':
		return lex.emitText(token.DOT)
	default:
		return lex.readAtom()
	}
}

// readAtom scans a maximal run of atom runes.  An atom consisting entirely of
// decimal digits is an integer token and any other atom is a symbol.
func (lex *Lexer) readAtom() []*token.Token {
	lex.scanner.AcceptSeq(isAtomRune)
	if isDigits(lex.scanner.Text()) {
		return lex.emitText(token.INT)
	}
	return lex.emitText(token.SYMBOL)
}

func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	return []*token.Token{lex.scanner.EmitToken(typ)}
}

func (lex *Lexer) emitError(err error) []*token.Token {
	if err == io.EOF {
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) skipWhitespace() {
	if lex.scanner.AcceptSeqSpace() > 0 {
		lex.scanner.Ignore()
	}
}

func isAtomRune(c rune) bool {
	return !isSpace(c) && !strings.ContainsRune(delimRunes, c)
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
