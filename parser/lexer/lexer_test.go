// Copyright © 2024 The SLIP authors

package lexer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/slip-lang/slip/parser/token"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, []*token.Token{
			testToken(token.EOF, ""),
		}},
		{`abc`, []*token.Token{
			testToken(token.SYMBOL, "abc"),
			testToken(token.EOF, ""),
		}},
		{`()`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`(car '(a . b))`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "car"),
			testToken(token.QUOTE, "'"),
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "a"),
			testToken(token.DOT, "."),
			testToken(token.SYMBOL, "b"),
			testToken(token.PAREN_R, ")"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`10 0 007`, []*token.Token{
			testToken(token.INT, "10"),
			testToken(token.INT, "0"),
			testToken(token.INT, "007"),
			testToken(token.EOF, ""),
		}},
		// Atoms mixing digits and other characters are symbols.  Only atoms
		// made entirely of digits scan as integers.
		{`1x x1 12.5 -5 +`, []*token.Token{
			testToken(token.SYMBOL, "1x"),
			testToken(token.SYMBOL, "x1"),
			testToken(token.INT, "12"),
			testToken(token.DOT, "."),
			testToken(token.INT, "5"),
			testToken(token.SYMBOL, "-5"),
			testToken(token.SYMBOL, "+"),
			testToken(token.EOF, ""),
		}},
		{"(a\n\tb)", []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "a"),
			testToken(token.SYMBOL, "b"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`''x`, []*token.Token{
			testToken(token.QUOTE, "'"),
			testToken(token.QUOTE, "'"),
			testToken(token.SYMBOL, "x"),
			testToken(token.EOF, ""),
		}},
	}
testloop:
	for i, test := range tests {
		lex := New(token.NewScanner("", strings.NewReader(test.input)))
		var tokens []*token.Token
		numToken := 0
		for {
			toks := lex.ReadToken()
			if len(toks) != 1 {
				t.Fatalf("test %d: lexer returned %d tokens", i, len(toks))
			}
			tok := toks[0]
			tok.Source = nil
			tokens = append(tokens, tok)
			if tok.Type == token.EOF || tok.Type == token.ERROR {
				break
			}
			numToken++
			if numToken > 100000 {
				t.Errorf("test %d: apparent infinite scanning loop", i)
				for _, tok := range tokens[len(tokens)-10:] {
					t.Log(tok)
				}
				continue testloop
			}
		}
		if !reflect.DeepEqual(tokens, test.tokens) {
			t.Errorf("test %d: unexpected tokens for input", i)
			t.Logf("source:\n\t%s", test.input)
			t.Logf("tokens:")
			for _, tok := range tokens {
				t.Logf("\t%v", tok)
			}
		}
	}
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
