// Copyright © 2024 The SLIP authors

package rdparser

import (
	"io"
	"strconv"

	"github.com/slip-lang/slip/lisp"
	"github.com/slip-lang/slip/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// ReadLocation implements lisp.LocationReader.
func (*reader) ReadLocation(name string, loc string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	s.SetPath(loc)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	parsing bool
	src     *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.
func (p *Parser) Parse() (*lisp.LVal, error) {
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return nil, lisp.GoError(expr)
	}
	return expr, nil
}

// ParseProgram parses a series of expressions terminated by EOF.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() *lisp.LVal {
	fn := p.parseExpression()

	// We have a token marking the beginning of an expression.  Flag that we
	// are currently in the middle of an expression while we finish parsing
	// the expression so that an Interactive parser can determine what state
	// we are in (and thus imply what the REPL prompt should be).
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	return fn(p)
}

func (p *Parser) parseExpression() func(p *Parser) *lisp.LVal {
	switch p.PeekType() {
	case token.INT:
		return (*Parser).ParseLiteralInt
	case token.SYMBOL:
		return (*Parser).ParseSymbol
	case token.QUOTE:
		return (*Parser).ParseQuote
	case token.PAREN_L:
		return (*Parser).ParseConsExpression
	case token.ERROR, token.INVALID:
		return func(p *Parser) *lisp.LVal {
			p.ReadToken()
			return p.errorf("%s", p.TokenText())
		}
	default:
		return func(p *Parser) *lisp.LVal {
			p.ReadToken()
			return p.errorf("unexpected token: %v", p.TokenType())
		}
	}
}

func (p *Parser) ParseLiteralInt() *lisp.LVal {
	if !p.Accept(token.INT) {
		return p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.TokenText()
	x, err := strconv.Atoi(text)
	if err != nil {
		return p.errorf("integer literal overflows int: %v", text)
	}
	return p.Int(x)
}

func (p *Parser) ParseSymbol() *lisp.LVal {
	if !p.Accept(token.SYMBOL) {
		return p.errorf("invalid symbol: %v", p.PeekType())
	}
	return p.Symbol(p.TokenText())
}

// ParseQuote parses the quote shorthand 'expr, which reads as the two element
// list (quote expr).
func (p *Parser) ParseQuote() *lisp.LVal {
	if !p.Accept(token.QUOTE) {
		return p.errorf("invalid quote: %v", p.PeekType())
	}
	loc := p.Location()
	expr := p.ParseExpression()
	if expr.Type == lisp.LError {
		return expr
	}
	sym := lisp.Symbol(lisp.QuoteSymbol)
	sym.Source = loc
	q := lisp.List(sym, expr)
	q.Source = loc
	return q
}

// ParseConsExpression parses a parenthesized list.  Elements are consed onto
// the front of an accumulator chain, which reverses them, and the chain is
// reversed again in one pass when the closing paren is found.  A dot before
// the final element makes that element the terminal value of the chain
// instead of the empty value.
func (p *Parser) ParseConsExpression() *lisp.LVal {
	if !p.Accept(token.PAREN_L) {
		return p.errorf("invalid expression: %v", p.PeekType())
	}
	open := p.src.Token
	loc := p.Location()
	acc := lisp.Nil()
	for {
		if p.src.IsEOF() {
			return p.errorf("unmatched %s", open.Text)
		}
		if p.Accept(token.PAREN_R) {
			lis := lisp.Reverse(acc)
			if lis.Type == lisp.LPair {
				lis.Source = loc
			}
			return lis
		}
		if p.Accept(token.DOT) {
			return p.parseConsTail(open, loc, acc)
		}
		x := p.ParseExpression()
		if x.Type == lisp.LError {
			return x
		}
		acc = lisp.Cons(x, acc)
	}
}

// parseConsTail parses the terminal value of a dotted list along with the
// closing paren.  The already reversed prefix chain is prepended onto the
// terminal value to restore source order.  An empty prefix is allowed, so
// (. x) reads as x itself.
func (p *Parser) parseConsTail(open *token.Token, loc *token.Location, acc *lisp.LVal) *lisp.LVal {
	if p.src.IsEOF() {
		return p.errorf("unmatched %s", open.Text)
	}
	tail := p.ParseExpression()
	if tail.Type == lisp.LError {
		return tail
	}
	if p.src.IsEOF() {
		return p.errorf("unmatched %s", open.Text)
	}
	if !p.Accept(token.PAREN_R) {
		p.ReadToken()
		return p.errorf("unexpected token: %v", p.TokenType())
	}
	lis := tail
	for acc.Type == lisp.LPair {
		lis = lisp.Cons(acc.Car(), lis)
		acc = acc.Cdr()
	}
	if lis.Type == lisp.LPair {
		lis.Source = loc
	}
	return lis
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) Symbol(sym string) *lisp.LVal {
	return p.tokenLVal(lisp.Symbol(sym))
}

func (p *Parser) Int(x int) *lisp.LVal {
	return p.tokenLVal(lisp.Int(x))
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Location()
	return v
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(format string, v ...interface{}) *lisp.LVal {
	err := lisp.ErrorConditionf("syntax-error", format, v...)
	err.Source = p.Location()
	return err
}
