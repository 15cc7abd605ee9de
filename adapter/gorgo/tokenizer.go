// Package gorgo adapts github.com/npillmayer/gorgo/lr/scanner.Tokenizer —
// a pull-based, int-keyed lexer interface — into a parsec.TokenSource, so
// a gorgo-compatible lexer can drive a parsec grammar directly instead of
// gorgo's own LR tables.
package gorgo

import (
	"github.com/npillmayer/gorgo/lr/scanner"

	"github.com/gocomb/parsec"
)

// Token is what Source yields for each lexeme pulled from a
// scanner.Tokenizer: the grammar's integer token type, the scanned
// value, and the lexeme's position and length in the original input.
type Token struct {
	Type  int
	Value interface{}
	Pos   uint64
	Len   uint64
}

// Source adapts a scanner.Tokenizer into a parsec.TokenSource, pulling
// one token at a time the same way gorgo's own LR driver pulls from
// bidi/parser.Scanner.
type Source struct {
	tok      scanner.Tokenizer
	expected []int
	done     bool
}

// NewSource wraps tok. expected is forwarded verbatim to every
// NextToken call; it is gorgo's optional lexer hint and nil is
// accepted.
func NewSource(tok scanner.Tokenizer, expected []int) *Source {
	return &Source{tok: tok, expected: expected}
}

// Next implements parsec.TokenSource.
func (s *Source) Next() (Token, bool) {
	if s.done {
		return Token{}, false
	}
	typ, val, pos, length := s.tok.NextToken(s.expected)
	if typ == scanner.EOF {
		s.done = true
		return Token{}, false
	}
	return Token{Type: typ, Value: val, Pos: pos, Len: length}, true
}

// PositionCalculator treats each pulled token as advancing one column
// per rune of its lexeme. It is the natural override for a Source,
// whose tokens are lexeme runs rather than individual characters, unlike
// the library default which assumes one token advances one column.
func PositionCalculator(tok Token) parsec.PositionDelta {
	if tok.Len == 0 {
		return parsec.Zero
	}
	return parsec.PositionDelta{Cols: int(tok.Len)}
}

var _ parsec.TokenSource[Token] = (*Source)(nil)
