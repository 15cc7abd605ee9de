package parsec_test

import (
	"testing"

	"github.com/gocomb/parsec"
)

func nestedParens() parsec.Parser[rune, rune] {
	var p parsec.Parser[rune, rune]
	p = parsec.Or(
		parsec.Satisfy(isDigit),
		parsec.Before(parsec.Then(parsec.Token('('), parsec.Rec(func() parsec.Parser[rune, rune] { return p })), parsec.Token(')')),
	)
	return p
}

func TestEndToEndNestedParens(t *testing.T) {
	p := nestedParens()
	for _, in := range []string{"1", "(1)", "(((1)))"} {
		got, err := parsec.Parse[rune, rune](p, newRuneSource(in), nil)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", in, err)
		}
		if got != '1' {
			t.Errorf("input %q: got %q, want '1'", in, got)
		}
	}

	_, err := parsec.Parse[rune, rune](p, newRuneSource("(1"), nil)
	if err == nil {
		t.Fatal("expected failure on unterminated parens")
	}
	pe := err.(parsec.ParseError[rune])
	if !pe.AtEOF {
		t.Errorf("expected AtEOF, got %+v", pe)
	}
	if pe.Position() != (parsec.Position{Line: 1, Col: 3}) {
		t.Errorf("got position %+v, want col 3", pe.Position())
	}
}

func TestLabelledReplacesNonLabelExpectations(t *testing.T) {
	p := parsec.Labelled(parsec.Satisfy(isDigit), "digit")
	_, err := parsec.Parse[rune, rune](p, newRuneSource("x"), nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	pe := err.(parsec.ParseError[rune])
	if len(pe.Expected) != 1 || !pe.Expected[0].IsLabel() || pe.Expected[0].Label() != "digit" {
		t.Errorf("got %+v", pe.Expected)
	}
}

func TestLabelledPassesThroughExistingLabels(t *testing.T) {
	inner := parsec.Labelled(parsec.Satisfy(isDigit), "digit")
	outer := parsec.Labelled(inner, "number")
	_, err := parsec.Parse[rune, rune](outer, newRuneSource("x"), nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	pe := err.(parsec.ParseError[rune])
	if len(pe.Expected) != 1 || pe.Expected[0].Label() != "digit" {
		t.Errorf("nested Labelled should keep the inner label unchanged, got %+v", pe.Expected)
	}
}
