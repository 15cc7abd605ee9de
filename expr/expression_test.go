package expr_test

import (
	"testing"

	"github.com/gocomb/parsec"
	"github.com/gocomb/parsec/expr"
)

type runeSource struct {
	runes []rune
}

func (s *runeSource) Next() (rune, bool) {
	if len(s.runes) == 0 {
		return 0, false
	}
	r := s.runes[0]
	s.runes = s.runes[1:]
	return r, true
}

func (s *runeSource) At(i int) (rune, bool) {
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

func newRuneSource(s string) *runeSource {
	return &runeSource{runes: []rune(s)}
}

func digit() parsec.Parser[rune, int] {
	return parsec.Map1(parsec.Satisfy(func(r rune) bool { return r >= '0' && r <= '9' }),
		func(r rune) int { return int(r - '0') })
}

func opAdd() parsec.Parser[rune, func(int, int) int] {
	return parsec.Map1(parsec.Token('+'), func(rune) func(int, int) int {
		return func(a, b int) int { return a + b }
	})
}

func opMul() parsec.Parser[rune, func(int, int) int] {
	return parsec.Map1(parsec.Token('*'), func(rune) func(int, int) int {
		return func(a, b int) int { return a * b }
	})
}

func arithmetic() parsec.Parser[rune, int] {
	return expr.Build(digit(), []expr.Row[rune, int]{
		{InfixL: []parsec.Parser[rune, func(int, int) int]{opAdd()}},
		{InfixL: []parsec.Parser[rune, func(int, int) int]{opMul()}},
	})
}

func TestOperatorPrecedence(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2+3*4", 14},
		{"2*3+4", 10},
		{"1+2+3", 6},
	}
	p := arithmetic()
	for _, c := range cases {
		got, err := parsec.Parse[rune, int](p, newRuneSource(c.in), nil)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("input %q: got %d, want %d", c.in, got, c.want)
		}
	}
}

func concatOp() parsec.Parser[rune, func(string, string) string] {
	return parsec.Map1(parsec.Token(','), func(rune) func(string, string) string {
		return func(a, b string) string { return a + b }
	})
}

func letter() parsec.Parser[rune, string] {
	return parsec.Map1(parsec.Satisfy(func(r rune) bool { return r >= 'a' && r <= 'z' }),
		func(r rune) string { return string(r) })
}

func TestInfixLAndInfixRAgreeOnAssociativeConcat(t *testing.T) {
	left := expr.Build(letter(), []expr.Row[rune, string]{
		{InfixL: []parsec.Parser[rune, func(string, string) string]{concatOp()}},
	})
	right := expr.Build(letter(), []expr.Row[rune, string]{
		{InfixR: []parsec.Parser[rune, func(string, string) string]{concatOp()}},
	})

	gotLeft, err := parsec.Parse[rune, string](left, newRuneSource("a,b,c"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotRight, err := parsec.Parse[rune, string](right, newRuneSource("a,b,c"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLeft != "abc" || gotRight != "abc" {
		t.Fatalf("concatenation should agree on value regardless of associativity: left=%q right=%q", gotLeft, gotRight)
	}
}

func TestRowWithoutPostfixStillParsesPlainOperand(t *testing.T) {
	p := expr.Build(digit(), []expr.Row[rune, int]{
		{InfixL: []parsec.Parser[rune, func(int, int) int]{opAdd()}},
	})
	got, err := parsec.Parse[rune, int](p, newRuneSource("5"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func bang() parsec.Parser[rune, func(int) int] {
	return parsec.Map1(parsec.Token('!'), func(rune) func(int) int {
		return func(a int) int { return a * 2 }
	})
}

func TestPostfixAppliesWhenPresentAndIsOptionalWhenAbsent(t *testing.T) {
	p := expr.Build(digit(), []expr.Row[rune, int]{
		{Postfix: []parsec.Parser[rune, func(int) int]{bang()}},
	})
	got, err := parsec.Parse[rune, int](p, newRuneSource("3!"), nil)
	if err != nil {
		t.Fatalf("unexpected error with postfix present: %v", err)
	}
	if got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
	got, err = parsec.Parse[rune, int](p, newRuneSource("3"), nil)
	if err != nil {
		t.Fatalf("unexpected error with postfix absent: %v", err)
	}
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestNonAssociativeRejectsSecondOccurrence(t *testing.T) {
	cmp := parsec.Map1(parsec.Token('<'), func(rune) func(int, int) int {
		return func(a, b int) int {
			if a < b {
				return 1
			}
			return 0
		}
	})
	p := expr.Build(digit(), []expr.Row[rune, int]{
		{InfixN: []parsec.Parser[rune, func(int, int) int]{cmp}},
	})
	got, err := parsec.Parse[rune, int](p, newRuneSource("1<2"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %d, want 1", got)
	}

	// A second '<' at the same level is left unconsumed: Build only
	// produces a parser for one comparison per expression, so parsing
	// "1<2<3" in full must fail at End.
	full := parsec.Before(p, parsec.End[rune]())
	if _, err := parsec.Parse[rune, int](full, newRuneSource("1<2<3"), nil); err == nil {
		t.Fatalf("expected failure parsing chained non-associative operator to end of input")
	}
}
