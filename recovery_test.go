package parsec_test

import (
	"testing"

	"github.com/gocomb/parsec"
)

func TestAssertRejectsValuesFailingPredicate(t *testing.T) {
	p := parsec.Assert(parsec.Map1(parsec.Satisfy(isDigit), func(r rune) int { return int(r - '0') }),
		func(v int) bool { return v%2 == 0 },
		func(v int) string { return "odd digit" })

	got, err := parsec.Parse[rune, int](p, newRuneSource("4"), nil)
	if err != nil || got != 4 {
		t.Fatalf("got %d, err %v", got, err)
	}

	_, err = parsec.Parse[rune, int](p, newRuneSource("3"), nil)
	if err == nil {
		t.Fatal("expected failure for odd digit")
	}
	pe := err.(parsec.ParseError[rune])
	if !pe.HasMessage || pe.Message != "odd digit" {
		t.Errorf("got %+v", pe)
	}
}

func TestWhereIsSynonymOfAssert(t *testing.T) {
	pred := func(v int) bool { return v > 0 }
	msg := func(v int) string { return "must be positive" }
	digit := parsec.Map1(parsec.Satisfy(isDigit), func(r rune) int { return int(r - '0') })

	_, err1 := parsec.Parse[rune, int](parsec.Assert(digit, pred, msg), newRuneSource("0"), nil)
	_, err2 := parsec.Parse[rune, int](parsec.Where(digit, pred, msg), newRuneSource("0"), nil)
	if (err1 == nil) != (err2 == nil) {
		t.Errorf("Assert and Where disagreed: %v vs %v", err1, err2)
	}
}

func TestRecoverWithRunsHandlerOnFailure(t *testing.T) {
	digit := parsec.Satisfy(isDigit)
	p := parsec.RecoverWith(digit, func(parsec.ParseError[rune]) parsec.Parser[rune, rune] {
		return parsec.Return[rune, rune]('0')
	})
	got, err := parsec.Parse[rune, rune](p, newRuneSource("x"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != '0' {
		t.Errorf("got %q, want recovered '0'", got)
	}
}

func TestRecoverWithPropagatesRecoveryFailure(t *testing.T) {
	digit := parsec.Satisfy(isDigit)
	p := parsec.RecoverWith(digit, func(parsec.ParseError[rune]) parsec.Parser[rune, rune] {
		return parsec.Fail[rune, rune]("still broken")
	})
	_, err := parsec.Parse[rune, rune](p, newRuneSource("x"), nil)
	if err == nil {
		t.Fatal("expected recovery parser's own failure to propagate")
	}
}
