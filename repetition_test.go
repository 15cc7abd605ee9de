package parsec_test

import (
	"testing"

	"github.com/gocomb/parsec"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func TestManyCollectsZeroOrMore(t *testing.T) {
	p := parsec.Before(parsec.Many(parsec.Satisfy(isDigit)), parsec.End[rune]())
	got, err := parsec.Parse[rune, []rune](p, newRuneSource("123"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "123" {
		t.Errorf("got %q", string(got))
	}

	got, err = parsec.Parse[rune, []rune](p, newRuneSource(""), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %q, err %v", string(got), err)
	}
}

func TestAtLeastOnceRequiresOneMatch(t *testing.T) {
	p := parsec.AtLeastOnce(parsec.Satisfy(isDigit))
	_, err := parsec.Parse[rune, []rune](p, newRuneSource(""), nil)
	if err == nil {
		t.Fatal("expected failure on empty input")
	}
}

func TestManyFailsOnCommittedChildFailure(t *testing.T) {
	// Each element is "ab"; a dangling "a" with no following "b" has
	// committed by consuming before failing, so Many must propagate
	// failure rather than stop cleanly.
	elem := parsec.Sequence([]rune("ab"))
	p := parsec.Many(elem)
	_, err := parsec.Parse[rune, [][]rune](p, newRuneSource("ababa"), nil)
	if err == nil {
		t.Fatal("expected failure: trailing 'a' commits without a matching 'b'")
	}
}

func TestRepeatExactCount(t *testing.T) {
	p := parsec.Repeat(parsec.Any[rune](), 3)
	got, err := parsec.Parse[rune, []rune](p, newRuneSource("abcd"), nil)
	if err != nil || string(got) != "abc" {
		t.Fatalf("got %q, err %v", string(got), err)
	}
}

func TestRepeatStringPacksIntoString(t *testing.T) {
	got, err := parsec.Parse[rune, string](parsec.RepeatString(parsec.Any[rune](), 3), newRuneSource("abcd"), nil)
	if err != nil || got != "abc" {
		t.Fatalf("got %q, err %v", got, err)
	}
}

func TestUntilStopsOnTerminator(t *testing.T) {
	p := parsec.Until(parsec.Any[rune](), parsec.Token(';'))
	got, err := parsec.Parse[rune, []rune](p, newRuneSource("abc;"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("got %q", string(got))
	}
}

func TestSepByVariants(t *testing.T) {
	digit := parsec.Satisfy(isDigit)
	comma := parsec.Token(',')

	got, err := parsec.Parse[rune, []rune](parsec.SepBy1(digit, comma), newRuneSource("1,2,3"), nil)
	if err != nil || string(got) != "123" {
		t.Fatalf("SepBy1: got %q, err %v", string(got), err)
	}

	got, err = parsec.Parse[rune, []rune](parsec.SepBy(digit, comma), newRuneSource(""), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("SepBy on empty: got %q, err %v", string(got), err)
	}

	p := parsec.Before(parsec.SepEndBy1(digit, comma), parsec.End[rune]())
	got, err = parsec.Parse[rune, []rune](p, newRuneSource("1,2,"), nil)
	if err != nil || string(got) != "12" {
		t.Fatalf("SepEndBy1 with trailing sep: got %q, err %v", string(got), err)
	}
}

func TestChainLeftFoldsLeft(t *testing.T) {
	concat := parsec.Map1(parsec.Token('.'), func(rune) func(string, string) string {
		return func(a, b string) string { return "(" + a + "." + b + ")" }
	})
	letterStr := parsec.Map1(parsec.Satisfy(func(r rune) bool { return r >= 'a' && r <= 'z' }),
		func(r rune) string { return string(r) })

	p := parsec.ChainLeft(letterStr, concat)
	got, err := parsec.Parse[rune, string](p, newRuneSource("a.b.c"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "((a.b).c)" {
		t.Errorf("got %q, want left-folded", got)
	}
}

func TestChainRightFoldsRight(t *testing.T) {
	concat := parsec.Map1(parsec.Token('.'), func(rune) func(string, string) string {
		return func(a, b string) string { return "(" + a + "." + b + ")" }
	})
	letterStr := parsec.Map1(parsec.Satisfy(func(r rune) bool { return r >= 'a' && r <= 'z' }),
		func(r rune) string { return string(r) })

	p := parsec.ChainRight(letterStr, concat)
	got, err := parsec.Parse[rune, string](p, newRuneSource("a.b.c"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(a.(b.c))" {
		t.Errorf("got %q, want right-folded", got)
	}
}

func TestRepetitionUsageErrorOnZeroConsumption(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic: parser succeeds without consuming input inside Many")
		} else if _, ok := r.(*parsec.UsageError); !ok {
			t.Fatalf("expected *parsec.UsageError, got %T", r)
		}
	}()
	zeroWidth := parsec.Return[rune, rune]('x')
	_, _ = parsec.Parse[rune, []rune](parsec.Many(zeroWidth), newRuneSource("abc"), nil)
}
