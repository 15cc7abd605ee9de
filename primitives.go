package parsec

import (
	"golang.org/x/text/cases"

	"github.com/gocomb/parsec/pooled"
)

// Return succeeds with v, consumes nothing, and appends no expectations.
func Return[Tok comparable, T any](v T) Parser[Tok, T] {
	return newParser(func(*ParseState[Tok], *pooled.List[Expectation[Tok]]) (T, bool) {
		return v, true
	})
}

// Fail always fails with msg, consuming nothing, and reports an empty
// token-sequence expectation.
func Fail[Tok comparable, T any](msg string) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		var zero T
		st.SetError(zeroTok[Tok](), false, false, st.Location(), msg, true)
		expected.Add(ExpectTokens[Tok](nil))
		return zero, false
	})
}

func zeroTok[Tok comparable]() Tok {
	var z Tok
	return z
}

// Any succeeds with the current token and advances by one; it fails
// with atEof at end of input.
func Any[Tok comparable]() Parser[Tok, Tok] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (Tok, bool) {
		if !st.HasCurrent() {
			st.SetError(zeroTok[Tok](), false, true, st.Location(), "", false)
			return zeroTok[Tok](), false
		}
		tok := st.Current()
		st.Advance(1)
		return tok, true
	})
}

// Satisfy succeeds with the current token if pred holds for it,
// advancing by one; on a mismatch it consumes nothing and reports the
// token (or EOF) as unexpected.
func Satisfy[Tok comparable](pred func(Tok) bool) Parser[Tok, Tok] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (Tok, bool) {
		if !st.HasCurrent() {
			st.SetError(zeroTok[Tok](), false, true, st.Location(), "", false)
			expected.Add(ExpectEOF[Tok]())
			return zeroTok[Tok](), false
		}
		tok := st.Current()
		if !pred(tok) {
			st.SetError(tok, true, false, st.Location(), "", false)
			return zeroTok[Tok](), false
		}
		st.Advance(1)
		return tok, true
	})
}

// Token succeeds iff the current token equals t, advancing by one.
func Token[Tok comparable](t Tok) Parser[Tok, Tok] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (Tok, bool) {
		if !st.HasCurrent() {
			st.SetError(zeroTok[Tok](), false, true, st.Location(), "", false)
			expected.Add(ExpectTokens[Tok]([]Tok{t}))
			return zeroTok[Tok](), false
		}
		tok := st.Current()
		if tok != t {
			st.SetError(tok, true, false, st.Location(), "", false)
			expected.Add(ExpectTokens[Tok]([]Tok{t}))
			return zeroTok[Tok](), false
		}
		st.Advance(1)
		return tok, true
	})
}

// Sequence matches a literal token sequence. On a mismatch at index i it
// advances past the matched prefix (i tokens) before failing, which Or
// observes as consumption when deciding whether to try its other branch.
func Sequence[Tok comparable](seq []Tok) Parser[Tok, []Tok] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]Tok, bool) {
		for _, want := range seq {
			if !st.HasCurrent() {
				st.SetError(zeroTok[Tok](), false, true, st.Location(), "", false)
				expected.Add(ExpectTokens(seq))
				return nil, false
			}
			got := st.Current()
			if got != want {
				st.SetError(got, true, false, st.Location(), "", false)
				expected.Add(ExpectTokens(seq))
				return nil, false
			}
			st.Advance(1)
		}
		out := make([]Tok, len(seq))
		copy(out, seq)
		return out, true
	})
}

// End succeeds with struct{}{} iff there is no current token; otherwise
// it fails with the current token unexpected and EOF expected.
func End[Tok comparable]() Parser[Tok, struct{}] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (struct{}, bool) {
		if st.HasCurrent() {
			st.SetError(st.Current(), true, false, st.Location(), "", false)
			expected.Add(ExpectEOF[Tok]())
			return struct{}{}, false
		}
		return struct{}{}, true
	})
}

// CurrentOffset succeeds with the cursor's current location, with no
// side effects.
func CurrentOffset[Tok comparable]() Parser[Tok, int] {
	return newParser(func(st *ParseState[Tok], _ *pooled.List[Expectation[Tok]]) (int, bool) {
		return st.Location(), true
	})
}

// CurrentPos succeeds with the Position corresponding to the cursor's
// current location (the position delta from input start, plus
// StartPosition).
func CurrentPos[Tok comparable]() Parser[Tok, Position] {
	return newParser(func(st *ParseState[Tok], _ *pooled.List[Expectation[Tok]]) (Position, bool) {
		return StartPosition.Add(st.ComputeSourcePosDelta()), true
	})
}

// String matches a literal rune sequence, the char specialization of
// Sequence.
func String(s string) Parser[rune, string] {
	runes := []rune(s)
	return Map1(Sequence(runes), func([]rune) string { return s })
}

// CIString matches s case-insensitively, using golang.org/x/text/cases
// for Unicode-aware folding rather than ASCII-only EqualFold.
func CIString(s string) Parser[rune, string] {
	folder := cases.Fold()
	runes := []rune(s)
	folded := make([]string, len(runes))
	for i, r := range runes {
		folded[i] = folder.String(string(r))
	}
	n := len(runes)
	return newParser(func(st *ParseState[rune], expected *pooled.List[Expectation[rune]]) (string, bool) {
		for i := 0; i < n; i++ {
			if !st.HasCurrent() {
				st.SetError(0, false, true, st.Location(), "", false)
				expected.Add(ExpectTokens(runes))
				return "", false
			}
			got := st.Current()
			if folder.String(string(got)) != folded[i] {
				st.SetError(got, true, false, st.Location(), "", false)
				expected.Add(ExpectTokens(runes))
				return "", false
			}
			st.Advance(1)
		}
		return string(runes), true
	})
}
