package parsec

import (
	"fmt"
	"sort"
	"strings"
)

// expectKind tags the three variants an Expectation can take.
type expectKind int

const (
	expectLabel expectKind = iota
	expectTokens
	expectEOF
)

// Expectation describes something a parser wanted at its point of
// failure: a human label attached via Labelled, a literal token
// sequence, or end-of-input. The zero value is not a valid Expectation;
// construct one with ExpectLabel, ExpectTokens, or ExpectEOF.
type Expectation[Tok comparable] struct {
	kind   expectKind
	label  string
	tokens []Tok
}

// ExpectLabel builds a Label expectation.
func ExpectLabel[Tok comparable](name string) Expectation[Tok] {
	return Expectation[Tok]{kind: expectLabel, label: name}
}

// ExpectTokens builds a Tokens expectation over a literal sequence.
func ExpectTokens[Tok comparable](seq []Tok) Expectation[Tok] {
	cp := make([]Tok, len(seq))
	copy(cp, seq)
	return Expectation[Tok]{kind: expectTokens, tokens: cp}
}

// ExpectEOF builds the EOF expectation.
func ExpectEOF[Tok comparable]() Expectation[Tok] {
	return Expectation[Tok]{kind: expectEOF}
}

// IsLabel, IsTokens and IsEOF report the Expectation's variant.
func (e Expectation[Tok]) IsLabel() bool  { return e.kind == expectLabel }
func (e Expectation[Tok]) IsTokens() bool { return e.kind == expectTokens }
func (e Expectation[Tok]) IsEOF() bool    { return e.kind == expectEOF }

// Label returns the label text; only meaningful when IsLabel is true.
func (e Expectation[Tok]) Label() string { return e.label }

// Tokens returns the literal token sequence; only meaningful when
// IsTokens is true.
func (e Expectation[Tok]) Tokens() []Tok { return e.tokens }

// order ranks the three variants for the total order Label < Tokens < EOF.
func (e Expectation[Tok]) order() int {
	switch e.kind {
	case expectLabel:
		return 0
	case expectTokens:
		return 1
	default:
		return 2
	}
}

// Less implements the total order used to sort an expectation set before
// rendering or deduplication: Label < Tokens < EOF; within Label,
// lexically by name; within Tokens, element-wise using fmt formatting
// (Tok need not be Ordered, only comparable, so we fall back to string
// comparison of each token's default representation).
func (e Expectation[Tok]) Less(other Expectation[Tok]) bool {
	if e.order() != other.order() {
		return e.order() < other.order()
	}
	switch e.kind {
	case expectLabel:
		return e.label < other.label
	case expectTokens:
		return tokensLess(e.tokens, other.tokens)
	default:
		return false
	}
}

func tokensLess[Tok comparable](a, b []Tok) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		as, bs := fmt.Sprint(a[i]), fmt.Sprint(b[i])
		if as != bs {
			return as < bs
		}
	}
	return len(a) < len(b)
}

// Equal compares two expectations by value.
func (e Expectation[Tok]) Equal(other Expectation[Tok]) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case expectLabel:
		return e.label == other.label
	case expectTokens:
		if len(e.tokens) != len(other.tokens) {
			return false
		}
		for i := range e.tokens {
			if e.tokens[i] != other.tokens[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders an Expectation the way ParseError's message does: a
// quoted literal for Tokens (rune tokens as the characters themselves,
// other token types in their default fmt form), the bare label for
// Label, and "end of input" for EOF.
func (e Expectation[Tok]) String() string {
	switch e.kind {
	case expectLabel:
		return e.label
	case expectTokens:
		parts := make([]string, len(e.tokens))
		for i, t := range e.tokens {
			if r, ok := any(t).(rune); ok {
				parts[i] = string(r)
			} else {
				parts[i] = fmt.Sprint(t)
			}
		}
		return fmt.Sprintf("%q", strings.Join(parts, ""))
	default:
		return "end of input"
	}
}

// DedupExpectations sorts and removes duplicate expectations, so two
// expectation lists holding the same expectations in a different order,
// or with repeats, come out identical. ParseError.Error renders its
// Expected list through it.
func DedupExpectations[Tok comparable](exp []Expectation[Tok]) []Expectation[Tok] {
	if len(exp) < 2 {
		return exp
	}
	cp := make([]Expectation[Tok], len(exp))
	copy(cp, exp)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })
	out := cp[:1]
	for _, e := range cp[1:] {
		if !out[len(out)-1].Equal(e) {
			out = append(out, e)
		}
	}
	return out
}
