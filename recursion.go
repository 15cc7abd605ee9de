package parsec

import (
	"sync"

	"github.com/gocomb/parsec/pooled"
)

// Rec defers construction of a parser until its first use, enabling
// mutually recursive grammars without initialization-order hazards. It
// is modelled as a lazily-initialized cell: a thunk plus a once-cell —
// no ownership cycle, the cell owns the built parser and every caller
// holds only a value that defers to it.
func Rec[Tok comparable, T any](factory func() Parser[Tok, T]) Parser[Tok, T] {
	var once sync.Once
	var cached Parser[Tok, T]
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		once.Do(func() {
			cached = factory()
		})
		return cached.run(st, expected)
	})
}

// Labelled replaces any Tokens/EOF expectations p reports at this choice
// point with a single Label(name) expectation; any Label expectations p
// already carries (from a nested Labelled) pass through unchanged. If p
// fails without reporting any expectation at all, Label(name) is
// reported for it. p's value and consumption are unaffected.
func Labelled[Tok comparable, T any](p Parser[Tok, T], name string) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		priv := st.NewExpectationList()
		v, ok := p.run(st, priv)

		hasNonLabel := false
		for _, e := range priv.AsSlice() {
			if e.IsLabel() {
				expected.Add(e)
			} else {
				hasNonLabel = true
			}
		}
		if hasNonLabel || (!ok && priv.Len() == 0) {
			expected.Add(ExpectLabel[Tok](name))
		}
		priv.Dispose()
		return v, ok
	})
}
