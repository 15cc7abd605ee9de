package parsec

import "github.com/gocomb/parsec/pooled"

// Or is the heart of alternation. p and q run against private
// expectation buffers so that whichever side's expectations turn out
// not to matter can be discarded without touching the caller's buffer.
func Or[Tok comparable, T any](p, q Parser[Tok, T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		loc0 := st.Location()

		expP := st.NewExpectationList()
		defer expP.Dispose()
		v, ok := p.run(st, expP)
		if ok {
			expected.AddList(expP)
			return v, true
		}
		if st.Location() > loc0 {
			// p committed by consuming; its error and expectations win.
			expected.AddList(expP)
			return v, false
		}

		expQ := st.NewExpectationList()
		defer expQ.Dispose()
		v2, ok2 := q.run(st, expQ)
		if ok2 {
			expected.AddList(expP)
			expected.AddList(expQ)
			return v2, true
		}
		if st.Location() == loc0 {
			// neither side consumed: both contribute to "expected here".
			expected.AddList(expP)
			expected.AddList(expQ)
			return v2, false
		}
		// q committed by consuming: we're past the choice point, p's
		// expectations no longer apply.
		expected.AddList(expQ)
		return v2, false
	})
}

// OneOf generalizes Or across any number of alternatives with identical
// semantics, tried in declaration order.
func OneOf[Tok comparable, T any](ps ...Parser[Tok, T]) Parser[Tok, T] {
	if len(ps) == 0 {
		panic(&UsageError{Msg: "OneOf requires at least one alternative"})
	}
	acc := ps[0]
	for _, p := range ps[1:] {
		acc = Or(acc, p)
	}
	return acc
}

// Try turns a consumed-input failure into a zero-consumption failure by
// buffering: on failure it rewinds to where it started, so an enclosing
// Or will try its next alternative instead of committing.
func Try[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		st.PushBookmark()
		v, ok := p.run(st, expected)
		if ok {
			st.PopBookmark()
			return v, true
		}
		st.Rewind()
		return v, false
	})
}

// Lookahead rewinds on success (so matching never consumes) and leaves
// the cursor where p left it on failure.
func Lookahead[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		st.PushBookmark()
		v, ok := p.run(st, expected)
		if ok {
			st.Rewind()
			return v, true
		}
		st.PopBookmark()
		return v, false
	})
}

// Not succeeds, consuming nothing of its own, iff p fails; it discards
// p's expectations entirely and does not rewind the cursor itself (p may
// have consumed before failing). On Not's own failure (p succeeded) it
// reports the token that was current when Not started as unexpected.
// Wrap with Try to get a non-consuming negative lookahead.
func Not[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, struct{}] {
	return newParser(func(st *ParseState[Tok], _ *pooled.List[Expectation[Tok]]) (struct{}, bool) {
		hasOrig := st.HasCurrent()
		var orig Tok
		if hasOrig {
			orig = st.Current()
		}
		// Captured before p runs, while loc0 is still the current location
		// and its delta is trivially available: PopBookmark below trims
		// the buffer to wherever p left the cursor, which can make loc0
		// unrecoverable by the time the error is built.
		delta0 := st.ComputeSourcePosDelta()

		st.PushBookmark()
		priv := st.NewExpectationList()
		_, ok := p.run(st, priv)
		priv.Dispose()
		st.PopBookmark()

		if !ok {
			return struct{}{}, true
		}
		if hasOrig {
			st.SetErrorAtDelta(orig, true, false, delta0, "", false)
		} else {
			st.SetErrorAtDelta(zeroTok[Tok](), false, true, delta0, "", false)
		}
		return struct{}{}, false
	})
}
