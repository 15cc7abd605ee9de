package parsec

import "github.com/gocomb/parsec/pooled"

// Assert runs p; if pred holds for its value, Assert succeeds with that
// value unchanged. Otherwise it sets the error at the current location
// (not p's) with msg(v) and a synthetic "result satisfying assertion"
// expectation, and fails. Where is a synonym.
func Assert[Tok comparable, T any](p Parser[Tok, T], pred func(T) bool, msg func(T) string) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		v, ok := p.run(st, expected)
		if !ok {
			return v, false
		}
		if pred(v) {
			return v, true
		}
		var zero T
		st.SetError(zeroTok[Tok](), false, false, st.Location(), msg(v), true)
		expected.Add(ExpectLabel[Tok]("result satisfying assertion"))
		return zero, false
	})
}

// Where is a synonym of Assert.
func Where[Tok comparable, T any](p Parser[Tok, T], pred func(T) bool, msg func(T) string) Parser[Tok, T] {
	return Assert(p, pred, msg)
}

// RecoverWith runs p in a private expectation buffer. On failure it
// builds a ParseError from that buffer, invokes handler to obtain a
// recovery parser, and runs the recovery parser against the current
// state with no rewind; the recovery parser's own failure propagates
// as-is.
func RecoverWith[Tok comparable, T any](p Parser[Tok, T], handler func(ParseError[Tok]) Parser[Tok, T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		priv := st.NewExpectationList()
		v, ok := p.run(st, priv)
		if ok {
			expected.AddList(priv)
			priv.Dispose()
			return v, true
		}
		perr := st.BuildError(priv.AsSlice())
		priv.Dispose()
		recovery := handler(perr)
		return recovery.run(st, expected)
	})
}
