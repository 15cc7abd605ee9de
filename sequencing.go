package parsec

import "github.com/gocomb/parsec/pooled"

// Map1 through Map8 run their parsers in order against the caller's own
// expectation buffer (no suppression: a sequencing step never hides what
// a later step could also have matched here) and, on full success,
// apply f to the produced values. If any step fails the whole sequence
// fails with that step's consumption and error slot. Eight overloads
// avoid tuple allocation, expressed in Go as a small monomorphic family
// rather than variadic generics (unavailable) or reflection.

// Map1 is Map applied to a single parser; Map1(p, x => x) is the
// identity.
func Map1[Tok comparable, A, R any](pa Parser[Tok, A], f func(A) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a), true
	})
}

func Map2[Tok comparable, A, B, R any](pa Parser[Tok, A], pb Parser[Tok, B], f func(A, B) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b), true
	})
}

func Map3[Tok comparable, A, B, C, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], f func(A, B, C) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c), true
	})
}

func Map4[Tok comparable, A, B, C, D, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], pd Parser[Tok, D], f func(A, B, C, D) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		d, ok := pd.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c, d), true
	})
}

func Map5[Tok comparable, A, B, C, D, E, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], pd Parser[Tok, D], pe Parser[Tok, E], f func(A, B, C, D, E) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		d, ok := pd.run(st, expected)
		if !ok {
			return zero, false
		}
		e, ok := pe.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c, d, e), true
	})
}

func Map6[Tok comparable, A, B, C, D, E, F2, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], pd Parser[Tok, D], pe Parser[Tok, E], pf Parser[Tok, F2], f func(A, B, C, D, E, F2) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		d, ok := pd.run(st, expected)
		if !ok {
			return zero, false
		}
		e, ok := pe.run(st, expected)
		if !ok {
			return zero, false
		}
		ff, ok := pf.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c, d, e, ff), true
	})
}

func Map7[Tok comparable, A, B, C, D, E, F2, G, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], pd Parser[Tok, D], pe Parser[Tok, E], pf Parser[Tok, F2], pg Parser[Tok, G], f func(A, B, C, D, E, F2, G) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		d, ok := pd.run(st, expected)
		if !ok {
			return zero, false
		}
		e, ok := pe.run(st, expected)
		if !ok {
			return zero, false
		}
		ff, ok := pf.run(st, expected)
		if !ok {
			return zero, false
		}
		g, ok := pg.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c, d, e, ff, g), true
	})
}

func Map8[Tok comparable, A, B, C, D, E, F2, G, H, R any](pa Parser[Tok, A], pb Parser[Tok, B], pc Parser[Tok, C], pd Parser[Tok, D], pe Parser[Tok, E], pf Parser[Tok, F2], pg Parser[Tok, G], ph Parser[Tok, H], f func(A, B, C, D, E, F2, G, H) R) Parser[Tok, R] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (R, bool) {
		var zero R
		a, ok := pa.run(st, expected)
		if !ok {
			return zero, false
		}
		b, ok := pb.run(st, expected)
		if !ok {
			return zero, false
		}
		c, ok := pc.run(st, expected)
		if !ok {
			return zero, false
		}
		d, ok := pd.run(st, expected)
		if !ok {
			return zero, false
		}
		e, ok := pe.run(st, expected)
		if !ok {
			return zero, false
		}
		ff, ok := pf.run(st, expected)
		if !ok {
			return zero, false
		}
		g, ok := pg.run(st, expected)
		if !ok {
			return zero, false
		}
		h, ok := ph.run(st, expected)
		if !ok {
			return zero, false
		}
		return f(a, b, c, d, e, ff, g, h), true
	})
}

// Then runs p then q, keeping q's value; Then(Return(v), p) behaves as
// a neutral prefix that never changes p's result.
func Then[Tok comparable, A, B any](p Parser[Tok, A], q Parser[Tok, B]) Parser[Tok, B] {
	return Map2(p, q, func(_ A, b B) B { return b })
}

// Before runs p then q, keeping p's value.
func Before[Tok comparable, A, B any](p Parser[Tok, A], q Parser[Tok, B]) Parser[Tok, A] {
	return Map2(p, q, func(a A, _ B) A { return a })
}

// Bind runs p, then runs f(v) using p's value, propagating either's
// failure. This is the escape hatch to context-sensitive grammars; no
// other combinator needs runtime grammar construction.
func Bind[Tok comparable, A, B any](p Parser[Tok, A], f func(A) Parser[Tok, B]) Parser[Tok, B] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (B, bool) {
		var zero B
		a, ok := p.run(st, expected)
		if !ok {
			return zero, false
		}
		next := f(a)
		return next.run(st, expected)
	})
}
