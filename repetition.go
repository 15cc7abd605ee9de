package parsec

import (
	"strings"

	"github.com/gocomb/parsec/internal/trace"
	"github.com/gocomb/parsec/pooled"
)

func loopGuard(who string) {
	trace.P().Errorf("%s: inner parser matched without consuming input", who)
	panic(&UsageError{Msg: who + ": parser succeeded without consuming input"})
}

// Many runs p until it fails. A failure that consumed input fails the
// whole repetition (commitment); a failure that consumed nothing ends
// the repetition successfully. p succeeding without
// advancing the cursor is a programmer error, not a parse failure, and
// is fatal.
func Many[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, []T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]T, bool) {
		var out []T
		for {
			loc0 := st.Location()
			v, ok := p.run(st, expected)
			if !ok {
				if st.Location() > loc0 {
					return nil, false
				}
				break
			}
			if st.Location() == loc0 {
				loopGuard("Many")
			}
			out = append(out, v)
		}
		return out, true
	})
}

// AtLeastOnce is Many but requires at least one success.
func AtLeastOnce[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, []T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]T, bool) {
		var out []T
		for i := 0; ; i++ {
			loc0 := st.Location()
			v, ok := p.run(st, expected)
			if !ok {
				if i == 0 || st.Location() > loc0 {
					return nil, false
				}
				break
			}
			if st.Location() == loc0 {
				loopGuard("AtLeastOnce")
			}
			out = append(out, v)
		}
		return out, true
	})
}

// SkipMany is Many, discarding values.
func SkipMany[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, struct{}] {
	return Map1(Many(p), func([]T) struct{} { return struct{}{} })
}

// SkipAtLeastOnce is AtLeastOnce, discarding values.
func SkipAtLeastOnce[Tok comparable, T any](p Parser[Tok, T]) Parser[Tok, struct{}] {
	return Map1(AtLeastOnce(p), func([]T) struct{} { return struct{}{} })
}

// Repeat runs p exactly n (>= 0) times, failing as soon as p does.
func Repeat[Tok comparable, T any](p Parser[Tok, T], n int) Parser[Tok, []T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]T, bool) {
		if n <= 0 {
			return nil, true
		}
		out := make([]T, 0, n)
		for i := 0; i < n; i++ {
			v, ok := p.run(st, expected)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	})
}

// RepeatString is the char specialization of Repeat, packing n matched
// runes into a string with a fixed-capacity in-place builder rather than
// an intermediate []rune.
func RepeatString(p Parser[rune, rune], n int) Parser[rune, string] {
	return newParser(func(st *ParseState[rune], expected *pooled.List[Expectation[rune]]) (string, bool) {
		var b strings.Builder
		b.Grow(n)
		for i := 0; i < n; i++ {
			r, ok := p.run(st, expected)
			if !ok {
				return "", false
			}
			b.WriteRune(r)
		}
		return b.String(), true
	})
}

// Until alternates trying t (success stops the repetition) and running p
// once. Consumption determines error-merging exactly as Or does: a
// t-failure that consumed input fails Until outright; a
// p-failure that consumed nothing merges both siblings' expectations; a
// p-failure that consumed input keeps only p's.
func Until[Tok comparable, T, U any](p Parser[Tok, T], t Parser[Tok, U]) Parser[Tok, []T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]T, bool) {
		var out []T
		for {
			loc0 := st.Location()
			expT := st.NewExpectationList()
			_, okT := t.run(st, expT)
			if okT {
				expected.AddList(expT)
				expT.Dispose()
				return out, true
			}
			if st.Location() > loc0 {
				expected.AddList(expT)
				expT.Dispose()
				return nil, false
			}

			expP := st.NewExpectationList()
			v, okP := p.run(st, expP)
			if !okP {
				if st.Location() > loc0 {
					expected.AddList(expP)
					expT.Dispose()
					expP.Dispose()
					return nil, false
				}
				expected.AddList(expT)
				expected.AddList(expP)
				expT.Dispose()
				expP.Dispose()
				return nil, false
			}
			expected.AddList(expP)
			expT.Dispose()
			expP.Dispose()
			if st.Location() == loc0 {
				loopGuard("Until")
			}
			out = append(out, v)
		}
	})
}

// AtLeastOnceUntil is Until but requires p to succeed at least once
// before t is allowed to stop the repetition.
func AtLeastOnceUntil[Tok comparable, T, U any](p Parser[Tok, T], t Parser[Tok, U]) Parser[Tok, []T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) ([]T, bool) {
		loc0 := st.Location()
		v, ok := p.run(st, expected)
		if !ok {
			return nil, false
		}
		if st.Location() == loc0 {
			loopGuard("AtLeastOnceUntil")
		}
		rest, ok := Until(p, t).run(st, expected)
		if !ok {
			return nil, false
		}
		out := make([]T, 0, len(rest)+1)
		out = append(out, v)
		out = append(out, rest...)
		return out, true
	})
}

// SepBy1 parses one or more p separated by sep, with no trailing sep.
func SepBy1[Tok comparable, T, S any](p Parser[Tok, T], sep Parser[Tok, S]) Parser[Tok, []T] {
	return Map2(p, Many(Then(sep, p)), func(first T, rest []T) []T {
		out := make([]T, 0, len(rest)+1)
		out = append(out, first)
		return append(out, rest...)
	})
}

// SepBy parses zero or more p separated by sep, with no trailing sep.
func SepBy[Tok comparable, T, S any](p Parser[Tok, T], sep Parser[Tok, S]) Parser[Tok, []T] {
	return Or(SepBy1(p, sep), Return[Tok, []T](nil))
}

// SepEndBy1 parses one or more p separated by sep, with an optional
// trailing sep. Each (sep p) step runs under Try, so a sep that is not
// followed by a complete p is rewound and then taken as the trailing sep.
func SepEndBy1[Tok comparable, T, S any](p Parser[Tok, T], sep Parser[Tok, S]) Parser[Tok, []T] {
	trailingSep := Or(Map1(sep, func(S) struct{} { return struct{}{} }), Return[Tok, struct{}](struct{}{}))
	items := Map2(p, Many(Try(Then(sep, p))), func(first T, rest []T) []T {
		out := make([]T, 0, len(rest)+1)
		out = append(out, first)
		return append(out, rest...)
	})
	return Before(items, trailingSep)
}

// SepEndBy parses zero or more p separated by sep, with an optional
// trailing sep.
func SepEndBy[Tok comparable, T, S any](p Parser[Tok, T], sep Parser[Tok, S]) Parser[Tok, []T] {
	return Or(SepEndBy1(p, sep), Return[Tok, []T](nil))
}

// ChainLeft parses operand (op operand)* and folds left:
// ((x op y) op y) op y.
func ChainLeft[Tok comparable, T any](operand Parser[Tok, T], op Parser[Tok, func(T, T) T]) Parser[Tok, T] {
	return Bind(operand, func(first T) Parser[Tok, T] {
		return ChainLeftFrom(first, operand, op)
	})
}

// ChainLeftFrom continues a left fold that has already parsed its first
// operand (first), running zero or more (op operand) pairs against it.
// expr.Build uses this directly, since by the time it needs to chain the
// shared left-hand operand has already been parsed once for the whole
// infix/prefix/postfix alternative.
func ChainLeftFrom[Tok comparable, T any](first T, operand Parser[Tok, T], op Parser[Tok, func(T, T) T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		acc := first
		for {
			loc0 := st.Location()
			f, ok := op.run(st, expected)
			if !ok {
				if st.Location() > loc0 {
					return acc, false
				}
				break
			}
			rhs, ok := operand.run(st, expected)
			if !ok {
				return acc, false
			}
			acc = f(acc, rhs)
		}
		return acc, true
	})
}

// ChainRight parses operand (op operand)* and folds right:
// x op (y op (y op y)).
func ChainRight[Tok comparable, T any](operand Parser[Tok, T], op Parser[Tok, func(T, T) T]) Parser[Tok, T] {
	return Bind(operand, func(first T) Parser[Tok, T] {
		return ChainRightFrom(first, operand, op)
	})
}

type chainPair[T any] struct {
	f   func(T, T) T
	val T
}

// ChainRightFrom is ChainRight's counterpart to ChainLeftFrom: it
// continues a right fold whose first operand has already been parsed.
func ChainRightFrom[Tok comparable, T any](first T, operand Parser[Tok, T], op Parser[Tok, func(T, T) T]) Parser[Tok, T] {
	return newParser(func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
		var pairs []chainPair[T]
		for {
			loc0 := st.Location()
			f, ok := op.run(st, expected)
			if !ok {
				if st.Location() > loc0 {
					var zero T
					return zero, false
				}
				break
			}
			rhs, ok := operand.run(st, expected)
			if !ok {
				var zero T
				return zero, false
			}
			pairs = append(pairs, chainPair[T]{f, rhs})
		}
		if len(pairs) == 0 {
			return first, true
		}
		acc := pairs[len(pairs)-1].val
		for i := len(pairs) - 2; i >= 0; i-- {
			acc = pairs[i+1].f(pairs[i].val, acc)
		}
		acc = pairs[0].f(first, acc)
		return acc, true
	})
}
