// Package expr builds operator-precedence parsers over a term parser and a
// precedence table, lowest-binding row first. It sits above the root
// package rather than inside it, the way a scanner-facing grammar is kept
// separate from the engine it drives.
package expr

import "github.com/gocomb/parsec"

// Row is one precedence level: a set of operator parsers sharing a binding
// strength, grouped by associativity. Any group may be left nil or empty.
type Row[Tok comparable, T any] struct {
	InfixN  []parsec.Parser[Tok, func(T, T) T]
	InfixL  []parsec.Parser[Tok, func(T, T) T]
	InfixR  []parsec.Parser[Tok, func(T, T) T]
	Prefix  []parsec.Parser[Tok, func(T) T]
	Postfix []parsec.Parser[Tok, func(T) T]
}

// Build climbs term through table, producing a single parser for the
// whole expression grammar. table lists rows lowest-binding first, so
// Build wraps term in the last row first and in table[0] last, making
// table[0] the outermost (loosest-binding) level.
func Build[Tok comparable, T any](term parsec.Parser[Tok, T], table []Row[Tok, T]) parsec.Parser[Tok, T] {
	out := term
	for i := len(table) - 1; i >= 0; i-- {
		out = mkLevel(out, table[i])
	}
	return out
}

// oneOfOrNone behaves like parsec.OneOf but, unlike it, tolerates an empty
// alternative list: an absent operator group must fail without consuming
// rather than make OneOf panic on a programmer-supplied empty row.
func oneOfOrNone[Tok comparable, T any](ps []parsec.Parser[Tok, T]) parsec.Parser[Tok, T] {
	if len(ps) == 0 {
		return parsec.Fail[Tok, T]("")
	}
	return parsec.OneOf(ps...)
}

func mkLevel[Tok comparable, T any](inner parsec.Parser[Tok, T], row Row[Tok, T]) parsec.Parser[Tok, T] {
	prefixOp := oneOfOrNone(row.Prefix)
	postfixOp := oneOfOrNone(row.Postfix)

	prefixed := parsec.Or(
		parsec.Map2(prefixOp, inner, func(f func(T) T, v T) T { return f(v) }),
		inner,
	)
	// postfixOp is applied via Bind rather than a second Map2-then-Or so
	// that a missing/failing postfix op is what Or sees as non-consuming
	// at its own entry point, not folded into prefixed's consumption.
	operand := parsec.Bind(prefixed, func(v T) parsec.Parser[Tok, T] {
		return parsec.Or(
			parsec.Map1(postfixOp, func(f func(T) T) T { return f(v) }),
			parsec.Return[Tok, T](v),
		)
	})

	return applyInfix(operand, row)
}

// applyInfix is mkLevel's final step: parse one operand as the left-hand
// side, then decide among at-most-one infixN, one-or-more infixL folded
// left, one-or-more infixR folded right, or no operator at all — tried in
// that order via OneOf. Each infix alternative starts by parsing its
// operator, so an absent operator fails without consuming and OneOf moves
// on to the next group.
func applyInfix[Tok comparable, T any](operand parsec.Parser[Tok, T], row Row[Tok, T]) parsec.Parser[Tok, T] {
	infixN := oneOfOrNone(row.InfixN)
	infixL := oneOfOrNone(row.InfixL)
	infixR := oneOfOrNone(row.InfixR)

	return parsec.Bind(operand, func(x T) parsec.Parser[Tok, T] {
		return parsec.OneOf(
			parsec.Bind(infixN, func(f func(T, T) T) parsec.Parser[Tok, T] {
				return parsec.Map1(operand, func(y T) T { return f(x, y) })
			}),
			parsec.Bind(infixL, func(f func(T, T) T) parsec.Parser[Tok, T] {
				return parsec.Bind(operand, func(y T) parsec.Parser[Tok, T] {
					return parsec.ChainLeftFrom(f(x, y), operand, infixL)
				})
			}),
			parsec.Bind(infixR, func(f func(T, T) T) parsec.Parser[Tok, T] {
				return parsec.Map1(parsec.ChainRight(operand, infixR), func(y T) T { return f(x, y) })
			}),
			parsec.Return[Tok, T](x),
		)
	})
}
