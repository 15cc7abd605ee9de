// Package permute implements order-insensitive composition of parsers:
// a set of constituents to be matched in any order, each exactly once,
// with optional constituents substituting a default when absent.
package permute

import "github.com/gocomb/parsec"

type item[Tok comparable] struct {
	parser       parsec.Parser[Tok, any]
	optional     bool
	defaultValue any
}

// Permutation is an immutable description of a permutation grammar. The
// zero value is the empty permutation; Add and AddOptional each return a
// new instance rather than mutating the receiver.
//
// Precondition, not enforced here: every required constituent must
// consume at least one token on success, or the permutation can loop or
// resolve non-deterministically.
type Permutation[Tok comparable] struct {
	items []item[Tok]
}

// New returns the empty permutation.
func New[Tok comparable]() *Permutation[Tok] {
	return &Permutation[Tok]{}
}

// Add returns a new permutation with p appended as a required
// constituent. It is a package function rather than a method because Go
// methods cannot introduce type parameters beyond the receiver's — the
// same constraint that keeps Then and Bind as standalone functions in
// the root package.
func Add[Tok comparable, T any](pp *Permutation[Tok], p parsec.Parser[Tok, T]) *Permutation[Tok] {
	return appendItem(pp, item[Tok]{parser: wrap(p)})
}

// AddOptional returns a new permutation with p appended as an optional
// constituent; def is substituted in its slot when p never matches.
func AddOptional[Tok comparable, T any](pp *Permutation[Tok], p parsec.Parser[Tok, T], def T) *Permutation[Tok] {
	return appendItem(pp, item[Tok]{parser: wrap(p), optional: true, defaultValue: def})
}

func wrap[Tok comparable, T any](p parsec.Parser[Tok, T]) parsec.Parser[Tok, any] {
	return parsec.Map1(p, func(v T) any { return v })
}

// emptyMap allocates a fresh map on every run, rather than capturing one
// shared map literal the way Return would: forest's branches mutate the
// map they're handed in place, so a Parser built once and run many times
// (or run concurrently) must not hand out the same map twice.
func emptyMap[Tok comparable]() parsec.Parser[Tok, map[int]any] {
	return parsec.Map1(parsec.Return[Tok, struct{}](struct{}{}), func(struct{}) map[int]any {
		return map[int]any{}
	})
}

func appendItem[Tok comparable](pp *Permutation[Tok], it item[Tok]) *Permutation[Tok] {
	items := make([]item[Tok], len(pp.items)+1)
	copy(items, pp.items)
	items[len(pp.items)] = it
	return &Permutation[Tok]{items: items}
}

// Build compiles the permutation to OneOf(branches).Or(Return(exit)),
// recursively over the forest of constituents not yet seen: each branch
// parses one remaining item's head parser, then recurses into the
// permutation of everything else. A node's exit — supplying defaults for
// every constituent still unseen there — is reachable only when every
// one of them is optional.
func (pp *Permutation[Tok]) Build() parsec.Parser[Tok, []any] {
	all := make([]int, len(pp.items))
	for i := range pp.items {
		all[i] = i
	}
	forest := pp.forest(all)
	return parsec.Map1(forest, func(found map[int]any) []any {
		out := make([]any, len(pp.items))
		for i, it := range pp.items {
			if v, ok := found[i]; ok {
				out[i] = v
			} else {
				out[i] = it.defaultValue
			}
		}
		return out
	})
}

func (pp *Permutation[Tok]) forest(remaining []int) parsec.Parser[Tok, map[int]any] {
	if len(remaining) == 0 {
		return emptyMap[Tok]()
	}

	allOptional := true
	branches := make([]parsec.Parser[Tok, map[int]any], 0, len(remaining))
	for pos, idx := range remaining {
		idx := idx // each branch's closure must record its own index
		it := pp.items[idx]
		if !it.optional {
			allOptional = false
		}
		rest := without(remaining, pos)
		sub := pp.forest(rest)
		branches = append(branches, parsec.Bind(it.parser, func(v any) parsec.Parser[Tok, map[int]any] {
			return parsec.Map1(sub, func(m map[int]any) map[int]any {
				m[idx] = v
				return m
			})
		}))
	}

	combined := parsec.OneOf(branches...)
	if !allOptional {
		return combined
	}
	return parsec.Or(combined, emptyMap[Tok]())
}

func without(xs []int, pos int) []int {
	out := make([]int, 0, len(xs)-1)
	out = append(out, xs[:pos]...)
	out = append(out, xs[pos+1:]...)
	return out
}
