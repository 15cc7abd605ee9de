package parsec

import "github.com/gocomb/parsec/pooled"

// Parser is the one contract every combinator in this package honors:
// tryParse(state, expecteds) → (value, success). Tok is the token type
// the parser consumes; T is the value it produces on success.
//
// Parser values are pure descriptions of parsing intent: immutable,
// freely shareable, and built once to be run many times. The only
// mutable part of a parse is the ParseState passed to Run.
type Parser[Tok comparable, T any] struct {
	run func(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool)
}

// Run executes p against st, appending expectations to expected (a
// caller-owned buffer the Parser never disposes). On success it returns
// (value, true); on failure (false, any value) with state.location either
// unchanged or strictly advanced from entry — there is no third case.
func (p Parser[Tok, T]) Run(st *ParseState[Tok], expected *pooled.List[Expectation[Tok]]) (T, bool) {
	return p.run(st, expected)
}

// newParser is the single constructor every combinator in this package
// funnels through, keeping the closure representation (design note §9,
// option b) in one place.
func newParser[Tok comparable, T any](run func(*ParseState[Tok], *pooled.List[Expectation[Tok]]) (T, bool)) Parser[Tok, T] {
	return Parser[Tok, T]{run: run}
}

// Parse runs p against a freshly built ParseState over source and cfg.
// It never panics on a parse failure: failure surfaces as a non-nil
// ParseError (which itself implements error).
func Parse[Tok comparable, T any](p Parser[Tok, T], source TokenSource[Tok], cfg *Config[Tok]) (T, error) {
	st := NewParseState(source, cfg)
	expected := st.NewExpectationList()
	defer expected.Dispose()

	v, ok := p.run(st, expected)
	if !ok {
		return v, st.BuildError(expected.AsSlice())
	}
	return v, nil
}

// ParseOrThrow runs p the same way Parse does, but panics with a
// *ParseException wrapping the structured ParseError on failure, for
// callers that prefer exceptions to Result-style returns.
func ParseOrThrow[Tok comparable, T any](p Parser[Tok, T], source TokenSource[Tok], cfg *Config[Tok]) T {
	v, err := Parse(p, source, cfg)
	if err != nil {
		pe := err.(ParseError[Tok])
		panic(&ParseException[Tok]{Err: pe})
	}
	return v
}
