package parsec

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/gocomb/parsec/pooled"
)

// TokenSource is the pull-based iterator ParseState reads from. Next
// returns the next token and true, or the zero value and false once the
// source is exhausted. Concrete string/stream adapters are left to
// callers; TokenSource is the interface those adapters, and any
// caller's own, are built against.
type TokenSource[Tok any] interface {
	Next() (Tok, bool)
}

// RandomAccessTokenSource is an optional fast path: a source that can
// hand back the token at an arbitrary offset. ParseState checks for this
// interface at construction time and, when it is present, reads tokens
// with At instead of Next. Tokens read this way are still copied into
// ParseState's own buffer, whether or not a bookmark is active.
type RandomAccessTokenSource[Tok any] interface {
	TokenSource[Tok]
	At(i int) (Tok, bool)
}

// bookmark is what pushBookmark snapshots and rewind restores.
type bookmark struct {
	location int
	delta    PositionDelta
}

// ParseState is the buffered token cursor every combinator consults and
// mutates. It lives for exactly one top-level parse; build one with
// NewParseState, or just call Parse/ParseOrThrow.
//
// buffer holds tokens for the contiguous absolute range
// [bufferBase, bufferBase+len(buffer)); bufferBaseDelta is the position
// delta from input start to bufferBase, and curDelta is the delta to
// location. Both are kept up to date incrementally by Advance/trimTo so
// that ComputeSourcePosDeltaAt never has to walk past what's buffered.
type ParseState[Tok comparable] struct {
	source TokenSource[Tok]
	fast   RandomAccessTokenSource[Tok]
	config *Config[Tok]

	buffer          []Tok
	tokDelta        []PositionDelta
	bufferBase      int
	bufferBaseDelta PositionDelta

	location int
	curDelta PositionDelta

	bookmarks     *arraystack.Stack
	bookmarkDepth int
	earliestMark  int // bufferBase floor while bookmarks are active; -1 if none

	errUnexpected       Tok
	errHasUnexpected    bool
	errAtEOF            bool
	errLocation         int
	errPosDeltaOverride *PositionDelta
	errMessage          string
	errHasMessage       bool
}

// NewParseState constructs a ParseState over source using cfg. Passing a
// nil cfg is equivalent to NewConfig[Tok]() (one column per token,
// process-wide default pool).
func NewParseState[Tok comparable](source TokenSource[Tok], cfg *Config[Tok]) *ParseState[Tok] {
	if cfg == nil {
		cfg = NewConfig[Tok]()
	}
	st := &ParseState[Tok]{
		source:       source,
		config:       cfg,
		bookmarks:    arraystack.New(),
		earliestMark: -1,
	}
	if ra, ok := source.(RandomAccessTokenSource[Tok]); ok {
		st.fast = ra
	}
	return st
}

// Config returns the Config this state was constructed with.
func (s *ParseState[Tok]) Config() *Config[Tok] { return s.config }

// NewExpectationList rents a private expectation buffer from the
// state's configured pool. Callers must Dispose it on every exit path.
func (s *ParseState[Tok]) NewExpectationList() *pooled.List[Expectation[Tok]] {
	return pooled.New(s.config.Pool)
}

func (s *ParseState[Tok]) pull() (Tok, bool) {
	if s.fast != nil {
		return s.fast.At(s.bufferBase + len(s.buffer))
	}
	return s.source.Next()
}

// ensureBuffered makes sure at least min(n, available) tokens starting
// at the current location are present in the buffer, pulling more from
// the source as needed, and returns how many are actually available.
func (s *ParseState[Tok]) ensureBuffered(n int) int {
	offset := s.location - s.bufferBase
	for offset+n > len(s.buffer) {
		tok, ok := s.pull()
		if !ok {
			break
		}
		s.buffer = append(s.buffer, tok)
		s.tokDelta = append(s.tokDelta, s.config.PosCalc(tok))
	}
	avail := len(s.buffer) - offset
	if avail < 0 {
		avail = 0
	}
	if avail > n {
		avail = n
	}
	return avail
}

// HasCurrent reports whether there is a token at the current location.
func (s *ParseState[Tok]) HasCurrent() bool {
	return s.ensureBuffered(1) > 0
}

// Current returns the token at the current location. Only call this
// after HasCurrent reports true.
func (s *ParseState[Tok]) Current() Tok {
	return s.buffer[s.location-s.bufferBase]
}

// Location returns the monotonically non-decreasing cursor index.
func (s *ParseState[Tok]) Location() int {
	return s.location
}

// LookAhead returns a slice of up to n tokens beginning at the cursor.
// The returned slice is only valid until the next mutating call.
func (s *ParseState[Tok]) LookAhead(n int) []Tok {
	avail := s.ensureBuffered(n)
	offset := s.location - s.bufferBase
	return s.buffer[offset : offset+avail]
}

// Advance moves the cursor forward by n, pulling tokens from the source
// as needed; at end of input it stops after the last available token.
// Position delta accumulates via the configured PositionCalculator.
func (s *ParseState[Tok]) Advance(n int) {
	if avail := s.ensureBuffered(n); avail < n {
		n = avail
	}
	offset := s.location - s.bufferBase
	for i := 0; i < n; i++ {
		s.curDelta = s.curDelta.Add(s.tokDelta[offset+i])
	}
	s.location += n
	target := s.location
	if s.bookmarkDepth > 0 && s.earliestMark < target {
		target = s.earliestMark
	}
	s.trimTo(target)
}

// trimTo drops buffered tokens before loc, rolling bufferBase and
// bufferBaseDelta forward. It is a no-op if loc <= bufferBase.
func (s *ParseState[Tok]) trimTo(loc int) {
	drop := loc - s.bufferBase
	if drop <= 0 {
		return
	}
	if drop > len(s.buffer) {
		drop = len(s.buffer)
	}
	for i := 0; i < drop; i++ {
		s.bufferBaseDelta = s.bufferBaseDelta.Add(s.tokDelta[i])
	}
	s.buffer = s.buffer[drop:]
	s.tokDelta = s.tokDelta[drop:]
	s.bufferBase += drop
}

// PushBookmark snapshots the current location, beginning or extending a
// buffering region that keeps every token from the earliest active
// bookmark through the current position retrievable.
func (s *ParseState[Tok]) PushBookmark() {
	s.bookmarks.Push(&bookmark{location: s.location, delta: s.curDelta})
	s.bookmarkDepth++
	if s.bookmarkDepth == 1 {
		s.earliestMark = s.location
	}
}

// Rewind restores the most recently pushed bookmark and drops it.
func (s *ParseState[Tok]) Rewind() {
	v, ok := s.bookmarks.Pop()
	if !ok {
		panic(&UsageError{Msg: "Rewind called with no active bookmark"})
	}
	bm := v.(*bookmark)
	s.location = bm.location
	s.curDelta = bm.delta
	s.bookmarkDepth--
	if s.bookmarkDepth == 0 {
		s.earliestMark = -1
		s.trimTo(s.location)
	}
}

// PopBookmark discards the most recently pushed bookmark without
// restoring the cursor.
func (s *ParseState[Tok]) PopBookmark() {
	_, ok := s.bookmarks.Pop()
	if !ok {
		panic(&UsageError{Msg: "PopBookmark called with no active bookmark"})
	}
	s.bookmarkDepth--
	if s.bookmarkDepth == 0 {
		s.earliestMark = -1
		s.trimTo(s.location)
	}
}

// SetError writes the error slot. Only meaningful once the top-level
// call has returned failure; intermediate combinators may overwrite it
// freely on the way back up.
func (s *ParseState[Tok]) SetError(unexpected Tok, hasUnexpected, atEOF bool, location int, message string, hasMessage bool) {
	s.errUnexpected = unexpected
	s.errHasUnexpected = hasUnexpected
	s.errAtEOF = atEOF
	s.errLocation = location
	s.errPosDeltaOverride = nil
	s.errMessage = message
	s.errHasMessage = hasMessage
}

// SetErrorAtDelta is like SetError, but takes an already-computed
// PositionDelta instead of a location. Use it when the location being
// reported may no longer be resolvable by computeSourcePosDeltaAt by the
// time BuildError runs — e.g. Not, which trims the buffer (via
// PopBookmark) past the location it needs to report before it can call
// SetError at all.
func (s *ParseState[Tok]) SetErrorAtDelta(unexpected Tok, hasUnexpected, atEOF bool, delta PositionDelta, message string, hasMessage bool) {
	s.errUnexpected = unexpected
	s.errHasUnexpected = hasUnexpected
	s.errAtEOF = atEOF
	s.errPosDeltaOverride = &delta
	s.errMessage = message
	s.errHasMessage = hasMessage
}

// ErrorLocation returns the location most recently passed to SetError.
func (s *ParseState[Tok]) ErrorLocation() int {
	return s.errLocation
}

// BuildError materializes a ParseError from the current error slot, the
// given expectation set, and the position delta at the error's
// location.
func (s *ParseState[Tok]) BuildError(expected []Expectation[Tok]) ParseError[Tok] {
	cp := make([]Expectation[Tok], len(expected))
	copy(cp, expected)
	delta := s.computeSourcePosDeltaAt(s.errLocation)
	if s.errPosDeltaOverride != nil {
		delta = *s.errPosDeltaOverride
	}
	return ParseError[Tok]{
		Unexpected:    s.errUnexpected,
		HasUnexpected: s.errHasUnexpected,
		AtEOF:         s.errAtEOF,
		Expected:      cp,
		PositionDelta: delta,
		Message:       s.errMessage,
		HasMessage:    s.errHasMessage,
	}
}

// ComputeSourcePosDelta returns the position delta from input start to
// the current location.
func (s *ParseState[Tok]) ComputeSourcePosDelta() PositionDelta {
	return s.curDelta
}

// ComputeSourcePosDeltaAt returns the position delta from input start to
// the given location, which must be at or after the earliest buffered
// token (i.e. not already trimmed away).
func (s *ParseState[Tok]) ComputeSourcePosDeltaAt(loc int) PositionDelta {
	return s.computeSourcePosDeltaAt(loc)
}

func (s *ParseState[Tok]) computeSourcePosDeltaAt(loc int) PositionDelta {
	if loc == s.location {
		return s.curDelta
	}
	if loc < s.bufferBase {
		loc = s.bufferBase // already trimmed away; best effort
	}
	offset := loc - s.bufferBase
	if offset > len(s.buffer) {
		offset = len(s.buffer)
	}
	delta := s.bufferBaseDelta
	for i := 0; i < offset; i++ {
		delta = delta.Add(s.tokDelta[i])
	}
	return delta
}
