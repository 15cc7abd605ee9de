package parsec

import (
	"fmt"
	"sort"
	"strings"
)

// ParseError is the structured failure value every parser reports
// through, never an exception. unexpected/atEof describe what was seen;
// expected describes what would have been accepted; message carries a
// user-supplied reason (from Fail/Assert/a custom parser); positionDelta
// is measured from the start of input to the failure location.
type ParseError[Tok comparable] struct {
	Unexpected    Tok
	HasUnexpected bool
	AtEOF         bool
	Expected      []Expectation[Tok]
	PositionDelta PositionDelta
	Message       string
	HasMessage    bool
}

// Equal compares two ParseErrors by value, treating Expected as a
// multiset: the order expectations were recorded in carries no meaning,
// only which ones and how many.
func (e ParseError[Tok]) Equal(other ParseError[Tok]) bool {
	if e.HasUnexpected != other.HasUnexpected ||
		(e.HasUnexpected && e.Unexpected != other.Unexpected) ||
		e.AtEOF != other.AtEOF ||
		e.PositionDelta != other.PositionDelta ||
		e.HasMessage != other.HasMessage ||
		(e.HasMessage && e.Message != other.Message) {
		return false
	}
	if len(e.Expected) != len(other.Expected) {
		return false
	}
	a := append([]Expectation[Tok](nil), e.Expected...)
	b := append([]Expectation[Tok](nil), other.Expected...)
	sort.Slice(a, func(i, j int) bool { return a[i].Less(a[j]) })
	sort.Slice(b, func(i, j int) bool { return b[i].Less(b[j]) })
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Position resolves the error's PositionDelta against StartPosition.
func (e ParseError[Tok]) Position() Position {
	return StartPosition.Add(e.PositionDelta)
}

// Error renders a multi-line diagnostic:
//
//	Parse error.
//	    <message>?
//	    unexpected <token|EOF>?
//	    expected <list>?
//	    at line L, col C
//
// This rendering is a convenience, not part of the programmatic
// contract; callers that need structured access should use the fields
// directly.
func (e ParseError[Tok]) Error() string {
	var b strings.Builder
	b.WriteString("Parse error.")
	if e.HasMessage {
		fmt.Fprintf(&b, "\n    %s", e.Message)
	}
	if e.AtEOF {
		b.WriteString("\n    unexpected end of input")
	} else if e.HasUnexpected {
		fmt.Fprintf(&b, "\n    unexpected %v", e.Unexpected)
	}
	if len(e.Expected) > 0 {
		b.WriteString("\n    expected ")
		b.WriteString(joinExpected(DedupExpectations(e.Expected)))
	}
	pos := e.Position()
	fmt.Fprintf(&b, "\n    at line %d, col %d", pos.Line, pos.Col)
	return b.String()
}

func joinExpected[Tok comparable](exp []Expectation[Tok]) string {
	parts := make([]string, len(exp))
	for i, e := range exp {
		parts[i] = e.String()
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", or " + parts[len(parts)-1]
	}
}

// ParseException wraps a ParseError so callers that prefer panics over
// Result-style returns (ParseOrThrow) have a single error type to match
// against with errors.As.
type ParseException[Tok comparable] struct {
	Err ParseError[Tok]
}

func (p *ParseException[Tok]) Error() string { return p.Err.Error() }

// UsageError marks the fatal, programmer-facing usage errors raised by
// Many/AtLeastOnce/Until when a sub-parser succeeds without consuming
// input, by Rewind/PopBookmark with no active bookmark, and by OneOf
// with no alternatives. These are panics, not ParseErrors:
// distinct from ordinary parse failures, which are always values.
type UsageError struct {
	Msg string
}

func (u *UsageError) Error() string { return "parsec usage error: " + u.Msg }
