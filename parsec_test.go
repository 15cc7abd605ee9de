package parsec_test

import "github.com/gocomb/parsec"

// runeSource is the common in-memory token source every _test.go file in
// this package parses against: a random-access []rune, exercising the
// optional fast path for in-memory arrays/strings.
type runeSource struct {
	runes []rune
}

func newRuneSource(s string) *runeSource {
	return &runeSource{runes: []rune(s)}
}

func (s *runeSource) Next() (rune, bool) {
	if len(s.runes) == 0 {
		return 0, false
	}
	r := s.runes[0]
	s.runes = s.runes[1:]
	return r, true
}

func (s *runeSource) At(i int) (rune, bool) {
	if i < 0 || i >= len(s.runes) {
		return 0, false
	}
	return s.runes[i], true
}

var _ parsec.RandomAccessTokenSource[rune] = (*runeSource)(nil)
