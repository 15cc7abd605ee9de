package parsec

import "github.com/gocomb/parsec/pooled"

// Config bundles two knobs: how a consumed token advances position, and
// where expectation buffers are rented from. It is built with
// functional options, the same shape scanner/segmenter constructors
// elsewhere in this ecosystem use (ScannerOption, Segmenter options).
type Config[Tok comparable] struct {
	PosCalc PositionCalculator[Tok]
	Pool    *pooled.Provider[Expectation[Tok]]
}

// Option configures a Config at construction time.
type Option[Tok comparable] func(*Config[Tok])

// WithPositionCalculator overrides the default (every token advances one
// column). A typical override for runes treats '\n' as NewLine.
func WithPositionCalculator[Tok comparable](f PositionCalculator[Tok]) Option[Tok] {
	return func(c *Config[Tok]) { c.PosCalc = f }
}

// WithPool overrides the array-pool provider backing expectation
// buffers. Most callers should leave this at the process-wide default
// returned by pooled.Default.
func WithPool[Tok comparable](p *pooled.Provider[Expectation[Tok]]) Option[Tok] {
	return func(c *Config[Tok]) { c.Pool = p }
}

// NewConfig builds a Config, applying opts over the defaults.
func NewConfig[Tok comparable](opts ...Option[Tok]) *Config[Tok] {
	cfg := &Config[Tok]{
		PosCalc: func(Tok) PositionDelta { return OneCol },
		Pool:    pooled.Default[Expectation[Tok]](),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Clone returns a shallow copy, letting a caller override one field for
// a single parse (e.g. a test swapping the pool provider) without
// mutating a shared Config.
func (c *Config[Tok]) Clone() *Config[Tok] {
	cp := *c
	return &cp
}

// RuneNewlineAware is a PositionCalculator for rune token streams
// that treats '\n' as starting a new line and everything else as one
// column, the common override for any source that tracks line/column.
func RuneNewlineAware(r rune) PositionDelta {
	if r == '\n' {
		return NewLine
	}
	return OneCol
}
