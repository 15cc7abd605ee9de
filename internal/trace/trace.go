// Package trace gives parsec's combinators a single, package-wide tracer,
// the same way uax/segment.go exposes CT() over gtrace.CoreTracer.
package trace

import (
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

var initOnce sync.Once

func ensure() {
	initOnce.Do(func() {
		if gtrace.CoreTracer == nil {
			gtrace.CoreTracer = gologadapter.New()
			gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
		}
	})
}

// P returns the core tracer used by parsec's combinators. The
// repetition combinators' infinite-loop guard logs through it before
// panicking; by default the level is high enough that well-behaved
// parses never pay for more than the interface call itself.
func P() tracing.Trace {
	ensure()
	return gtrace.CoreTracer
}
