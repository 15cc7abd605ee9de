// Package pooled implements PooledList, a growable buffer whose backing
// arrays are rented from a process-wide array pool instead of allocated
// fresh on every parse.
//
// The pool itself follows the pattern uax/automata.go uses for its
// Recognizer pool: a github.com/jolestar/go-commons-pool ObjectPool
// fed by a PooledObjectFactorySimple, with unbounded total size and
// non-blocking borrow (parsing never wants to wait on a pool slot; it
// just allocates one more backing array instead). Because PooledList is
// generic over its element type and go-commons-pool pools are untyped
// (they hand back interface{}), one Provider exists per element type,
// looked up by reflect.Type in a process-wide registry — this is the
// "no global state except the array pool" design note generalized to a
// generic element type.
package pooled

import (
	"context"
	"reflect"
	"sync"

	gopool "github.com/jolestar/go-commons-pool"
)

// Provider rents and returns backing arrays of element type E.
type Provider[E any] struct {
	pool *gopool.ObjectPool
	ctx  context.Context
}

// NewProvider creates a Provider whose backing arrays start at the given
// capacity. A Provider is safe for concurrent use and is meant to outlive
// any single parse.
func NewProvider[E any](initialCap int) *Provider[E] {
	ctx := context.Background()
	factory := gopool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			s := make([]E, 0, initialCap)
			return &s, nil
		})
	cfg := gopool.NewDefaultPoolConfig()
	cfg.MaxTotal = -1 // infinity, same as globalRecognizerPool
	cfg.BlockWhenExhausted = false
	return &Provider[E]{pool: gopool.NewObjectPool(ctx, factory, cfg), ctx: ctx}
}

func (p *Provider[E]) rent() *[]E {
	o, err := p.pool.BorrowObject(p.ctx)
	if err != nil {
		// BlockWhenExhausted is false and MaxTotal is infinite, so the
		// factory itself would have to fail for this to happen.
		s := make([]E, 0, 8)
		return &s
	}
	return o.(*[]E)
}

func (p *Provider[E]) release(s *[]E) {
	*s = (*s)[:0]
	_ = p.pool.ReturnObject(p.ctx, s)
}

var (
	registryMu sync.Mutex
	registry   = map[reflect.Type]any{}
)

// Default returns the process-wide Provider for element type E, creating
// it on first use. It is the array-pool-provider referenced by Config.
func Default[E any]() *Provider[E] {
	var zero E
	key := reflect.TypeOf(&zero).Elem()

	registryMu.Lock()
	defer registryMu.Unlock()
	if v, ok := registry[key]; ok {
		return v.(*Provider[E])
	}
	p := NewProvider[E](8)
	registry[key] = p
	return p
}

// List is a growable sequence backed by a rented array. It is not
// thread-safe: a List is meant to be owned by exactly one combinator
// invocation for the duration of a single tryParse call, exactly as
// spec'd for the expectation buffers passed between combinators.
type List[E any] struct {
	provider *Provider[E]
	buf      *[]E
	released bool
}

// New rents a backing array from provider and returns an empty List.
func New[E any](provider *Provider[E]) *List[E] {
	return &List[E]{provider: provider, buf: provider.rent()}
}

// Add appends a single element.
func (l *List[E]) Add(e E) {
	*l.buf = append(*l.buf, e)
}

// AddRange appends every element of es, in order.
func (l *List[E]) AddRange(es []E) {
	*l.buf = append(*l.buf, es...)
}

// AddList appends the contents of another List, leaving other untouched.
func (l *List[E]) AddList(other *List[E]) {
	if other == nil {
		return
	}
	l.AddRange(other.AsSlice())
}

// Clear empties the list without releasing its backing array.
func (l *List[E]) Clear() {
	*l.buf = (*l.buf)[:0]
}

// Len returns the number of elements currently held.
func (l *List[E]) Len() int {
	return len(*l.buf)
}

// AsSlice exposes the current contents. The slice is only valid until the
// next mutating call or Dispose.
func (l *List[E]) AsSlice() []E {
	return *l.buf
}

// Dispose returns the backing array to the pool. It is safe to call more
// than once; every exit path of a combinator that owns a List must reach
// a Dispose call, success, failure, or panic alike.
func (l *List[E]) Dispose() {
	if l.released {
		return
	}
	l.released = true
	l.provider.release(l.buf)
}
