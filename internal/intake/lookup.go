package intake

import (
	"context"
	"sync"
	"time"
)

// Token identifies one issued lookup.
type Token uint64

// Lookup hands out cancellable, time-bounded contexts for one kind of lookup.
// Beginning a new lookup cancels the previous one and invalidates its token,
// so only the most recently issued result is ever applied.
type Lookup struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (l *Lookup) Begin(parent context.Context, timeout time.Duration) (context.Context, Token) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithTimeout(parent, timeout)
	l.cancel = cancel
	return ctx, Token(l.gen)
}

// Valid reports whether t is still the latest token.
func (l *Lookup) Valid(t Token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(t) == l.gen
}

// Done releases the context of t. The token stays valid.
func (l *Lookup) Done(t Token) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if uint64(t) == l.gen && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Cancel aborts the in-flight lookup, if any, and invalidates its token.
func (l *Lookup) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
