package embedding

import (
	"context"
	"errors"
	"sync"
)

// Sentinel errors for consistent error handling.
var (
	ErrServiceUnavailable = errors.New("embedding service unavailable")
	ErrEmptyText          = errors.New("empty text")
	ErrNilConstructor     = errors.New("nil embedder constructor")
)

// Embedder generates a dense vector embedding from text.
// Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, text string) ([]float32, error)

// Embed calls f.
func (f EmbedderFunc) Embed(ctx context.Context, text string) ([]float32, error) {
	return f(ctx, text)
}

// Lazy defers construction of an Embedder until first use.
// Construction runs at most once per process; all callers share the result,
// including a construction error. Steady-state calls take no lock.
type Lazy struct {
	once  sync.Once
	build func() (Embedder, error)

	embedder Embedder
	err      error
}

// NewLazy wraps a constructor in a once-guarded handle.
func NewLazy(build func() (Embedder, error)) *Lazy {
	return &Lazy{build: build}
}

// Embed initializes the underlying Embedder on first call and delegates.
func (l *Lazy) Embed(ctx context.Context, text string) ([]float32, error) {
	l.once.Do(func() {
		if l.build == nil {
			l.err = ErrNilConstructor
			return
		}
		l.embedder, l.err = l.build()
		if l.err == nil && l.embedder == nil {
			l.err = ErrNilConstructor
		}
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.embedder.Embed(ctx, text)
}
