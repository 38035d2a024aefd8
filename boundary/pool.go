package boundary

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool is a fixed set of inference sessions shared by concurrent callers.
// Sessions are scoped to a Do callback and never escape the pool, so callers
// cannot leak or double-release one.
type Pool struct {
	sessions chan *Session
	size     int

	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool of size ONNX sessions over one model file.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}

	pool := &Pool{
		sessions: make(chan *Session, size),
		size:     size,
	}

	for i := 0; i < size; i++ {
		session, err := NewSession(modelPath)
		if err != nil {
			_ = pool.Close() // best-effort cleanup; the session error wins
			return nil, fmt.Errorf("creating session %d: %w", i, err)
		}
		pool.sessions <- session
	}
	return pool, nil
}

// Do checks out a session, runs fn with it and returns the session to the
// pool when fn finishes. It blocks until a session is free or ctx is done,
// and returns ErrPoolClosed once the pool has shut down.
func (p *Pool) Do(ctx context.Context, fn func(*Session) error) error {
	select {
	case session, ok := <-p.sessions:
		if !ok {
			return ErrPoolClosed
		}
		defer p.release(session)
		return fn(session)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release returns a session to the pool, or closes it if the pool shut down
// while the session was checked out.
func (p *Pool) release(s *Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = s.Close()
		return
	}
	select {
	case p.sessions <- s:
	default:
		_ = s.Close()
	}
}

// Close shuts the pool down and closes every idle session. Sessions checked
// out by an in-flight Do are closed as their callbacks finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sessions)
	p.mu.Unlock()

	var errs []error
	for session := range p.sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool size.
func (p *Pool) Size() int {
	return p.size
}
