package mockhttp

import (
	"sync"
)

// Pool maintains a bounded set of warm Server instances so repeated
// tests don't each pay listener-bind and engine-startup cost. Borrow
// checks out a Server (starting a fresh one if the pool is empty and
// below its soft cap); Return resets it and gives it back to the pool,
// or closes it outright once the pool already holds its idle cap of
// servers.
type Pool struct {
	newOpts []ServerOption

	mu      sync.Mutex
	cond    *sync.Cond
	idle    []*Server
	idleCap int
	live    int
	softCap int
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

type poolConfig struct {
	idleCap int
	softCap int
	newOpts []ServerOption
}

// WithIdleCap bounds how many reset-and-returned servers the pool keeps
// warm. Servers returned beyond this cap are closed instead of kept. The
// default is 8.
func WithIdleCap(n int) PoolOption {
	return func(c *poolConfig) { c.idleCap = n }
}

// WithSoftCap bounds how many servers the pool will have live
// (checked-out plus idle) before Borrow blocks waiting for a Return. A
// value of 0 means unbounded. The default is 0.
func WithSoftCap(n int) PoolOption {
	return func(c *poolConfig) { c.softCap = n }
}

// WithPoolServerOptions sets the ServerOptions used whenever the pool
// starts a new Server to satisfy a Borrow.
func WithPoolServerOptions(opts ...ServerOption) PoolOption {
	return func(c *poolConfig) { c.newOpts = opts }
}

// NewPool constructs a Pool with no warm servers yet.
func NewPool(opts ...PoolOption) *Pool {
	cfg := &poolConfig{idleCap: 8}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &Pool{
		newOpts: cfg.newOpts,
		idleCap: cfg.idleCap,
		softCap: cfg.softCap,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Borrow returns a ready-to-use Server: a warm one from the idle set if
// available, otherwise a freshly started one. If the pool has a soft cap
// and is already at it, Borrow blocks until a Return or Close frees a
// slot. It is the caller's responsibility to pass the Server to Return
// when done with it. Closing a borrowed Server directly, without Return,
// leaves it counted in the pool's live count.
func (p *Pool) Borrow() (*Server, error) {
	p.mu.Lock()
	for p.softCap > 0 && p.live >= p.softCap && len(p.idle) == 0 {
		p.cond.Wait()
	}
	if n := len(p.idle); n > 0 {
		s := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return s, nil
	}
	p.live++
	p.mu.Unlock()

	s, err := StartServer(p.newOpts...)
	if err != nil {
		p.mu.Lock()
		p.live--
		p.mu.Unlock()
		p.cond.Signal()
		return nil, err
	}
	return s, nil
}

// Return resets s and returns it to the idle set for reuse, unless the
// pool's idle cap is already full, in which case s is closed and its
// listener released.
func (p *Pool) Return(s *Server) {
	s.Reset()

	p.mu.Lock()
	if len(p.idle) >= p.idleCap {
		p.mu.Unlock()
		_ = s.Close()
		p.mu.Lock()
		p.live--
		p.mu.Unlock()
		p.cond.Signal()
		return
	}
	p.idle = append(p.idle, s)
	p.mu.Unlock()
	p.cond.Signal()
}

// Close closes every idle server currently held by the pool. Servers
// still checked out via Borrow are unaffected; callers must Close them
// individually.
func (p *Pool) Close() error {
	p.mu.Lock()
	idle := p.idle
	p.idle = nil
	p.live -= len(idle)
	p.mu.Unlock()
	p.cond.Broadcast()

	var firstErr error
	for _, s := range idle {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Live reports the number of servers currently tracked by the pool,
// checked out or idle.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}
