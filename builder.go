package mockhttp

import "sync/atomic"

// MockBuilder accumulates matchers, a responder, and optional
// configuration for a Mock. It is created with NewMock and finalized with
// Build, Mount, or MountScoped.
type MockBuilder struct {
	matchers  []Matcher
	responder Responder
	priority  uint8
	name      string
	expect    *Range
	upToN     *uint64
	err       *ConfigError
}

const defaultPriority uint8 = 5

// NewMock starts a new MockBuilder.
func NewMock() *MockBuilder {
	return &MockBuilder{priority: defaultPriority}
}

// Given adds the first (or another) matcher to the builder's conjunctive
// matcher list.
func (b *MockBuilder) Given(m Matcher) *MockBuilder {
	b.matchers = append(b.matchers, m)
	return b
}

// And adds another matcher to the builder's conjunctive matcher list. It
// is an alias for Given kept for readability in matcher chains.
func (b *MockBuilder) And(m Matcher) *MockBuilder {
	return b.Given(m)
}

// RespondWith sets the builder's responder. Calling it more than once
// replaces the previous responder.
func (b *MockBuilder) RespondWith(r Responder) *MockBuilder {
	b.responder = r
	return b
}

// Expect sets the mock's expected invocation count range.
func (b *MockBuilder) Expect(rng Range) *MockBuilder {
	r := rng
	b.expect = &r
	return b
}

// UpToNTimes caps the mock's remaining-hits budget at n. A budget of zero
// makes the mock immediately ineligible for matching.
func (b *MockBuilder) UpToNTimes(n uint64) *MockBuilder {
	b.upToN = &n
	return b
}

// WithPriority sets the mock's priority in [1, 255]; among matching mocks
// the lowest number wins.
func (b *MockBuilder) WithPriority(p uint8) *MockBuilder {
	if p == 0 {
		b.err = configErrorf("priority must be in [1, 255], got 0")
		return b
	}
	b.priority = p
	return b
}

// Named attaches a diagnostic label to the mock.
func (b *MockBuilder) Named(name string) *MockBuilder {
	b.name = name
	return b
}

// Build validates the builder's configuration and returns the finished,
// not-yet-mounted Mock. Configuration errors surface here, synchronously,
// never at match time.
func (b *MockBuilder) Build() (*Mock, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.matchers) == 0 {
		return nil, configErrorf("mock requires at least one matcher (call Given)")
	}
	if b.responder == nil {
		return nil, configErrorf("mock requires a responder (call RespondWith)")
	}
	if b.expect != nil && !b.expect.HiUnbounded && b.expect.Lo > b.expect.Hi {
		return nil, configErrorf("expected range lo (%d) must be <= hi (%d)", b.expect.Lo, b.expect.Hi)
	}

	m := &Mock{
		name:      b.name,
		matchers:  append([]Matcher(nil), b.matchers...),
		responder: b.responder,
		priority:  b.priority,
		expect:    b.expect,
	}
	if b.upToN != nil {
		remaining := &atomic.Int64{}
		remaining.Store(int64(*b.upToN))
		m.remaining = remaining
	}
	return m, nil
}

// Mount validates and mounts the mock globally on server.
func (b *MockBuilder) Mount(server *Server) (*Mock, error) {
	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	server.Register(m)
	return m, nil
}

// MountScoped validates and mounts the mock scoped to the returned Guard.
func (b *MockBuilder) MountScoped(server *Server) (*Guard, error) {
	m, err := b.Build()
	if err != nil {
		return nil, err
	}
	return server.RegisterScoped(m), nil
}
