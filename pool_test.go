package mockhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_BorrowStartsFreshServerWhenIdleEmpty(t *testing.T) {
	t.Parallel()

	p := NewPool()
	t.Cleanup(func() { _ = p.Close() })

	s, err := p.Borrow()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 1, p.Live())
}

func TestPool_ReturnReusesServerFromIdleSet(t *testing.T) {
	t.Parallel()

	p := NewPool()
	t.Cleanup(func() { _ = p.Close() })

	s1, err := p.Borrow()
	require.NoError(t, err)
	addr := s1.Address()
	p.Return(s1)

	s2, err := p.Borrow()
	require.NoError(t, err)
	assert.Equal(t, addr, s2.Address(), "the same warm server is reused")
	assert.Equal(t, 1, p.Live())
}

func TestPool_ReturnBeyondIdleCapClosesServer(t *testing.T) {
	t.Parallel()

	p := NewPool(WithIdleCap(1))
	t.Cleanup(func() { _ = p.Close() })

	s1, err := p.Borrow()
	require.NoError(t, err)
	s2, err := p.Borrow()
	require.NoError(t, err)

	p.Return(s1)
	p.Return(s2)

	assert.Equal(t, 1, p.Live(), "only idleCap servers are kept warm")
}

func TestPool_ReturnResetsServerState(t *testing.T) {
	t.Parallel()

	p := NewPool()
	t.Cleanup(func() { _ = p.Close() })

	s, err := p.Borrow()
	require.NoError(t, err)

	m, err := NewMock().
		Given(NewMatcher("always", func(*Request) bool { return true })).
		RespondWith(RespondWith(ResponseSpec{})).
		Build()
	require.NoError(t, err)
	s.Register(m)

	p.Return(s)

	reused, err := p.Borrow()
	require.NoError(t, err)
	assert.Empty(t, reused.mocks.snapshot(), "mocks from the previous borrower must not leak")
}
