package mockhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSet_MountAssignsIDAndSequence(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	m1 := &Mock{}
	m2 := &Mock{}

	set.mount(m1)
	set.mount(m2)

	assert.NotZero(t, m1.id)
	assert.NotZero(t, m2.id)
	assert.NotEqual(t, m1.id, m2.id)
	assert.Less(t, m1.mountedSeq, m2.mountedSeq)
}

func TestMockSet_SnapshotPreservesMountOrder(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	m1 := &Mock{name: "first"}
	m2 := &Mock{name: "second"}
	set.mount(m1)
	set.mount(m2)

	snap := set.snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "first", snap[0].name)
	assert.Equal(t, "second", snap[1].name)
}

func TestMockSet_ReleaseScopeRemovesOnlyMatchingEntries(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	global := &Mock{name: "global"}
	scopedA := &Mock{name: "scoped-a"}
	scopedB := &Mock{name: "scoped-b"}

	set.mount(global)
	set.mountScoped(scopedA, "scope-a")
	set.mountScoped(scopedB, "scope-b")

	removed := set.releaseScope("scope-a")
	require.Len(t, removed, 1)
	assert.Equal(t, "scoped-a", removed[0].name)

	snap := set.snapshot()
	require.Len(t, snap, 2)
	assert.False(t, set.hasScope("scope-a"))
	assert.True(t, set.hasScope("scope-b"))
}

func TestMockSet_GlobalMocksExcludesScoped(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	set.mount(&Mock{name: "global"})
	set.mountScoped(&Mock{name: "scoped"}, "scope-a")

	global := set.globalMocks()
	require.Len(t, global, 1)
	assert.Equal(t, "global", global[0].name)
}

func TestMockSet_ResetClearsEverything(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	set.mount(&Mock{})
	set.mountScoped(&Mock{}, "scope-a")

	set.reset()

	assert.Empty(t, set.snapshot())
	assert.False(t, set.hasScope("scope-a"))
}

func TestMockSet_ScopesReturnsDistinctLiveScopes(t *testing.T) {
	t.Parallel()

	set := newMockSet()
	set.mountScoped(&Mock{}, "scope-a")
	set.mountScoped(&Mock{}, "scope-a")
	set.mountScoped(&Mock{}, "scope-b")
	set.mount(&Mock{})

	scopes := set.scopes()
	assert.ElementsMatch(t, []string{"scope-a", "scope-b"}, scopes)
}
