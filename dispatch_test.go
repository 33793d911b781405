package mockhttp

import (
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(method, path string) *Request {
	return &Request{
		Method: method,
		URL:    &url.URL{Path: path},
		Header: http.Header{},
	}
}

func mustMock(t *testing.T, name string, priority uint8, budget *uint64, matches bool) *Mock {
	t.Helper()
	m := &Mock{
		name:     name,
		priority: priority,
		matchers: []Matcher{NewMatcher("always", func(*Request) bool { return matches })},
		responder: ResponderFunc(func(r *Request) ResponseSpec {
			return ResponseSpec{StatusCode: http.StatusOK, Body: []byte(name)}
		}),
	}
	if budget != nil {
		remaining := &atomic.Int64{}
		remaining.Store(int64(*budget))
		m.remaining = remaining
	}
	return m
}

func TestDispatch_NoMatchRecordsUnmatchedAndReturns404(t *testing.T) {
	t.Parallel()

	led := newLedger(true)
	req := newTestRequest(http.MethodGet, "/missing")

	resp := dispatch(nil, req, led, nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, req.Matched)
}

func TestDispatch_LowestPriorityNumberWins(t *testing.T) {
	t.Parallel()

	led := newLedger(true)
	low := mustMock(t, "priority-1", 1, nil, true)
	high := mustMock(t, "priority-9", 9, nil, true)
	led.track(low.id)
	led.track(high.id)

	req := newTestRequest(http.MethodGet, "/x")
	resp := dispatch([]*Mock{high, low}, req, led, nil)

	assert.Equal(t, "priority-1", req.MockName)
	assert.Equal(t, []byte("priority-1"), resp.Body)
}

func TestDispatch_TiesBreakToMostRecentlyMounted(t *testing.T) {
	t.Parallel()

	led := newLedger(true)
	older := mustMock(t, "older", 5, nil, true)
	older.mountedSeq = 1
	newer := mustMock(t, "newer", 5, nil, true)
	newer.mountedSeq = 2
	led.track(older.id)
	led.track(newer.id)

	req := newTestRequest(http.MethodGet, "/x")
	resp := dispatch([]*Mock{older, newer}, req, led, nil)

	assert.Equal(t, "newer", req.MockName)
	assert.Equal(t, []byte("newer"), resp.Body)
}

func TestDispatch_ExhaustedBudgetMakesMockIneligible(t *testing.T) {
	t.Parallel()

	led := newLedger(true)
	zero := uint64(0)
	exhausted := mustMock(t, "exhausted", 1, &zero, true)
	fallback := mustMock(t, "fallback", 9, nil, true)
	led.track(exhausted.id)
	led.track(fallback.id)

	req := newTestRequest(http.MethodGet, "/x")
	resp := dispatch([]*Mock{exhausted, fallback}, req, led, nil)

	assert.Equal(t, "fallback", req.MockName)
	assert.Equal(t, []byte("fallback"), resp.Body)
}

func TestDispatch_ConsumesBudgetExactlyOncePerHit(t *testing.T) {
	t.Parallel()

	led := newLedger(true)
	two := uint64(2)
	m := mustMock(t, "limited", 1, &two, true)
	led.track(m.id)

	for i := 0; i < 2; i++ {
		resp := dispatch([]*Mock{m}, newTestRequest(http.MethodGet, "/x"), led, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := dispatch([]*Mock{m}, newTestRequest(http.MethodGet, "/x"), led, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, uint64(2), led.hitCount(m.id))
}

func TestInvokeResponder_RecoversPanicAndFlagsRequest(t *testing.T) {
	t.Parallel()

	m := &Mock{
		name: "panicking",
		responder: ResponderFunc(func(r *Request) ResponseSpec {
			panic("boom")
		}),
	}
	req := newTestRequest(http.MethodGet, "/x")

	resp := invokeResponder(m, req, nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.True(t, req.PanicRecovered)
}
