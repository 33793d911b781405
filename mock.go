package mockhttp

import (
	"math"
	"sync/atomic"
)

// Range is an inclusive expected-hit-count range [Lo, Hi]. Hi may be
// unbounded (open upper bound); Lo may be zero.
type Range struct {
	Lo          uint64
	Hi          uint64
	HiUnbounded bool
}

// Exactly returns the range [n, n].
func Exactly(n uint64) Range { return Range{Lo: n, Hi: n} }

// Between returns the inclusive range [lo, hi].
func Between(lo, hi uint64) Range { return Range{Lo: lo, Hi: hi} }

// AtLeast returns the open-ended range [lo, +Inf).
func AtLeast(lo uint64) Range { return Range{Lo: lo, HiUnbounded: true} }

// AtMost returns the range [0, hi].
func AtMost(hi uint64) Range { return Range{Lo: 0, Hi: hi} }

// Contains reports whether count falls within the range.
func (rg Range) Contains(count uint64) bool {
	if count < rg.Lo {
		return false
	}
	if rg.HiUnbounded {
		return true
	}
	return count <= rg.Hi
}

func (rg Range) String() string {
	if rg.HiUnbounded {
		return formatRange(rg.Lo, "∞")
	}
	return formatRange(rg.Lo, formatUint(rg.Hi))
}

func formatRange(lo uint64, hi string) string {
	return "[" + formatUint(lo) + ", " + hi + "]"
}

func formatUint(n uint64) string {
	if n == math.MaxUint64 {
		return "∞"
	}
	// small, allocation-light itoa for uint64
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Mock pairs a matcher set with a responder, plus optional expectation,
// priority, and hit budget. Mocks are constructed via MockBuilder and
// become live only once mounted on a Server.
type Mock struct {
	id         uint64
	name       string
	matchers   []Matcher
	responder  Responder
	priority   uint8
	expect     *Range
	remaining  *atomic.Int64 // nil = unlimited
	mountedSeq uint64        // assigned at mount time; used for LIFO tie-break
}

// ID returns the mock's identity, assigned at mount time. Zero before the
// mock is mounted.
func (m *Mock) ID() uint64 { return m.id }

// Name returns the mock's diagnostic label, or "" if none was given.
func (m *Mock) Name() string { return m.name }

// Priority returns the mock's priority; lower numbers win over higher
// numbers, and equal numbers go to the most recently mounted mock.
func (m *Mock) Priority() uint8 { return m.priority }

// Expectation returns the mock's configured hit-count range, and whether
// one was configured at all.
func (m *Mock) Expectation() (Range, bool) {
	if m.expect == nil {
		return Range{}, false
	}
	return *m.expect, true
}

func (m *Mock) matches(r *Request) bool {
	for _, matcher := range m.matchers {
		if !matcher.Matches(r) {
			return false
		}
	}
	return true
}

// firstFailingMatcher returns the Describe() of the first matcher in
// declaration order that fails against r, or "" if all match (or there
// are no matchers).
func (m *Mock) firstFailingMatcher(r *Request) string {
	for _, matcher := range m.matchers {
		if !matcher.Matches(r) {
			return matcher.Describe()
		}
	}
	return ""
}

func (m *Mock) eligible() bool {
	return m.remaining == nil || m.remaining.Load() > 0
}

// tryConsumeBudget atomically decrements the mock's remaining-hits budget
// if it has one and it is still positive. It returns true when the mock
// may be dispatched to (unlimited mocks always return true).
func (m *Mock) tryConsumeBudget() bool {
	if m.remaining == nil {
		return true
	}
	for {
		cur := m.remaining.Load()
		if cur <= 0 {
			return false
		}
		if m.remaining.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// RemainingBudget reports the mock's remaining-hits budget and whether a
// budget was configured at all.
func (m *Mock) RemainingBudget() (int64, bool) {
	if m.remaining == nil {
		return 0, false
	}
	return m.remaining.Load(), true
}
