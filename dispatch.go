package mockhttp

import "log/slog"

// dispatch selects a winning mock for r out of the given ordered snapshot
// of mounted mocks, applies its effects (budget consumption, hit count,
// request log), and returns the response to send. It is a pure function
// over its inputs plus the ledger's atomic counters; it never takes a
// write lock, so the caller may invoke it while holding only a read lock
// on the mock set.
//
// Selection: partition eligible mocks (positive-or-unlimited budget, full
// matcher list true, evaluated in declaration order with short-circuit),
// then pick the lowest-numbered priority; ties break LIFO (the
// most-recently-mounted mock wins).
func dispatch(mocks []*Mock, r *Request, led *ledger, log *slog.Logger) ResponseSpec {
	var winner *Mock
	for _, m := range mocks {
		if !m.eligible() {
			continue
		}
		if !m.matches(r) {
			continue
		}
		if winner == nil {
			winner = m
			continue
		}
		if m.priority < winner.priority {
			winner = m
			continue
		}
		if m.priority == winner.priority && m.mountedSeq > winner.mountedSeq {
			winner = m
		}
	}

	if winner == nil {
		led.recordUnmatched()
		r.Matched = false
		led.recordRequest(r)
		return notFoundResponse()
	}

	if !winner.tryConsumeBudget() {
		// A concurrent dispatch spent the winner's last budget unit after
		// the eligibility check above; it is now ineligible, so select again.
		return dispatch(mocks, r, led, log)
	}
	led.recordHit(winner.id)
	r.Matched = true
	r.MockName = winner.name

	resp := invokeResponder(winner, r, log)
	led.recordRequest(r)
	return resp
}

// invokeResponder calls the winning mock's responder, recovering from a
// panic mid-response: the panic is logged, the request is still recorded
// as matched (a mock did win dispatch), flagged PanicRecovered, and a
// synthesized 500 that closes the connection is returned in place of
// whatever the responder would have produced.
func invokeResponder(m *Mock, r *Request, log *slog.Logger) (resp ResponseSpec) {
	defer func() {
		if rec := recover(); rec != nil {
			r.PanicRecovered = true
			if log != nil {
				log.Error("mockhttp: responder panicked",
					"mock", m.name,
					"method", r.Method,
					"path", r.Path(),
					"panic", rec,
				)
			}
			resp = panicResponse()
		}
	}()
	return m.responder.Respond(r)
}
