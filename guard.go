package mockhttp

import "sync"

// Guard is the RAII-style token returned by Server.RegisterScoped. Its
// Release detaches the scoped mock and verifies its expectation. Guard
// must be bound to a variable and released explicitly (typically via
// `defer guard.Release(t)`); Go has no destructors, so a discarded Guard
// is a silent usage bug surfaced at the next Server.Reset via a logged
// warning.
type Guard struct {
	server *Server
	scope  string
	mock   *Mock

	once     sync.Once
	released bool
}

// Release detaches the guard's mock from the server's mock set and
// verifies its expectation in isolation.
//
// Release must be called directly from a defer statement (e.g.
// `defer guard.Release(t)`), not wrapped in another function, because it
// uses recover() to detect whether the calling goroutine is already
// unwinding due to another failure. When it is, the verification failure
// is reported via t.Errorf (so it doesn't go unnoticed) but the original
// panic is re-raised unmodified, so it is never masked. When the
// goroutine is not unwinding, a verification failure is raised as a
// fatal failure via t.Fatalf, matching Server.Verify's default policy.
func (g *Guard) Release(t TestingT) {
	if t != nil {
		t.Helper()
	}
	rec := recover()

	report := g.release()

	if report.OK() {
		if rec != nil {
			panic(rec)
		}
		return
	}

	if rec != nil {
		if t != nil {
			t.Errorf("%s", report.Error())
		}
		panic(rec)
	}

	if t != nil {
		t.Fatalf("%s", report.Error())
	}
}

// release performs the detach-and-verify without any TestingT reporting,
// for callers that want to inspect the VerificationReport themselves.
func (g *Guard) release() *VerificationReport {
	var report *VerificationReport
	g.once.Do(func() {
		g.server.detachScope(g.scope)
		report = verifyMocks([]*Mock{g.mock}, g.server.led, nil, nil, false)
		g.released = true
	})
	return report
}

// Mock returns the guard's scoped mock, for inspecting its hit count
// before release.
func (g *Guard) Mock() *Mock { return g.mock }
