package mockhttp

import (
	"fmt"
	"strings"
)

// TestingT is the minimal interface Server.Verify needs from a test
// handle. *testing.T satisfies it; so does any other framework's handle
// that exposes the same three methods, keeping verification
// test-framework-agnostic.
type TestingT interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Helper()
}

// Violation describes one mock whose observed hit count fell outside its
// configured expectation.
type Violation struct {
	MockName string
	MockID   uint64
	Observed uint64
	Expected Range
}

func (v Violation) String() string {
	name := v.MockName
	if name == "" {
		name = fmt.Sprintf("mock#%d", v.MockID)
	}
	return fmt.Sprintf("%s: expected %s hits, observed %d", name, v.Expected, v.Observed)
}

// VerificationReport aggregates every expectation violation found by one
// verification pass, plus a compact rendering of the request log (when
// recording is enabled) to help explain why requests did not match.
type VerificationReport struct {
	Violations  []Violation
	Diagnostics string
}

// OK reports whether the verification pass found no violations.
func (r *VerificationReport) OK() bool {
	return r == nil || len(r.Violations) == 0
}

// Error implements the error interface so a VerificationReport can be
// raised as a fatal test failure directly.
func (r *VerificationReport) Error() string {
	var b strings.Builder
	b.WriteString("mockhttp: expectation verification failed:\n")
	for _, v := range r.Violations {
		b.WriteString("  - ")
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	if r.Diagnostics != "" {
		b.WriteString(r.Diagnostics)
	}
	return b.String()
}

// verifyMocks checks each mock's hit count against its configured
// expectation (mocks with no expectation configured are skipped).
func verifyMocks(mocks []*Mock, led *ledger, allMocks []*Mock, log []Request, recording bool) *VerificationReport {
	var violations []Violation
	for _, m := range mocks {
		rng, ok := m.Expectation()
		if !ok {
			continue
		}
		observed := led.hitCount(m.id)
		if !rng.Contains(observed) {
			violations = append(violations, Violation{
				MockName: m.name,
				MockID:   m.id,
				Observed: observed,
				Expected: rng,
			})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	report := &VerificationReport{Violations: violations}
	if recording {
		report.Diagnostics = renderLog(allMocks, log)
	}
	return report
}

// renderLog produces a compact, human-scannable dump of the request log:
// one line per request with method, path, whether it matched, and — for
// unmatched requests — the closest-failing matcher per currently mounted
// mock, to help the user see why nothing matched.
func renderLog(mocks []*Mock, log []Request) string {
	if len(log) == 0 {
		return "request log: (empty)\n"
	}
	var b strings.Builder
	b.WriteString("request log:\n")
	for i := range log {
		req := &log[i]
		fmt.Fprintf(&b, "  %d. %s %s matched=%v", i+1, req.Method, req.Path(), req.Matched)
		if !req.Matched && len(mocks) > 0 {
			b.WriteString(" closest=[")
			for j, m := range mocks {
				if j > 0 {
					b.WriteString("; ")
				}
				name := m.name
				if name == "" {
					name = fmt.Sprintf("mock#%d", m.id)
				}
				if fail := m.firstFailingMatcher(req); fail != "" {
					fmt.Fprintf(&b, "%s failed on %s", name, fail)
				} else {
					fmt.Fprintf(&b, "%s: matchers all true but ineligible (budget exhausted)", name)
				}
			}
			b.WriteString("]")
		}
		b.WriteString("\n")
	}
	return b.String()
}
