package matchers

import (
	"strings"

	"github.com/oleksiy-marchenko/mockhttp"
)

// AnyOf matches a request when at least one of the given matchers
// matches, evaluated in order with short-circuit on the first success.
func AnyOf(ms ...mockhttp.Matcher) mockhttp.Matcher {
	descs := make([]string, len(ms))
	for i, m := range ms {
		descs[i] = m.Describe()
	}
	desc := "ANY(" + strings.Join(descs, ", ") + ")"

	return mockhttp.NewMatcher(desc, func(r *mockhttp.Request) bool {
		for _, m := range ms {
			if m.Matches(r) {
				return true
			}
		}
		return false
	})
}

// Not inverts m's result.
func Not(m mockhttp.Matcher) mockhttp.Matcher {
	return mockhttp.NewMatcher("NOT("+m.Describe()+")", func(r *mockhttp.Request) bool {
		return !m.Matches(r)
	})
}
