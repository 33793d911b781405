package matchers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oleksiy-marchenko/mockhttp"
)

// HeaderExists matches requests that carry at least one value for the
// given header name.
func HeaderExists(name string) mockhttp.Matcher {
	key := http.CanonicalHeaderKey(name)
	return mockhttp.NewMatcher(
		fmt.Sprintf("header[%s] exists", name),
		func(r *mockhttp.Request) bool {
			_, ok := r.Header[key]
			return ok
		},
	)
}

// HeaderEquals matches requests that carry exactly the given set of values
// for name, order-insensitive. A request with two values for a header
// ("a", "b") does not match a HeaderEquals configured with only "a" — the
// observed value set must equal want exactly, not merely contain it. Pass
// a single value for the common single-valued case.
func HeaderEquals(name string, want ...string) mockhttp.Matcher {
	wantCount := make(map[string]int, len(want))
	for _, v := range want {
		wantCount[v]++
	}
	return mockhttp.NewMatcher(
		fmt.Sprintf("header[%s]=%s", name, strings.Join(want, ",")),
		func(r *mockhttp.Request) bool {
			got := r.Header.Values(name)
			if len(got) != len(want) {
				return false
			}
			gotCount := make(map[string]int, len(got))
			for _, v := range got {
				gotCount[v]++
			}
			if len(gotCount) != len(wantCount) {
				return false
			}
			for v, n := range wantCount {
				if gotCount[v] != n {
					return false
				}
			}
			return true
		},
	)
}
