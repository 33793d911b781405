package matchers

import (
	"fmt"

	"github.com/oleksiy-marchenko/mockhttp"
)

// QueryParam matches requests whose URL query string contains key with a
// value exactly equal to want, among possibly multiple values for key.
func QueryParam(key, want string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		fmt.Sprintf("query[%s]=%s", key, want),
		func(r *mockhttp.Request) bool {
			if r.URL == nil {
				return false
			}
			for _, v := range r.URL.Query()[key] {
				if v == want {
					return true
				}
			}
			return false
		},
	)
}

// QueryParamExists matches requests whose URL query string contains key,
// regardless of value.
func QueryParamExists(key string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		fmt.Sprintf("query[%s] exists", key),
		func(r *mockhttp.Request) bool {
			if r.URL == nil {
				return false
			}
			_, ok := r.URL.Query()[key]
			return ok
		},
	)
}
