// Package matchers provides the built-in request matchers used to build
// Mock definitions: HTTP method, path (exact and regex), headers, query
// parameters, request bodies (raw, string, JSON equality, JSON subset,
// JSON schema), basic/bearer authentication, and the any-of combinator.
package matchers

import (
	"strings"

	"github.com/oleksiy-marchenko/mockhttp"
)

// Method matches requests whose HTTP method equals method, case-insensitively.
func Method(method string) mockhttp.Matcher {
	want := strings.ToUpper(method)
	return mockhttp.NewMatcher(
		"method="+want,
		func(r *mockhttp.Request) bool {
			return strings.EqualFold(r.Method, want)
		},
	)
}
