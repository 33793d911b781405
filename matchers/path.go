package matchers

import (
	"fmt"
	"regexp"

	"github.com/oleksiy-marchenko/mockhttp"
)

// Path matches requests whose URL path equals path exactly.
func Path(path string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		"path="+path,
		func(r *mockhttp.Request) bool {
			return r.Path() == path
		},
	)
}

// PathRegexp matches requests whose URL path matches the given regular
// expression. It returns an error if pattern does not compile, rather
// than panicking, consistent with this package's other fallible matcher
// constructors (BodyJSONSubset, BodyJSONSchema).
func PathRegexp(pattern string) (mockhttp.Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("matchers: compile path regexp: %w", err)
	}
	return mockhttp.NewMatcher(
		"path~="+pattern,
		func(r *mockhttp.Request) bool {
			return re.MatchString(r.Path())
		},
	), nil
}
