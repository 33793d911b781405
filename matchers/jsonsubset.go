package matchers

import (
	"fmt"

	"github.com/andrey-viktorov/jsonfilter-go/serde"

	"github.com/oleksiy-marchenko/mockhttp"
)

var jsonFilterParser = serde.DefaultParser()

// BodyJSONSubset matches requests whose JSON body satisfies filter, a
// jsonFilter-go filter expression (the same shape accepted under a
// "jsonFilter" root key). It reports an error if filter does not compile
// into a valid operator, so the caller can surface it as a configuration
// mistake rather than a silent non-match.
func BodyJSONSubset(filter map[string]interface{}) (mockhttp.Matcher, error) {
	root := map[string]interface{}{"jsonFilter": filter}
	operator, err := jsonFilterParser.FromMap(root)
	if err != nil {
		return nil, fmt.Errorf("matchers: invalid JSON filter: %w", err)
	}
	if validation := operator.Validate(); !validation.Valid {
		return nil, fmt.Errorf("matchers: invalid JSON filter: %s", validation.CauseDescription)
	}

	return mockhttp.NewMatcher(
		"body matches json filter",
		func(r *mockhttp.Request) bool {
			result := operator.Evaluate(r.Body)
			return result.Match
		},
	), nil
}
