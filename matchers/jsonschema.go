package matchers

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/oleksiy-marchenko/mockhttp"
)

// BodyJSONSchema matches requests whose JSON body validates against the
// given JSON Schema document. It reports an error if schema itself does
// not parse as a schema.
func BodyJSONSchema(schema string) (mockhttp.Matcher, error) {
	loader := gojsonschema.NewStringLoader(schema)
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("matchers: invalid JSON schema: %w", err)
	}

	return mockhttp.NewMatcher(
		"body matches json schema",
		func(r *mockhttp.Request) bool {
			result, err := compiled.Validate(gojsonschema.NewBytesLoader(r.Body))
			if err != nil {
				return false
			}
			return result.Valid()
		},
	), nil
}
