package matchers

import (
	"bytes"
	"reflect"

	"github.com/tidwall/gjson"

	"github.com/oleksiy-marchenko/mockhttp"
)

// BodyBytes matches requests whose raw body is byte-identical to want.
func BodyBytes(want []byte) mockhttp.Matcher {
	want = append([]byte(nil), want...)
	return mockhttp.NewMatcher(
		"body=<bytes>",
		func(r *mockhttp.Request) bool {
			return bytes.Equal(r.Body, want)
		},
	)
}

// BodyString matches requests whose raw body, interpreted as UTF-8 text,
// equals want exactly.
func BodyString(want string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		"body="+want,
		func(r *mockhttp.Request) bool {
			return string(r.Body) == want
		},
	)
}

// BodyJSONEquals matches requests whose body is JSON that is
// value-equal to want's JSON, independent of key order or insignificant
// whitespace. want must itself be valid JSON text.
func BodyJSONEquals(want string) mockhttp.Matcher {
	wantValue := gjson.Parse(want).Value()
	return mockhttp.NewMatcher(
		"body==json:"+want,
		func(r *mockhttp.Request) bool {
			if !gjson.ValidBytes(r.Body) {
				return false
			}
			got := gjson.ParseBytes(r.Body).Value()
			return reflect.DeepEqual(got, wantValue)
		},
	)
}

// BodyJSONPath matches requests whose body is JSON and whose value at
// the given gjson path equals want, compared as text.
func BodyJSONPath(path, want string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		"body.json["+path+"]="+want,
		func(r *mockhttp.Request) bool {
			if !gjson.ValidBytes(r.Body) {
				return false
			}
			return gjson.GetBytes(r.Body, path).String() == want
		},
	)
}
