package matchers

import (
	"encoding/base64"
	"strings"

	"github.com/oleksiy-marchenko/mockhttp"
)

// BasicAuth matches requests carrying HTTP Basic credentials equal to
// username/password. It parses the Authorization header itself: a
// case-sensitive "Basic " prefix followed by standard base64 of
// "user:password".
func BasicAuth(username, password string) mockhttp.Matcher {
	return mockhttp.NewMatcher(
		"basic-auth user="+username,
		func(r *mockhttp.Request) bool {
			gotUser, gotPass, ok := parseBasicAuth(r.Header.Get("Authorization"))
			return ok && gotUser == username && gotPass == password
		},
	)
}

// BearerAuth matches requests carrying an Authorization: Bearer <token>
// header with the given token.
func BearerAuth(token string) mockhttp.Matcher {
	want := "Bearer " + token
	return mockhttp.NewMatcher(
		"bearer-auth",
		func(r *mockhttp.Request) bool {
			return r.Header.Get("Authorization") == want
		},
	)
}

func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	creds := string(decoded)
	sep := strings.IndexByte(creds, ':')
	if sep < 0 {
		return "", "", false
	}
	return creds[:sep], creds[sep+1:], true
}
