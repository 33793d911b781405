package mockhttp

import (
	"net/http"
	"time"
)

// ResponseSpec describes a canned response produced by a Responder. It is
// produced afresh per dispatch and is cheap to copy by value.
type ResponseSpec struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Delay      time.Duration
}

// Clone returns an independent copy of the response spec, so a single
// Responder can safely hand out the same spec to concurrent dispatches.
func (r ResponseSpec) Clone() ResponseSpec {
	cp := r
	if r.Header != nil {
		cp.Header = r.Header.Clone()
	}
	if r.Body != nil {
		cp.Body = append([]byte(nil), r.Body...)
	}
	return cp
}

// notFoundResponse is the synthesized response for unmatched requests.
func notFoundResponse() ResponseSpec {
	return ResponseSpec{StatusCode: http.StatusNotFound, Body: nil}
}

// panicResponse is the synthesized response when a responder panics
// mid-dispatch. Its "Connection: close" header makes the engine close the
// connection after writing it.
func panicResponse() ResponseSpec {
	return ResponseSpec{
		StatusCode: http.StatusInternalServerError,
		Header:     http.Header{"Connection": []string{"close"}},
		Body:       nil,
	}
}
