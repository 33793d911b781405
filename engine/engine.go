// Package engine defines the collaborator interface between the
// mockhttp dispatch core and a concrete HTTP transport. The core treats
// the transport as an external engine: it hands the engine a Handler and
// a net.Listener, and the engine is responsible for all HTTP/1.1 or
// HTTP/2 parsing and socket I/O.
package engine

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Request is the engine's transport-level view of one received request.
// It mirrors the shape the mockhttp core needs (method, absolute URL,
// headers, body) without depending on the core package, so engines and
// the core can be compiled independently of each other.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// Response is the engine's transport-level view of a response to write.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Delay      time.Duration
}

// Handler answers one Request with a Response. It must be safe to call
// concurrently from multiple connections.
type Handler func(*Request) Response

// Engine is the collaborator interface the mockhttp core consumes for
// HTTP/1.1+ parsing and socket I/O. Implementations own accepting
// connections on the given listener and must respect ctx cancellation on
// Shutdown by aborting in-flight delays and refusing new connections.
type Engine interface {
	// Serve runs the accept loop on l, dispatching each request to h.
	// It blocks until Shutdown is called or an unrecoverable error
	// occurs, and must be run in its own goroutine by the caller.
	Serve(l net.Listener, h Handler) error

	// Shutdown stops the accept loop and cancels in-flight response
	// delays. Connections already writing a response are allowed to
	// finish or error at the socket.
	Shutdown(ctx context.Context) error
}
