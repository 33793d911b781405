package engine

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

// FastHTTP is the default Engine implementation, adapting the core's
// Handler to a *fasthttp.Server. It is the engine mockhttp.Server
// instances use by default.
type FastHTTP struct {
	mu           sync.Mutex
	srv          *fasthttp.Server
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewFastHTTP constructs an idle FastHTTP engine.
func NewFastHTTP() *FastHTTP {
	return &FastHTTP{shutdown: make(chan struct{})}
}

// Serve implements Engine.
func (f *FastHTTP) Serve(l net.Listener, h Handler) error {
	f.mu.Lock()
	f.srv = &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			req := &Request{
				Method: string(ctx.Method()),
				URL:    requestURL(ctx),
				Header: copyFastHTTPRequestHeader(ctx),
				Body:   append([]byte(nil), ctx.PostBody()...),
			}

			resp := h(req)

			if resp.Delay > 0 {
				select {
				case <-time.After(resp.Delay):
				case <-f.shutdown:
					return
				}
			}

			for key, values := range resp.Header {
				for _, v := range values {
					ctx.Response.Header.Add(key, v)
				}
			}
			ctx.SetStatusCode(resp.StatusCode)
			if resp.Body != nil {
				ctx.SetBody(resp.Body)
			}
		},
		Name:                  "mockhttp",
		DisableKeepalive:      false,
		NoDefaultContentType:  true,
		NoDefaultServerHeader: true,
	}
	srv := f.srv
	f.mu.Unlock()

	return srv.Serve(l)
}

// Shutdown implements Engine.
func (f *FastHTTP) Shutdown(ctx context.Context) error {
	f.shutdownOnce.Do(func() { close(f.shutdown) })

	f.mu.Lock()
	srv := f.srv
	f.mu.Unlock()
	if srv == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func requestURL(ctx *fasthttp.RequestCtx) *url.URL {
	u, err := url.Parse(string(ctx.RequestURI()))
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	u.Scheme = "http"
	u.Host = string(ctx.Host())
	return u
}

func copyFastHTTPRequestHeader(ctx *fasthttp.RequestCtx) http.Header {
	h := make(http.Header)
	ctx.Request.Header.VisitAll(func(key, value []byte) {
		h.Add(string(key), string(value))
	})
	return h
}
