package engine

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// NetHTTP is a dependency-free Engine implementation built on the
// standard library's net/http.Server. It is offered as an alternate
// engine for callers who cannot take the fasthttp dependency; FastHTTP
// remains the default.
type NetHTTP struct {
	mu           sync.Mutex
	srv          *http.Server
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewNetHTTP constructs an idle NetHTTP engine.
func NewNetHTTP() *NetHTTP {
	return &NetHTTP{shutdown: make(chan struct{})}
}

// Serve implements Engine.
func (n *NetHTTP) Serve(l net.Listener, h Handler) error {
	n.mu.Lock()
	n.srv = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			r.Body.Close()

			u := *r.URL
			u.Scheme = "http"
			u.Host = r.Host

			req := &Request{
				Method: r.Method,
				URL:    &u,
				Header: r.Header.Clone(),
				Body:   body,
			}

			resp := h(req)

			if resp.Delay > 0 {
				select {
				case <-time.After(resp.Delay):
				case <-n.shutdown:
					return
				}
			}

			for key, values := range resp.Header {
				for _, v := range values {
					w.Header().Add(key, v)
				}
			}
			w.WriteHeader(resp.StatusCode)
			if resp.Body != nil {
				_, _ = w.Write(resp.Body)
			}
		}),
	}
	srv := n.srv
	n.mu.Unlock()

	err := srv.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown implements Engine.
func (n *NetHTTP) Shutdown(ctx context.Context) error {
	n.shutdownOnce.Do(func() { close(n.shutdown) })

	n.mu.Lock()
	srv := n.srv
	n.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
