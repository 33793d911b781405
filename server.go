package mockhttp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oleksiy-marchenko/mockhttp/engine"
)

// Server is a running in-process HTTP mock server. It owns a listener, a
// live mock set, the expectation ledger, and the HTTP engine serving
// requests against them. Create one with StartServer; release its
// listener and background goroutine with Close.
type Server struct {
	eng      engine.Engine
	listener net.Listener

	mocksMu sync.RWMutex
	mocks   *mockSet

	led *ledger
	log *slog.Logger

	serveErr   chan error
	wg         sync.WaitGroup
	dispatchWG sync.WaitGroup

	closeOnce sync.Once
}

// ServerOption configures a Server at construction time.
type ServerOption func(*serverConfig)

type serverConfig struct {
	listener         net.Listener
	eng              engine.Engine
	recordingEnabled bool
	log              *slog.Logger
}

// WithListener binds the server to a caller-supplied listener instead of
// an ephemeral one on 127.0.0.1. Useful for tests that need a stable
// port or a listener obtained from net.Listen on a specific interface.
func WithListener(l net.Listener) ServerOption {
	return func(c *serverConfig) { c.listener = l }
}

// WithEngine overrides the HTTP engine. The default is engine.FastHTTP.
func WithEngine(e engine.Engine) ServerOption {
	return func(c *serverConfig) { c.eng = e }
}

// WithoutRequestRecording disables the request log. ReceivedRequests will
// report recording as disabled, and verification diagnostics will omit
// the request log dump. Hit counting and expectation verification are
// unaffected.
func WithoutRequestRecording() ServerOption {
	return func(c *serverConfig) { c.recordingEnabled = false }
}

// WithLogger overrides the server's structured logger. The default
// writes to slog.Default().
func WithLogger(log *slog.Logger) ServerOption {
	return func(c *serverConfig) { c.log = log }
}

// StartServer binds a listener (or uses the one supplied via
// WithListener), starts the configured engine serving it in the
// background, and returns the running Server. The caller must call
// Close when done with it.
func StartServer(opts ...ServerOption) (*Server, error) {
	cfg := &serverConfig{recordingEnabled: true}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.listener == nil {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, fmt.Errorf("mockhttp: listen: %w", err)
		}
		cfg.listener = l
	}
	if cfg.eng == nil {
		cfg.eng = engine.NewFastHTTP()
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}

	s := &Server{
		eng:      cfg.eng,
		listener: cfg.listener,
		mocks:    newMockSet(),
		led:      newLedger(cfg.recordingEnabled),
		log:      cfg.log,
		serveErr: make(chan error, 1),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.eng.Serve(s.listener, s.handle)
		if err != nil {
			s.log.Error("mockhttp: engine accept loop exited", "error", (&EngineError{Op: "serve", Err: err}).Error())
		}
		s.serveErr <- err
	}()

	return s, nil
}

// handle adapts an engine.Request into the core Request/dispatch path and
// returns the engine-level Response to write back.
func (s *Server) handle(er *engine.Request) engine.Response {
	s.dispatchWG.Add(1)
	defer s.dispatchWG.Done()

	r := &Request{
		Method:     er.Method,
		URL:        er.URL,
		Header:     er.Header,
		Body:       er.Body,
		ReceivedAt: time.Now(),
	}

	s.mocksMu.RLock()
	snapshot := s.mocks.snapshot()
	resp := dispatch(snapshot, r, s.led, s.log)
	s.mocksMu.RUnlock()

	return engine.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
		Delay:      resp.Delay,
	}
}

// URI returns the server's base URI, e.g. "http://127.0.0.1:54321".
func (s *Server) URI() string {
	return "http://" + s.Address()
}

// Address returns the server's listening address, host:port.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Register mounts m globally on the server. It becomes eligible for
// dispatch immediately, and stays mounted until Reset or Close.
func (s *Server) Register(m *Mock) {
	s.mocksMu.Lock()
	s.mocks.mount(m)
	s.mocksMu.Unlock()
	s.led.track(m.id)
}

// RegisterScoped mounts m under a fresh scope and returns a Guard that
// detaches and verifies it on Release. Use this for expectations that
// must hold within a single test case, regardless of what else is
// mounted globally.
func (s *Server) RegisterScoped(m *Mock) *Guard {
	scope := uuid.NewString()
	s.mocksMu.Lock()
	s.mocks.mountScoped(m, scope)
	s.mocksMu.Unlock()
	s.led.track(m.id)
	return &Guard{server: s, scope: scope, mock: m}
}

// detachScope removes every mock mounted under scope. Called by
// Guard.Release; safe to call more than once for the same scope.
func (s *Server) detachScope(scope string) {
	s.mocksMu.Lock()
	s.mocks.releaseScope(scope)
	s.mocksMu.Unlock()
}

// Verify waits for every dispatch currently in flight to finish (so hit
// counts and the request log are stable), then checks every globally
// mounted mock's hit count against its configured expectation (mocks with
// no expectation configured are skipped) and reports failures to t.
// Scoped mocks are verified independently by their own Guard.Release.
func (s *Server) Verify(t TestingT) {
	if t != nil {
		t.Helper()
	}
	s.dispatchWG.Wait()

	s.mocksMu.RLock()
	mocks := s.mocks.globalMocks()
	s.mocksMu.RUnlock()

	log, recording := s.led.requests()
	report := verifyMocks(mocks, s.led, mocks, log, recording)
	if report.OK() {
		return
	}
	if t != nil {
		t.Fatalf("%s", report.Error())
	}
}

// ReceivedRequests returns every request the server has received so far,
// in arrival order, and true, unless recording was disabled with
// WithoutRequestRecording, in which case it returns (nil, false).
func (s *Server) ReceivedRequests() ([]Request, bool) {
	return s.led.requests()
}

// Reset clears every mounted mock (global and scoped alike), the hit
// ledger, and the request log, returning the server to a freshly-started
// state while keeping its listener and address stable. Releasing a Guard
// still outstanding from before Reset detaches nothing, since its scope no
// longer exists, but still verifies its mock against the hit count that
// Reset cleared to zero.
func (s *Server) Reset() {
	s.mocksMu.Lock()
	leaked := s.mocks.scopes()
	s.mocks.reset()
	s.mocksMu.Unlock()
	s.led.reset()

	for _, scope := range leaked {
		s.log.Warn("mockhttp: scoped mock reset before its guard was released", "scope", scope)
	}
}

// Close stops the engine, waits for its accept loop to return, and closes
// the listener. It is safe to call more than once.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.eng.Shutdown(ctx)
		s.wg.Wait()
		if err == nil {
			select {
			case serveErr := <-s.serveErr:
				err = serveErr
			default:
			}
		}
	})
	return err
}
