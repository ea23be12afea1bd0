package server

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/skeletohq/skeleto/request"
	"github.com/skeletohq/skeleto/response"
)

// Server accepts connections and runs the dispatch pipeline for each:
// parse context, invoke the composed handler, write the response. Every
// connection gets its own goroutine; failures are contained per request.
type Server struct {
	cfg      Config
	handler  Handler
	logger   *log.Logger
	listener net.Listener
	closed   atomic.Bool
}

// New creates a server. The handler is usually a middleware chain
// terminated by a router. A fresh admin access code is generated when the
// config carries none.
func New(cfg Config, handler Handler) *Server {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "skeleto",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	if cfg.AccessCode == "" {
		cfg.AccessCode = NewAccessCode()
	}

	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// AccessCode returns the admin access code for this server run.
func (s *Server) AccessCode() string {
	return s.cfg.AccessCode
}

// Close stops the accept loop. In-flight connections are allowed to
// finish or are abandoned at process exit.
func (s *Server) Close() error {
	s.closed.Store(true)
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// bind opens the listener. It runs on the caller's goroutine so the
// listener field is set before the accept loop starts and before Serve
// returns; Close never races it.
func (s *Server) bind() error {
	listener, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	s.listener = listener

	s.logger.Info("listening", "addr", s.cfg.Addr())
	// the access code is shown only to the operator, and only in debug mode
	s.logger.Debug("admin access code generated", "code", s.cfg.AccessCode)
	return nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				s.logger.Error("unable to accept connection", "err", err)
			}
			return
		}
		go s.handle(conn)
	}
}

// handle runs one request flow: parse, dispatch, serialize. Any panic
// raised anywhere in the flow is caught here and converted into a 500
// error response; it never reaches the accept loop.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered from panic in request flow", "panic", r)
			if s.cfg.Debug {
				debug.PrintStack()
			}
			s.writeError(conn, fmt.Sprint(r))
		}
	}()

	ctx, err := request.FromReader(conn)
	if err != nil {
		s.logger.Debug("request parse failed", "err", err)
		s.writeError(conn, err.Error())
		return
	}
	ctx.RemoteAddr = conn.RemoteAddr().String()

	resp := s.handler(ctx)
	if err := resp.Write(conn); err != nil {
		// client gone mid-write, nothing more to do for this flow
		s.logger.Error("unable to write response to connection", "err", err)
	}
}

// writeError sends a 500 error response. The failure detail is included
// only in debug mode; otherwise the client gets a generic message.
func (s *Server) writeError(conn net.Conn, detail string) {
	message := "internal server error"
	if s.cfg.Debug {
		message = detail
	}
	resp := response.NewError(message, response.StatusInternalServerError)
	if err := resp.Write(conn); err != nil {
		s.logger.Error("unable to write error response", "err", err)
	}
}

// NewAccessCode produces the six-digit admin code, regenerated once per
// server run.
func NewAccessCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		panic("unable to generate access code: " + err.Error())
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// Serve binds the listener and starts the accept loop on its own
// goroutine. Binding happens before Serve returns, so a failed bind is
// reported here and a Close issued immediately after always finds the
// listener.
func Serve(cfg Config, handler Handler) (*Server, error) {
	s := New(cfg, handler)
	if err := s.bind(); err != nil {
		return nil, err
	}
	go s.serve()
	return s, nil
}
