package api

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/f3rmion/tbls/tbls"
)

// Options configures a Server.
type Options struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// DefaultPair is used by /derive when a request names no participants.
	DefaultPair [2]tbls.ParticipantID
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// Server provides the signing HTTP endpoints.
type Server struct {
	logger      zerolog.Logger
	coord       Coordinator
	defaultPair [2]tbls.ParticipantID
	metrics     http.Handler
	server      *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new Server instance
func NewServer(logger zerolog.Logger, coord Coordinator, opts Options) *Server {
	s := &Server{
		logger:      logger.With().Str("component", "api").Logger(),
		coord:       coord,
		defaultPair: opts.DefaultPair,
		metrics:     opts.Metrics,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}

	return s
}

// Handler returns the router, for mounting or testing without a listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.server.Addr
	}
	return s.listener.Addr().String()
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("api server is nil")
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to address %s: %w", s.server.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		err := s.server.Serve(ln)
		switch err {
		case nil:
			s.logger.Info().Msg("API server stopped normally")
		case http.ErrServerClosed:
			s.logger.Info().Msg("API server closed gracefully")
		default:
			s.logger.Error().Err(err).Msg("API server error")
		}
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("API server listening")
	return nil
}

// Stop shuts down the HTTP server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
