package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	wayfinderrors "github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/middleware"
	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

// Server bridges a route tree and a navigation session to host tooling
// over HTTP and WebSocket.
type Server struct {
	root    *router.RouteNode
	session *nav.Session
	config  *Config
	logger  *slog.Logger

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// mu guards clients and closed. Every send into and close of a
	// client's send channel happens while holding it, so a frame is
	// never sent on a closed channel.
	mu      sync.Mutex
	clients map[string]*client
	closed  bool

	// unsubscribe releases the session subscription.
	unsubscribe func()

	// HTTP server
	httpServer *http.Server
}

// New creates a sync server for the given route tree and session.
// A nil config gets defaults; unset config fields are filled in.
func New(root *router.RouteNode, session *nav.Session, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		applyDefaults(config)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	s := &Server{
		root:    root,
		session: session,
		config:  config,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		clients: make(map[string]*client),
	}

	s.unsubscribe = session.Subscribe(s.broadcast)

	return s
}

// Session returns the navigation session the server drives.
func (s *Server) Session() *nav.Session {
	return s.session
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Handler returns the server's HTTP handler for mounting in external
// routers or an httptest server.
//
// Routes:
//   - GET /resolve?path= → canonicalize and resolve a path
//   - GET /routes → the route table ordered by specificity
//   - GET /healthz → liveness probe
//   - GET /metrics → Prometheus metrics
//   - GET /ws → WebSocket sync
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Prometheus())
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
	))

	r.Get("/resolve", s.handleResolve)
	r.Get("/routes", s.handleRoutes)
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", s.handleWS)

	return r
}

// ResolveResponse is the JSON body of GET /resolve.
type ResolveResponse struct {
	// Input is the raw path as given.
	Input string `json:"input"`

	// Path is the canonical path.
	Path string `json:"path"`

	// Query is the query string split off the input.
	Query string `json:"query,omitempty"`

	// Changed reports that canonicalization modified the path. Hosts use
	// it to repair the address they hold.
	Changed bool `json:"changed"`

	// Matched reports whether the canonical path resolved.
	Matched bool `json:"matched"`

	// Payloads are the matched chain's payloads, root to leaf.
	Payloads []string `json:"payloads,omitempty"`

	// Params are the decoded captures of the match.
	Params map[string]string `json:"params,omitempty"`

	// Rest is the decoded wildcard remainder.
	Rest string `json:"rest,omitempty"`
}

// RoutesResponse is the JSON body of GET /routes.
type RoutesResponse struct {
	Routes []router.RouteInfo `json:"routes"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("path")
	if raw == "" {
		writeJSONError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	m, res, err := router.ResolveCanonical(s.root, raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.RecordResolve(m.Matched)
	if res.Changed {
		middleware.RecordCanonicalRewrite()
	}

	writeJSON(w, http.StatusOK, ResolveResponse{
		Input:    raw,
		Path:     res.Path,
		Query:    res.Query,
		Changed:  res.Changed,
		Matched:  m.Matched,
		Payloads: m.Payloads(),
		Params:   m.Params,
		Rest:     m.Rest,
	})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := router.Routes(s.root)
	router.SortBySpecificity(routes)
	writeJSON(w, http.StatusOK, RoutesResponse{Routes: routes})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return wayfinderrors.FromError(err, "E080")
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server: clients are disconnected,
// the session subscription is released, and the HTTP listener drains
// within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Close releases the session subscription and disconnects every client.
// The HTTP listener, if any, is not touched; use Shutdown for that.
// Close is idempotent.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true

	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[string]*client)

	for _, c := range clients {
		close(c.send)
	}
	s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	for _, c := range clients {
		middleware.RecordClientDisconnect()
		c.logger.Info("client disconnected")
	}
}

// writeJSON writes v as a JSON response. Encoding failures past the
// header are connection-level and are left to the client to notice.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes an error response body {"error": message}.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
