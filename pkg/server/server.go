package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veld-ui/veld/pkg/render"
	"github.com/veld-ui/veld/pkg/session"
	"github.com/veld-ui/veld/pkg/vdom"
)

// Config configures a live server.
type Config struct {
	// Addr is the listen address (default ":8420").
	Addr string

	// App builds the root vnode for a new session.
	App func() *vdom.VNode

	// Title is the page title for served pages.
	Title string

	// Logger receives access and session logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Store persists session snapshots. Defaults to an in-memory store.
	Store session.Store

	// Registry receives the server's Prometheus metrics. Defaults to the
	// global registerer.
	Registry prometheus.Registerer
}

// Server serves a veld app over HTTP: statically rendered pages that
// attach to live sessions over a websocket patch stream.
type Server struct {
	cfg    Config
	logger *slog.Logger
	store  session.Store
	m      *metrics

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a Server. Config.App is required.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server: Config.App is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8420"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := cfg.Store
	if store == nil {
		store = session.NewMemoryStore()
	}
	return &Server{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		m:        newMetrics(cfg.Registry),
		sessions: make(map[string]*Session),
	}, nil
}

// Handler returns the server's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.accessLog)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/client.js", s.handleClientJS)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully and closes every session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.httpServer.Shutdown(shutCtx)
		s.closeAllSessions()
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) closeAllSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
		s.m.sessionsActive.Dec()
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// A client resuming a dead session gets its last snapshot, read-only.
	// Reloading without the sid query gets a fresh live session.
	if sid := r.URL.Query().Get("sid"); sid != "" && s.lookupSession(sid) == nil {
		snap, err := s.store.Load(r.Context(), sid)
		if err == nil && snap != nil {
			s.logger.Info("serving stale snapshot", "session", sid)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			render.WritePage(w, render.PageConfig{Title: s.cfg.Title}, string(snap.Markup))
			return
		}
	}

	sess, err := newSession(s.cfg.App, s.logger, s.store, s.m)
	if err != nil {
		s.logger.Error("session render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.m.sessionsActive.Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = render.WritePage(w, render.PageConfig{
		Title:        s.cfg.Title,
		LiveEndpoint: "/ws",
		SessionID:    sess.ID,
	}, sess.Markup())
	if err != nil {
		s.logger.Warn("page write failed", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) handleClientJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(thinClientJS))
}

// lookupSession returns a live session by ID, or nil. The snapshot store
// is not consulted.
func (s *Server) lookupSession(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Server) dropSession(sess *Session) {
	s.mu.Lock()
	_, present := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	sess.Close()
	if present {
		s.m.sessionsActive.Dec()
	}
}

// accessLog is a minimal structured access logger.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
