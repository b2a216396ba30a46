package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pulse-board/internal/config"
	"pulse-board/internal/domain"
	"pulse-board/internal/observability"
	"pulse-board/internal/session"
)

// Server ties the dashboard session and WebSocket hub to an HTTP
// listener.
type Server struct {
	cfg       config.ServerConfig
	sess      *session.Session
	hub       *Hub
	logger    *log.Logger
	startedAt time.Time
}

// New creates a Server for one session.
func New(cfg config.ServerConfig, sess *session.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:       cfg,
		sess:      sess,
		hub:       NewHub(sess, cfg.PushInterval(), logger),
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Run starts the hub loop and the HTTP listener, and blocks until the
// context is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if err := s.hub.Run(ctx); err != nil && err != context.Canceled {
			s.logger.Printf("hub error: %v", err)
		}
	}()

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/ws", s.hub.HandleWS)
	mux.HandleFunc("/status", s.handleStatus)

	if s.cfg.MetricsEnabled {
		mux.Handle("/metrics", observability.Handler())
	}

	srv := &http.Server{Addr: s.cfg.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("Starting HTTP server on %s", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status  string         `json:"status"`
	Uptime  string         `json:"uptime"`
	Chain   domain.Chain   `json:"chain"`
	Loading bool           `json:"loading"`
	Clients int            `json:"clients"`
	Columns map[string]int `json:"columns"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	columns := make(map[string]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		columns[status.String()] = len(s.sess.Column(status))
	}

	resp := StatusResponse{
		Status:  "running",
		Uptime:  time.Since(s.startedAt).String(),
		Chain:   s.sess.Chain(),
		Loading: s.sess.Loading(),
		Clients: s.hub.clientCount(),
		Columns: columns,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
