// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package panel

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/radialab/sweepbench/pkg/logger"
	"github.com/radialab/sweepbench/pkg/sweep"
)

// RunRequest are the operator-supplied parameters for one sweep run.
type RunRequest struct {
	Board      int    `json:"board_no"`
	Channel    int    `json:"channel_no"`
	PulseWidth string `json:"pulse_width"`
	PRT        string `json:"prt"`
}

// RunFunc executes one sweep run, pushing progress to sink. The panel
// server owns run serialization; implementations only run the sweep.
type RunFunc func(ctx context.Context, req RunRequest, sink sweep.Sink) ([]sweep.Result, error)

// Server is the control-panel HTTP service. At most one run is active at a
// time; starting a second run while one is active is rejected.
type Server struct {
	hub *Hub
	run RunFunc
	log logger.Logger

	username string
	password string

	upgrader websocket.Upgrader

	// ctx is the parent of every run started over HTTP; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
}

// NewServer creates a panel server around a run function. If username is
// non-empty, all endpoints require HTTP Basic auth with the given
// credentials.
func NewServer(run RunFunc, username, password string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		hub:      NewHub(log),
		run:      run,
		log:      log,
		username: username,
		password: password,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close cancels any active run. Callers shut the HTTP listener down
// separately; Close is safe to call more than once.
func (s *Server) Close() {
	s.cancel()
}

// Hub returns the progress hub, usable as a sweep.Sink for runs started
// outside the HTTP surface.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler for the panel endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/run", s.handleRun)
	mux.HandleFunc("/ws/events", s.handleEvents)
	return s.withAuth(mux)
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.username == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1
		if !ok || !userOK || !passOK {
			w.Header().Set("WWW-Authenticate", `Basic realm="sweepbench"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		http.Error(w, "a sweep run is already in progress", http.StatusConflict)
		return
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		results, err := s.run(s.ctx, req, s.hub)
		if err != nil {
			s.log.Error("sweep run failed",
				"board", req.Board, "channel", req.Channel, "error", err)
			return
		}
		s.log.Info("sweep run finished",
			"board", req.Board, "channel", req.Channel, "results", len(results))
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "started"})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := s.hub.attach(conn)

	// Drain (and discard) client frames so pings and close frames are
	// processed; the event stream is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.detach(c)
				return
			}
		}
	}()
}
