// Package server exposes a crowd world over HTTP and a websocket stream.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"flowpath/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server routes observer requests to a Session and streams snapshots.
type Server struct {
	session *Session
	hub     *Hub
	router  chi.Router
}

// New builds the router. origins lists the CORS origins allowed to call the
// API; nil allows any.
func New(session *Session, origins []string) *Server {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{session: session, hub: NewHub()}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		api.Get("/grid", s.handleGrid)
		api.Get("/field", s.handleField)
		api.Get("/agents", s.handleAgents)
		api.Post("/agents", s.handleSpawn)
		api.Post("/goal", s.handleGoal)
		api.Post("/reset", s.handleReset)
	})
	r.Get("/ws", s.handleWS)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Step advances the world by dt milliseconds and broadcasts a snapshot.
func (s *Server) Step(dt float64) {
	s.session.Advance(dt)
	msg, err := json.Marshal(s.session.Snapshot())
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	s.hub.Broadcast(msg)
}

// Run steps the world every interval until ctx is cancelled, then closes
// the hub. Steps are measured with a Clock clamped to maxStep.
func (s *Server) Run(ctx context.Context, interval, maxStep time.Duration) {
	clock := core.NewClock(maxStep)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer s.hub.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(clock.Lap())
		}
	}
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Grid())
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Field())
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Agents())
}

type spawnRequest struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Speed float64 `json:"speed"`
}

func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if !readJSON(w, r, &req) {
		return
	}
	a, err := s.session.Spawn(core.Cell{X: req.X, Y: req.Y}, req.Speed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	var req CellJSON
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.session.SetGoal(core.Cell{X: req.X, Y: req.Y}); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]CellJSON{"goal": req})
}

type resetRequest struct {
	Seed int64 `json:"seed"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if r.ContentLength != 0 && !readJSON(w, r, &req) {
		return
	}
	if err := s.session.Reset(req.Seed); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	first, err := json.Marshal(s.session.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.hub.Serve(w, r, first)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
