package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/logger"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/overlay"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/EvilPatrick06/battlemap/pkg/validation"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Server is the local game-table server. It owns the live map document
// and pushes recomputed overlays to websocket subscribers whenever the
// map changes.
type Server struct {
	mu   deadlock.RWMutex
	m    *mapspec.BattleMap
	hub  *Hub
	port int
}

// New loads the map project and prepares a server for it.
func New(projectPath string, port int) (*Server, error) {
	m, err := mapspec.LoadProject(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading map: %w", err)
	}
	return &Server{m: m, hub: NewHub(), port: port}, nil
}

// NewWithMap wraps an already loaded document, mainly for tests.
func NewWithMap(m *mapspec.BattleMap, port int) *Server {
	return &Server{m: m, hub: NewHub(), port: port}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Log.Infof("Battlemap server running on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/map", enableCORS(s.handleMap))
	mux.HandleFunc("GET /api/snapshot", enableCORS(s.handleSnapshot))
	mux.HandleFunc("GET /api/validation", enableCORS(s.handleValidation))
	mux.HandleFunc("GET /api/path", enableCORS(s.handlePath))
	mux.HandleFunc("GET /api/reachable", enableCORS(s.handleReachable))
	mux.HandleFunc("POST /api/doors", enableCORS(s.handleDoors))
	mux.HandleFunc("GET /ws", enableCORS(s.handleWS))
	mux.HandleFunc("GET /health", enableCORS(s.handleHealth))
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// Snapshot recomputes the full overlay for the current map state.
func (s *Server) Snapshot() *overlay.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return overlay.Assemble(s.m)
}

// ToggleDoor opens or closes a door wall and pushes the recomputed
// snapshot to every subscriber.
func (s *Server) ToggleDoor(index int, open bool) error {
	s.mu.Lock()
	err := s.m.SetDoorOpen(index, open)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"wall": index,
		"open": open,
	}).Info("Door toggled")

	s.hub.Broadcast(Update{Type: "snapshot", Snapshot: s.Snapshot()})
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Battlemap</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Battlemap</h1>
<p>Table renderer not embedded. Connect a client to <code>/ws</code> or use the <code>/api</code> routes.</p>
</div>
</body></html>`)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, s.m)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Snapshot())
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report := validation.ValidateSchema(s.m)
	report.Merge(overlay.ValidateSnapshot(s.m, overlay.Assemble(s.m)))
	s.mu.RUnlock()

	writeJSON(w, report)
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := mapspec.ParseCell(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := mapspec.ParseCell(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget := float64(pathfind.NoBudget)
	if b := q.Get("budget"); b != "" {
		budget, err = strconv.ParseFloat(b, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("bad budget %q", b))
			return
		}
	}

	s.mu.RLock()
	res := pathfind.FindPath(from, to, s.m.Grid.Width, s.m.Grid.Height,
		s.m.Segments(), pathfind.Costs(s.m.TerrainCosts()), budget)
	s.mu.RUnlock()

	writeJSON(w, res)
}

func (s *Server) handleReachable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var origin geo.Cell
	budget := float64(pathfind.NoBudget)

	if id := q.Get("token"); id != "" {
		tok := s.m.TokenByID(id)
		if tok == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("no token %q", id))
			return
		}
		origin = tok.Anchor()
		budget = tok.MovementBudget()
	} else {
		var err error
		origin, err = mapspec.ParseCell(q.Get("from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if b := q.Get("budget"); b != "" {
		v, err := strconv.ParseFloat(b, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("bad budget %q", b))
			return
		}
		budget = v
	}

	cells := pathfind.ReachableCells(origin, budget, s.m.Grid.Width, s.m.Grid.Height,
		s.m.Segments(), pathfind.Costs(s.m.TerrainCosts()))

	writeJSON(w, map[string]any{
		"origin": origin,
		"budget": budget,
		"cells":  cells,
	})
}

func (s *Server) handleDoors(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index int  `json:"index"`
		Open  bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, `body must be {"index": n, "open": bool}`)
		return
	}
	if err := s.ToggleDoor(req.Index, req.Open); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "index": req.Index, "open": req.Open})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s, conn)
	client.send = s.hub.Register(client.id)
	logger.Log.WithField("client_id", client.id).Info("Client connected")

	go client.writePump()
	go client.readPump()

	client.trySend(Update{Type: "snapshot", Snapshot: s.Snapshot()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
