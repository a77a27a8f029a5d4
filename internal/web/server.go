package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/peterkuimelis/combat/internal/log"
	combatnet "github.com/peterkuimelis/combat/internal/net"
	"go.uber.org/zap"
)

//go:embed static
var staticFiles embed.FS

// DefaultMaxEvents caps how many events one WebSocket game streams.
// The game still runs to the end; later events are dropped.
const DefaultMaxEvents = 5000

// maxRequestBytes bounds POST /api/play bodies.
const maxRequestBytes = 1 << 20

// Server is the combat web UI server.
type Server struct {
	decksFile string
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server.
func NewServer(decksFile string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		decksFile: decksFile,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/play", s.handlePlay)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var msg combatnet.ClientMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, combatnet.ServerMessage{Type: "error", Error: "bad request: " + err.Error()})
		return
	}
	msg.Type = "play"

	gameID := uuid.NewString()
	results, err := combatnet.Play(r.Context(), msg, s.decksFile, nil)
	if err != nil {
		s.logger.Info("play failed", zap.String("game", gameID), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, combatnet.ServerMessage{Type: "error", GameID: gameID, Error: err.Error()})
		return
	}
	s.logger.Info("play served", zap.String("game", gameID), zap.Int("games", len(results)))
	writeJSON(w, http.StatusOK, combatnet.ServerMessage{Type: "result", GameID: gameID, Results: results})
}

// handleWebSocket plays one game per connection: the browser sends a play
// request, the server streams every event and finishes with the result.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var msg combatnet.ClientMessage
	if err := wsjson.Read(ctx, wsConn, &msg); err != nil || msg.Type != "play" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected play message")
		return
	}

	gameID := uuid.NewString()
	logger := s.logger.With(zap.String("game", gameID))

	maxEvents := msg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	sent := 0
	var writeErr error
	stream := log.NewFuncLogger(func(e log.GameEvent) {
		if writeErr != nil || sent >= maxEvents {
			return
		}
		ev := combatnet.BuildEventView(e)
		writeErr = wsjson.Write(ctx, wsConn, combatnet.ServerMessage{Type: "event", GameID: gameID, Event: &ev})
		if writeErr != nil {
			// Browser went away; stop the game.
			cancel()
		}
		sent++
	})

	results, err := combatnet.Play(ctx, msg, s.decksFile, stream)
	if writeErr != nil {
		logger.Info("websocket stream closed", zap.Error(writeErr))
		return
	}
	reply := combatnet.ServerMessage{Type: "result", GameID: gameID, Results: results}
	if err != nil {
		reply = combatnet.ServerMessage{Type: "error", GameID: gameID, Error: err.Error()}
	}
	if err := wsjson.Write(ctx, wsConn, reply); err != nil {
		logger.Info("websocket write result", zap.Error(err))
		return
	}
	logger.Info("websocket game finished", zap.Int("events", sent), zap.Bool("failed", err != nil))
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
