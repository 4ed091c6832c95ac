// Package server exposes the analysis engine to the browser front-end over
// HTTP and WebSocket, and records finished games.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/game"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/storage"
)

// AnalyzeRequest asks for a search of a serialised position.
type AnalyzeRequest struct {
	// Board is the three-word decimal serialisation of the position.
	Board string `json:"board"`
	Depth int    `json:"depth"`
	// Side is "x" or "o"; empty means the mover holds the us words.
	Side string `json:"side,omitempty"`
}

// InfoResponse is the success response of an analysis.
type InfoResponse struct {
	Type  string   `json:"type"` // always "info"
	Depth int      `json:"depth"`
	PV    []string `json:"pv"`
	Score string   `json:"score"`
}

// ErrorResponse mirrors the protocol's tagged error line.
type ErrorResponse struct {
	Type        string `json:"type"` // always "error"
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Detail      string `json:"detail,omitempty"`
}

// GameReport is a finished game submitted by the front-end for statistics.
// Moves are plain indices so the JSON stays readable.
type GameReport struct {
	Moves      []int  `json:"moves"`
	PlayerSide string `json:"playerSide"` // "x" or "o"
	DurationMS int64  `json:"durationMs"`
}

// GameReportResponse echoes the validated result back.
type GameReportResponse struct {
	Type   string `json:"type"` // always "result"
	Result string `json:"result"`
}

// Server routes front-end requests to the engine and storage.
type Server struct {
	engine *engine.Engine
	store  *storage.Storage // may be nil; game reports are then dropped
	log    zerolog.Logger

	assetsDir string
	upgrader  websocket.Upgrader
}

// New creates a server. store may be nil when persistence is disabled.
func New(eng *engine.Engine, store *storage.Storage, assetsDir string, log zerolog.Logger) *Server {
	return &Server{
		engine:    eng,
		store:     store,
		log:       log,
		assetsDir: assetsDir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP routing for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/game", s.handleGame)
	if s.assetsDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.assetsDir)))
	}
	return s.logging(mux)
}

// logging wraps the mux with per-request structured logging.
func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// analyze runs one request through the engine, mapping boundary errors to
// the protocol's tagged categories.
func (s *Server) analyze(req AnalyzeRequest) (InfoResponse, *ErrorResponse) {
	pos, err := board.ParseWire(req.Board)
	if err != nil {
		return InfoResponse{}, &ErrorResponse{
			Type: "error", Category: "board", SubCategory: "parse", Detail: err.Error(),
		}
	}

	side := req.Side != "o"

	a, err := s.engine.Analyze(pos, side, req.Depth)
	switch {
	case errors.Is(err, engine.ErrDepthNonPositive):
		return InfoResponse{}, &ErrorResponse{Type: "error", Category: "depth", SubCategory: "nonpositive"}
	case errors.Is(err, engine.ErrDepthTooLarge):
		return InfoResponse{}, &ErrorResponse{Type: "error", Category: "depth", SubCategory: "toolarge"}
	case err != nil:
		return InfoResponse{}, &ErrorResponse{Type: "error", Category: "internal", SubCategory: "search", Detail: err.Error()}
	}

	pv := make([]string, 0, len(a.PV))
	for _, m := range a.PV {
		if m == board.NullMove {
			break
		}
		pv = append(pv, m.String())
	}

	return InfoResponse{
		Type:  "info",
		Depth: a.Depth,
		PV:    pv,
		Score: engine.FormatScore(a.Score),
	}, nil
}

// handleAnalyze serves one-shot analysis over plain HTTP.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Type: "error", Category: "board", SubCategory: "parse", Detail: err.Error(),
		})
		return
	}

	info, errResp := s.analyze(req)
	if errResp != nil {
		writeJSON(w, http.StatusBadRequest, errResp)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleWS serves analysis over a WebSocket connection; each text message
// is one AnalyzeRequest and yields one response.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req AnalyzeRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}

		info, errResp := s.analyze(req)
		var out interface{} = info
		if errResp != nil {
			out = errResp
		}
		if err := conn.WriteJSON(out); err != nil {
			s.log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// handleGame validates a reported game by replaying it and records the
// result in the statistics store.
func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var report GameReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Type: "error", Category: "board", SubCategory: "parse", Detail: err.Error(),
		})
		return
	}

	moves := make([]board.Move, 0, len(report.Moves))
	for _, m := range report.Moves {
		if m < 0 || m >= 81 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Type: "error", Category: "board", SubCategory: "parse",
				Detail: fmt.Sprintf("move %d out of range", m),
			})
			return
		}
		moves = append(moves, board.Move(m))
	}

	session, err := game.Replay(moves)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Type: "error", Category: "board", SubCategory: "parse", Detail: err.Error(),
		})
		return
	}

	result := session.Result()
	if s.store != nil && result != game.Ongoing {
		side := storage.SideX
		playerWon := result == game.XWon
		if report.PlayerSide == "o" {
			side = storage.SideO
			playerWon = result == game.OWon
		}
		err := s.store.RecordGame(storage.GameResult{
			Won:      playerWon,
			Draw:     result == game.Drawn,
			Side:     side,
			Duration: time.Duration(report.DurationMS) * time.Millisecond,
		})
		if err != nil {
			s.log.Error().Err(err).Msg("recording game failed")
		}
	}

	writeJSON(w, http.StatusOK, GameReportResponse{Type: "result", Result: result.String()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
