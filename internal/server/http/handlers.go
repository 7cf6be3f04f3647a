package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"shogi/internal/engine"
	"shogi/internal/parallel"
	"shogi/internal/server/game"
	"shogi/internal/shogi"
)

const (
	engineAlphaBeta = "alphabeta"
	engineParallel  = "parallel"

	defaultAiDepth = 3
	maxAiDepth     = 6
)

// Handler serves the /api routes over an in-memory game store.
type Handler struct {
	games    *game.Manager
	engine   *engine.Engine
	parallel parallel.SearchParams
}

func NewHandler() *Handler {
	return &Handler{
		games:    game.NewManager(),
		engine:   engine.NewEngine(),
		parallel: parallel.DefaultParams(),
	}
}

func (h *Handler) Games() *game.Manager { return h.games }

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// an empty body starts from the initial position
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	var start *shogi.Position
	if req.Position != "" {
		pos, err := shogi.DecodePosition(req.Position)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		start = pos
	}

	g := h.games.NewGame(start)
	logrus.Infof("new game %s from %s", g.ID, g.Pos.Encode())
	writeJSON(w, http.StatusOK, NewGameResponse{
		GameID:     g.ID,
		Position:   g.Pos.Encode(),
		ToMove:     sideToString(g.Pos.SideToMove),
		LegalMoves: movesToDTO(g.Pos.GenerateLegalMoves()),
		Status:     g.Status(),
	})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	mv, err := shogi.DecodeMove(req.Move)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.games.Play(req.GameID, mv)
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, shogi.ErrIllegalMove), errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(g))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateResponse(g))
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.games.Get(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.games.Delete(id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "game_id": id})
}

func stateResponse(g game.GameState) StateResponse {
	return StateResponse{
		Position:   g.Pos.Encode(),
		ToMove:     sideToString(g.Pos.SideToMove),
		LegalMoves: movesToDTO(g.Pos.GenerateLegalMoves()),
		Moves:      movesToDTO(g.Moves),
		Status:     g.Status(),
	}
}

// handleAiMove searches the given position and reports the best move without
// playing it.
func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "missing position")
		return
	}
	pos, err := shogi.DecodePosition(req.Position)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		res engine.SearchResult
		ok  bool
	)
	switch req.Engine {
	case "", engineAlphaBeta:
		depth := req.MaxDepth
		if depth <= 0 {
			depth = defaultAiDepth
		}
		depth = min(depth, maxAiDepth)
		res, ok = h.engine.Search(pos, engine.SearchConfig{MaxDepth: depth})
	case engineParallel:
		p := h.parallel
		if req.Nodes > 0 {
			p.NodeBudget = req.Nodes
		}
		res, ok = parallel.NewSearcher(p).Search(pos)
	default:
		writeError(w, http.StatusBadRequest, "unknown engine "+req.Engine)
		return
	}

	resp := AiMoveResponse{
		PV:       movesToDTO(res.PV),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.TimeUsed.Milliseconds(),
		Position: pos.Encode(),
		ToMove:   sideToString(pos.SideToMove),
		Status:   "ok",
	}
	if best, has := res.BestMove(); ok && has {
		resp.BestMove = best.String()
	} else {
		resp.Status = "no_moves"
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("writeJSON error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
