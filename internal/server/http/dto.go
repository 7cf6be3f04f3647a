package httpserver

import (
	"github.com/samber/lo"

	"shogi/internal/shogi"
)

// Moves travel as USI strings ("7g7f", "8h2b+", "P*5e").

// NewGameRequest may carry a starting SFEN; empty means the initial position.
type NewGameRequest struct {
	Position string `json:"position"`
}

type NewGameResponse struct {
	GameID     string   `json:"game_id"`
	Position   string   `json:"position"`
	ToMove     string   `json:"to_move"` // "b" or "w"
	LegalMoves []string `json:"legal_moves"`
	Status     string   `json:"status"`
}

type PlayRequest struct {
	GameID string `json:"game_id"`
	Move   string `json:"move"`
}

type PlayResponse struct {
	Position   string   `json:"position"`
	ToMove     string   `json:"to_move"`
	LegalMoves []string `json:"legal_moves"`
	Moves      []string `json:"moves"` // game record so far
	Status     string   `json:"status"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type StateResponse = PlayResponse

// AiMoveRequest asks for a best move without playing it.
type AiMoveRequest struct {
	Position string `json:"position"`
	Engine   string `json:"engine"` // "alphabeta" (default) or "parallel"
	MaxDepth int    `json:"max_depth"`
	Nodes    int64  `json:"nodes"`
}

type AiMoveResponse struct {
	BestMove string   `json:"best_move"` // empty when there is none
	PV       []string `json:"pv"`
	Score    int      `json:"score"` // Sente positive
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
	TimeMs   int64    `json:"time_ms"`
	Position string   `json:"position"`
	ToMove   string   `json:"to_move"`
	Status   string   `json:"status"` // "ok" or "no_moves"
}

type errorResponse struct {
	Error string `json:"error"`
}

func sideToString(s shogi.Side) string {
	if s == shogi.Gote {
		return "w"
	}
	return "b"
}

func movesToDTO(ms []shogi.Move) []string {
	return lo.Map(ms, func(m shogi.Move, _ int) string { return m.String() })
}
