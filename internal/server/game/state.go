package game

import (
	"time"

	"shogi/internal/shogi"
)

const (
	StatusOngoing    = "ongoing"
	StatusCheckmate  = "checkmate"
	StatusRepetition = "repetition"

	// sennichite: the same position for the fourth time ends the game
	repetitionLimit = 4
)

type GameState struct {
	ID        string
	Pos       *shogi.Position
	Moves     []shogi.Move
	CreatedAt time.Time
	UpdatedAt time.Time

	// Repetitions counts how often Pos has occurred in this game.
	Repetitions int
}

// Status reports checkmate when the side to move has no legal move, and
// repetition once the current position has been reached four times.
func (g *GameState) Status() string {
	if s := PositionStatus(g.Pos); s != StatusOngoing {
		return s
	}
	if g.Repetitions >= repetitionLimit {
		return StatusRepetition
	}
	return StatusOngoing
}

func (g *GameState) Over() bool { return g.Status() != StatusOngoing }

func PositionStatus(pos *shogi.Position) string {
	if pos.IsCheckmate(pos.SideToMove) {
		return StatusCheckmate
	}
	return StatusOngoing
}
