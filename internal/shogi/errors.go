package shogi

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSFEN = errors.New("invalid SFEN")
	ErrInvalidMove = errors.New("invalid move notation")
	ErrIllegalMove = errors.New("illegal move")
)

// Causes of ErrIllegalMove. Each wraps ErrIllegalMove.
var (
	ErrNoPiece       = illegal("no piece at origin")
	ErrNotYourPiece  = illegal("piece belongs to the other side")
	ErrUnreachable   = illegal("destination unreachable for this piece")
	ErrOwnPiece      = illegal("destination holds own piece")
	ErrCannotPromote = illegal("promotion not allowed")
	ErrDropOccupied  = illegal("drop destination occupied")
	ErrNotInHand     = illegal("piece not in hand")
	ErrDropKing      = illegal("king cannot be dropped")
	ErrDeadDrop      = illegal("dropped piece would have no move")
	ErrDoublePawn    = illegal("double pawn")
)

func illegal(reason string) error {
	return fmt.Errorf("%w: %s", ErrIllegalMove, reason)
}
