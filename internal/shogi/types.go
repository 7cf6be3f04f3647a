package shogi

import "fmt"

type Side int8

const (
	NoSide Side = -1
	Sente  Side = 0 // primary side, uppercase, moves first
	Gote   Side = 1 // secondary side, lowercase
)

func (s Side) Opponent() Side {
	switch s {
	case Sente:
		return Gote
	case Gote:
		return Sente
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Sente:
		return "sente"
	case Gote:
		return "gote"
	}
	return "none"
}

type PieceType int8

const (
	PieceNone   PieceType = iota
	PiecePawn             // 歩
	PieceKing             // 玉
	PieceBishop           // 角
	PieceRook             // 飛
	PieceGold             // 金
	PieceSilver           // 銀
	PieceKnight           // 桂
	PieceLance            // 香

	numPieceTypes = iota
)

// Promotable reports whether pt has a promoted form.
func (pt PieceType) Promotable() bool {
	switch pt {
	case PiecePawn, PieceBishop, PieceRook, PieceSilver, PieceKnight, PieceLance:
		return true
	}
	return false
}

func (pt PieceType) String() string {
	if pt <= PieceNone || pt >= numPieceTypes {
		return "none"
	}
	return [...]string{"", "pawn", "king", "bishop", "rook", "gold", "silver", "knight", "lance"}[pt]
}

// Piece is a piece standing on the board. The zero value is an empty cell.
type Piece struct {
	Type     PieceType
	Side     Side
	Promoted bool
}

func (p Piece) Empty() bool { return p.Type == PieceNone }

type Square struct {
	File int // 1..9, file 1 is the rightmost column
	Rank int // 1..9, rank 1 ("a") is Gote's back rank
}

func Sq(file, rank int) Square { return Square{File: file, Rank: rank} }

func (sq Square) Valid() bool {
	return sq.File >= 1 && sq.File <= Files && sq.Rank >= 1 && sq.Rank <= Ranks
}

func (sq Square) Add(dx, dy int) Square {
	return Square{File: sq.File + dx, Rank: sq.Rank + dy}
}

func (sq Square) String() string {
	if !sq.Valid() {
		return fmt.Sprintf("(%d,%d)", sq.File, sq.Rank)
	}
	return string([]byte{byte('0' + sq.File), byte('a' + sq.Rank - 1)})
}

// Move is either a movement of a piece already on the board or a drop from
// the hand. Fields outside the active shape stay zero, so == compares moves.
type Move struct {
	Drop bool

	// movement
	From    Square
	DX, DY  int
	Promote bool

	// drop
	Piece PieceType
	To    Square
}

func NewMovement(from, to Square, promote bool) Move {
	return Move{From: from, DX: to.File - from.File, DY: to.Rank - from.Rank, Promote: promote}
}

func NewDrop(pt PieceType, to Square) Move {
	return Move{Drop: true, Piece: pt, To: to}
}

// Dest returns the square the move lands on.
func (m Move) Dest() Square {
	if m.Drop {
		return m.To
	}
	return m.From.Add(m.DX, m.DY)
}

// Hand counts the pieces a side holds, indexed by PieceType.
type Hand [numPieceTypes]int8

func (h Hand) Empty() bool {
	for _, n := range h {
		if n != 0 {
			return false
		}
	}
	return true
}

func (h Hand) Count(pt PieceType) int { return int(h[pt]) }

// Position = board grid + both hands + side to move. It holds no pointers or
// slices, so copying the struct clones it.
type Position struct {
	Board      Board
	Hands      [2]Hand
	SideToMove Side
}

// Successor is one legal continuation: the move and the position it leads to.
type Successor struct {
	Move Move
	Pos  *Position
}
