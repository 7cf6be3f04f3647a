package shogi

const (
	Files      = 9
	Ranks      = 9
	NumSquares = Files * Ranks

	// promotion zone depth, counted from the opponent's back rank
	zoneDepth = 3
)

// StartSFEN is the standard initial position.
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

type Board struct {
	Squares [NumSquares]Piece
}

func indexOf(sq Square) int { return (sq.File - 1) + (sq.Rank-1)*Files }

func squareOf(idx int) Square {
	return Square{File: idx%Files + 1, Rank: idx/Files + 1}
}

func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.Squares[indexOf(sq)]
}

func (b *Board) Set(sq Square, pc Piece) {
	b.Squares[indexOf(sq)] = pc
}

// forward is the rank delta of one step towards the opponent.
func forward(side Side) int {
	if side == Sente {
		return -1
	}
	return +1
}

// ranksFromFar counts how far rank is from side's farthest rank (0 = farthest).
func ranksFromFar(side Side, rank int) int {
	if side == Sente {
		return rank - 1
	}
	return Ranks - rank
}

func inPromotionZone(side Side, rank int) bool {
	return ranksFromFar(side, rank) < zoneDepth
}

func NewInitialPosition() *Position {
	pos, err := DecodePosition(StartSFEN)
	if err != nil {
		panic("shogi: bad start position: " + err.Error())
	}
	return pos
}

func (p *Position) PieceAt(sq Square) (Piece, bool) {
	pc := p.Board.At(sq)
	return pc, !pc.Empty()
}

// KingSquare finds side's king; ok is false when it is not on the board.
func (p *Position) KingSquare(side Side) (Square, bool) {
	for i, pc := range p.Board.Squares {
		if pc.Type == PieceKing && pc.Side == side {
			return squareOf(i), true
		}
	}
	return Square{}, false
}

func (p *Position) KingExists(side Side) bool {
	_, ok := p.KingSquare(side)
	return ok
}

func (p *Position) Clone() *Position {
	np := *p
	return &np
}
