package shogi

import "sync"

// most pieces of one type a hand can hold (18 pawns)
const maxHandCount = 18

var (
	zobristOnce sync.Once

	zobristPieces [2][2][numPieceTypes][NumSquares]uint64 // side, promoted, type, square
	zobristHands  [2][numPieceTypes][maxHandCount + 1]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for promo := 0; promo < 2; promo++ {
				for pt := 1; pt < int(numPieceTypes); pt++ {
					for sq := 0; sq < NumSquares; sq++ {
						zobristPieces[side][promo][pt][sq] = next()
					}
				}
			}
			for pt := 1; pt < int(numPieceTypes); pt++ {
				for n := 1; n <= maxHandCount; n++ {
					zobristHands[side][pt][n] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(pc Piece, idx int) uint64 {
	if pc.Empty() || (pc.Side != Sente && pc.Side != Gote) {
		return 0
	}
	promo := 0
	if pc.Promoted {
		promo = 1
	}
	return zobristPieces[pc.Side][promo][pc.Type][idx]
}

// Hash computes the Zobrist key of the board, both hands and the side to
// move. Equal positions hash equal; the move counter is not part of it.
func (p *Position) Hash() uint64 {
	initZobrist()

	var h uint64
	for idx, pc := range p.Board.Squares {
		h ^= pieceHashKey(pc, idx)
	}
	for side := 0; side < 2; side++ {
		for pt, n := range p.Hands[side] {
			if n > 0 && int(n) <= maxHandCount {
				h ^= zobristHands[side][pt][n]
			}
		}
	}
	if p.SideToMove == Gote {
		h ^= zobristSide
	}
	return h
}
