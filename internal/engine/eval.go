package engine

import "shogi/internal/shogi"

// pieceValue[type][promoted]; types that cannot promote repeat their base value.
var pieceValue = [...][2]int{
	shogi.PiecePawn:   {1, 3},
	shogi.PieceLance:  {5, 4},
	shogi.PieceKnight: {6, 5},
	shogi.PieceSilver: {10, 10},
	shogi.PieceGold:   {15, 15},
	shogi.PieceBishop: {40, 47},
	shogi.PieceRook:   {45, 50},
	shogi.PieceKing:   {0, 0},
}

// PieceValue is the material value of a piece of type pt.
func PieceValue(pt shogi.PieceType, promoted bool) int {
	if pt <= shogi.PieceNone || int(pt) >= len(pieceValue) {
		return 0
	}
	if promoted {
		return pieceValue[pt][1]
	}
	return pieceValue[pt][0]
}

// Evaluate scores pos from Sente's point of view: positive favours Sente.
// Only material counts, hand pieces at their unpromoted value.
func Evaluate(pos *shogi.Position) int {
	score := 0
	for _, pc := range pos.Board.Squares {
		if pc.Empty() {
			continue
		}
		v := PieceValue(pc.Type, pc.Promoted)
		if pc.Side == shogi.Sente {
			score += v
		} else {
			score -= v
		}
	}
	for pt := shogi.PiecePawn; int(pt) < len(pieceValue); pt++ {
		v := PieceValue(pt, false)
		score += v * pos.Hands[shogi.Sente].Count(pt)
		score -= v * pos.Hands[shogi.Gote].Count(pt)
	}
	return score
}
