package shogi

import "fmt"

// Offset is a (file, rank) delta, written from Sente's point of view in the
// tables below (negative DY = forward).
type Offset struct {
	DX, DY int
}

// Movement describes how a piece moves: single steps and unbounded rays.
type Movement struct {
	Steps []Offset
	Rays  []Offset
}

var (
	kingSteps   = []Offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	goldSteps   = []Offset{{0, -1}, {0, 1}, {1, 0}, {-1, 0}, {1, -1}, {-1, -1}}
	silverSteps = []Offset{{0, -1}, {-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	knightSteps = []Offset{{-1, -2}, {1, -2}}
	pawnSteps   = []Offset{{0, -1}}
	orthoDirs   = []Offset{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	diagDirs    = []Offset{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}
	lanceDirs   = []Offset{{0, -1}}
)

// movementTable[side][type][promoted]
var movementTable [2][numPieceTypes][2]Movement

func init() {
	for _, side := range []Side{Sente, Gote} {
		for pt := PiecePawn; pt < numPieceTypes; pt++ {
			for i, promoted := range []bool{false, true} {
				movementTable[side][pt][i] = orient(side, baseMovement(pt, promoted))
			}
		}
	}
}

func baseMovement(pt PieceType, promoted bool) Movement {
	switch pt {
	case PiecePawn:
		if promoted {
			return Movement{Steps: goldSteps}
		}
		return Movement{Steps: pawnSteps}
	case PieceLance:
		if promoted {
			return Movement{Steps: goldSteps}
		}
		return Movement{Rays: lanceDirs}
	case PieceKnight:
		if promoted {
			return Movement{Steps: goldSteps}
		}
		return Movement{Steps: knightSteps}
	case PieceSilver:
		if promoted {
			return Movement{Steps: goldSteps}
		}
		return Movement{Steps: silverSteps}
	case PieceGold:
		return Movement{Steps: goldSteps}
	case PieceKing:
		return Movement{Steps: kingSteps}
	case PieceBishop:
		if promoted {
			return Movement{Steps: orthoDirs, Rays: diagDirs}
		}
		return Movement{Rays: diagDirs}
	case PieceRook:
		if promoted {
			return Movement{Steps: diagDirs, Rays: orthoDirs}
		}
		return Movement{Rays: orthoDirs}
	}
	panic(fmt.Sprintf("shogi: no movement for piece type %d", pt))
}

func orient(side Side, m Movement) Movement {
	if side == Sente {
		return m
	}
	flip := func(offs []Offset) []Offset {
		if offs == nil {
			return nil
		}
		out := make([]Offset, len(offs))
		for i, o := range offs {
			out[i] = Offset{DX: o.DX, DY: -o.DY}
		}
		return out
	}
	return Movement{Steps: flip(m.Steps), Rays: flip(m.Rays)}
}

// MovementOf returns the movement of pt for side. promoted is ignored for
// types that cannot promote.
func MovementOf(pt PieceType, side Side, promoted bool) Movement {
	if pt <= PieceNone || pt >= numPieceTypes || (side != Sente && side != Gote) {
		return Movement{}
	}
	if !pt.Promotable() {
		promoted = false
	}
	i := 0
	if promoted {
		i = 1
	}
	return movementTable[side][pt][i]
}

func (m Movement) hasStep(dx, dy int) bool {
	for _, o := range m.Steps {
		if o.DX == dx && o.DY == dy {
			return true
		}
	}
	return false
}

// rayFor returns the ray direction that reaches (dx, dy), if any.
func (m Movement) rayFor(dx, dy int) (Offset, int, bool) {
	for _, d := range m.Rays {
		k, ok := rayMultiple(d, dx, dy)
		if ok {
			return d, k, true
		}
	}
	return Offset{}, 0, false
}

// rayMultiple reports whether (dx, dy) = k*d for some k >= 1.
func rayMultiple(d Offset, dx, dy int) (int, bool) {
	var k int
	switch {
	case d.DX != 0:
		if dx%d.DX != 0 {
			return 0, false
		}
		k = dx / d.DX
	case d.DY != 0:
		if dy%d.DY != 0 {
			return 0, false
		}
		k = dy / d.DY
	default:
		return 0, false
	}
	if k < 1 || d.DX*k != dx || d.DY*k != dy {
		return 0, false
	}
	return k, true
}
