package shogi

// IsAttacked reports whether a piece of bySide could move onto sq.
func (p *Position) IsAttacked(sq Square, bySide Side) bool {
	// adjacent cells plus the two knight squares of an attacker from bySide
	near := make([]Offset, 0, len(kingSteps)+2)
	near = append(near, kingSteps...)
	kf := -forward(bySide) * 2
	near = append(near, Offset{-1, kf}, Offset{1, kf})

	for _, o := range near {
		from := sq.Add(o.DX, o.DY)
		pc := p.Board.At(from)
		if pc.Empty() || pc.Side != bySide {
			continue
		}
		if MovementOf(pc.Type, pc.Side, pc.Promoted).hasStep(-o.DX, -o.DY) {
			return true
		}
	}

	// a lance attacks from the squares behind sq as seen from its owner
	lanceDir := Offset{0, -forward(bySide)}
	for _, d := range orthoDirs {
		pc, ok := p.firstAlongRay(sq, d)
		if !ok || pc.Side != bySide {
			continue
		}
		if pc.Type == PieceRook {
			return true
		}
		if pc.Type == PieceLance && !pc.Promoted && d == lanceDir {
			return true
		}
	}
	for _, d := range diagDirs {
		pc, ok := p.firstAlongRay(sq, d)
		if ok && pc.Side == bySide && pc.Type == PieceBishop {
			return true
		}
	}
	return false
}

func (p *Position) firstAlongRay(sq Square, d Offset) (Piece, bool) {
	for s := sq.Add(d.DX, d.DY); s.Valid(); s = s.Add(d.DX, d.DY) {
		if pc := p.Board.At(s); !pc.Empty() {
			return pc, true
		}
	}
	return Piece{}, false
}

// IsInCheck reports whether side's king is attacked. A side without a king
// is never in check.
func (p *Position) IsInCheck(side Side) bool {
	kingSq, ok := p.KingSquare(side)
	if !ok {
		return false
	}
	return p.IsAttacked(kingSq, side.Opponent())
}
