package shogi

// PseudoMoves lists every move side could make, ignoring whether it leaves
// side's own king in check.
func (p *Position) PseudoMoves(side Side) []Successor {
	return p.generate(side, false)
}

// LegalMoves lists the moves for side that do not leave side in check, each
// with the position it produces.
func (p *Position) LegalMoves(side Side) []Successor {
	return p.generate(side, true)
}

// IsCheckmate reports whether side has no legal move. Stalemate counts as
// mate in shogi.
func (p *Position) IsCheckmate(side Side) bool {
	return len(p.LegalMoves(side)) == 0
}

// GenerateLegalMoves returns the legal moves of the side to move.
func (p *Position) GenerateLegalMoves() []Move {
	succ := p.LegalMoves(p.SideToMove)
	moves := make([]Move, len(succ))
	for i, s := range succ {
		moves[i] = s.Move
	}
	return moves
}

func (p *Position) generate(side Side, legal bool) []Successor {
	base := *p
	base.SideToMove = side

	var out []Successor
	try := func(m Move) {
		np := base
		if err := np.Apply(m); err != nil {
			return
		}
		if legal && np.IsInCheck(side) {
			return
		}
		out = append(out, Successor{Move: m, Pos: &np})
	}

	for file := 1; file <= Files; file++ {
		for rank := 1; rank <= Ranks; rank++ {
			from := Sq(file, rank)
			pc := base.Board.At(from)
			if pc.Empty() {
				for _, pt := range handOrder {
					if base.Hands[side][pt] > 0 {
						try(NewDrop(pt, from))
					}
				}
				continue
			}
			if pc.Side != side {
				continue
			}
			for _, to := range base.destinations(pc, from) {
				if canPromote(pc, from, to) {
					try(NewMovement(from, to, true))
				}
				try(NewMovement(from, to, false))
			}
		}
	}
	return out
}

// destinations collects the squares pc on from can move to: empty squares
// and enemy pieces, stopping rays at the first occupied square.
func (p *Position) destinations(pc Piece, from Square) []Square {
	mv := MovementOf(pc.Type, pc.Side, pc.Promoted)
	out := make([]Square, 0, 8)
	for _, o := range mv.Steps {
		to := from.Add(o.DX, o.DY)
		if !to.Valid() {
			continue
		}
		if t := p.Board.At(to); t.Empty() || t.Side != pc.Side {
			out = append(out, to)
		}
	}
	for _, d := range mv.Rays {
		for to := from.Add(d.DX, d.DY); to.Valid(); to = to.Add(d.DX, d.DY) {
			t := p.Board.At(to)
			if t.Empty() {
				out = append(out, to)
				continue
			}
			if t.Side != pc.Side {
				out = append(out, to)
			}
			break
		}
	}
	return out
}
