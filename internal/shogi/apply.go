package shogi

// ApplyMovement moves the side to move's piece from -> to in place. On error
// the position is left untouched.
func (p *Position) ApplyMovement(from, to Square, promote bool) error {
	if !from.Valid() {
		return ErrNoPiece
	}
	pc := p.Board.At(from)
	if pc.Empty() {
		return ErrNoPiece
	}
	if pc.Side != p.SideToMove {
		return ErrNotYourPiece
	}
	if !to.Valid() || !p.reachable(pc, from, to) {
		return ErrUnreachable
	}
	if promote && !canPromote(pc, from, to) {
		return ErrCannotPromote
	}
	captured := p.Board.At(to)
	if !captured.Empty() && captured.Side == pc.Side {
		return ErrOwnPiece
	}

	// a captured king never enters a hand
	if !captured.Empty() && captured.Type != PieceKing {
		p.Hands[pc.Side][captured.Type]++
	}
	pc.Promoted = pc.Promoted || promote
	p.Board.Set(to, pc)
	p.Board.Set(from, Piece{})
	p.SideToMove = p.SideToMove.Opponent()
	return nil
}

// canPromote: promotable, not yet promoted, and starting or ending inside
// the mover's promotion zone.
func canPromote(pc Piece, from, to Square) bool {
	if !pc.Type.Promotable() || pc.Promoted {
		return false
	}
	return inPromotionZone(pc.Side, from.Rank) || inPromotionZone(pc.Side, to.Rank)
}

// reachable checks the movement rule for pc standing on from, including
// blockers along rays. It does not look at what stands on to.
func (p *Position) reachable(pc Piece, from, to Square) bool {
	dx, dy := to.File-from.File, to.Rank-from.Rank
	if dx == 0 && dy == 0 {
		return false
	}
	mv := MovementOf(pc.Type, pc.Side, pc.Promoted)
	if mv.hasStep(dx, dy) {
		return true
	}
	dir, k, ok := mv.rayFor(dx, dy)
	if !ok {
		return false
	}
	sq := from
	for i := 1; i < k; i++ {
		sq = sq.Add(dir.DX, dir.DY)
		if !p.Board.At(sq).Empty() {
			return false
		}
	}
	return true
}

// ApplyDrop places a piece from the side to move's hand on to. Uchifuzume
// (mate by pawn drop) is not checked.
func (p *Position) ApplyDrop(pt PieceType, to Square) error {
	side := p.SideToMove
	if pt == PieceKing {
		return ErrDropKing
	}
	if pt <= PieceNone || pt >= numPieceTypes {
		return ErrNotInHand
	}
	if !to.Valid() {
		return ErrUnreachable
	}
	if !p.Board.At(to).Empty() {
		return ErrDropOccupied
	}
	if p.Hands[side][pt] <= 0 {
		return ErrNotInHand
	}
	if pt == PiecePawn && p.hasUnpromotedPawnOnFile(side, to.File) {
		return ErrDoublePawn
	}
	far := ranksFromFar(side, to.Rank)
	switch pt {
	case PiecePawn, PieceLance:
		if far < 1 {
			return ErrDeadDrop
		}
	case PieceKnight:
		if far < 2 {
			return ErrDeadDrop
		}
	}

	p.Hands[side][pt]--
	p.Board.Set(to, Piece{Type: pt, Side: side})
	p.SideToMove = side.Opponent()
	return nil
}

func (p *Position) hasUnpromotedPawnOnFile(side Side, file int) bool {
	for rank := 1; rank <= Ranks; rank++ {
		pc := p.Board.At(Sq(file, rank))
		if pc.Type == PiecePawn && pc.Side == side && !pc.Promoted {
			return true
		}
	}
	return false
}

// Apply plays m for the side to move.
func (p *Position) Apply(m Move) error {
	if m.Drop {
		return p.ApplyDrop(m.Piece, m.To)
	}
	return p.ApplyMovement(m.From, m.Dest(), m.Promote)
}

// ApplyMove returns the successor position, leaving p unchanged.
func (p *Position) ApplyMove(m Move) (*Position, error) {
	np := *p
	if err := np.Apply(m); err != nil {
		return nil, err
	}
	return &np, nil
}
