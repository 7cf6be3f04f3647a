package shogi

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) int {
	if depth <= 0 {
		return 1
	}
	succ := p.LegalMoves(p.SideToMove)
	if depth == 1 {
		return len(succ)
	}
	total := 0
	for _, s := range succ {
		total += s.Pos.Perft(depth - 1)
	}
	return total
}
