package shogi

import (
	"errors"
	"testing"
)

func mustDecode(t *testing.T, sfen string) *Position {
	t.Helper()
	pos, err := DecodePosition(sfen)
	if err != nil {
		t.Fatalf("decode %q: %v", sfen, err)
	}
	return pos
}

func mustMove(t *testing.T, text string) Move {
	t.Helper()
	m, err := DecodeMove(text)
	if err != nil {
		t.Fatalf("decode move %q: %v", text, err)
	}
	return m
}

func play(t *testing.T, pos *Position, moves ...string) *Position {
	t.Helper()
	for _, text := range moves {
		next, err := pos.ApplyMove(mustMove(t, text))
		if err != nil {
			t.Fatalf("apply %s on %s: %v", text, pos, err)
		}
		pos = next
	}
	return pos
}

func TestApplyMovementBasic(t *testing.T) {
	pos := NewInitialPosition()
	if err := pos.ApplyMovement(Sq(7, 7), Sq(7, 6), false); err != nil {
		t.Fatalf("7g7f: %v", err)
	}
	if pos.SideToMove != Gote {
		t.Fatalf("side to move = %v, want gote", pos.SideToMove)
	}
	if pc, ok := pos.PieceAt(Sq(7, 6)); !ok || pc != (Piece{Type: PiecePawn, Side: Sente}) {
		t.Fatalf("7f = %+v", pc)
	}
	if _, ok := pos.PieceAt(Sq(7, 7)); ok {
		t.Fatalf("7g should be empty")
	}
}

func TestApplyMovementCaptureAndPromote(t *testing.T) {
	pos := play(t, NewInitialPosition(), "7g7f", "3c3d", "8h2b+")
	pc, _ := pos.PieceAt(Sq(2, 2))
	if pc != (Piece{Type: PieceBishop, Side: Sente, Promoted: true}) {
		t.Fatalf("2b = %+v, want promoted sente bishop", pc)
	}
	if n := pos.Hands[Sente].Count(PieceBishop); n != 1 {
		t.Fatalf("sente bishops in hand = %d, want 1", n)
	}
	want := "lnsgkgsnl/1r5+B1/pppppp1pp/6p2/9/2P6/PP1PPPPPP/7R1/LNSGKGSNL w B 1"
	if got := pos.Encode(); got != want {
		t.Fatalf("encode = %q, want %q", got, want)
	}

	// recapture puts the promoted bishop back into hand unpromoted
	pos = play(t, pos, "3a2b")
	if n := pos.Hands[Gote].Count(PieceBishop); n != 1 {
		t.Fatalf("gote bishops in hand = %d, want 1", n)
	}
}

func TestApplyMovementErrors(t *testing.T) {
	cases := []struct {
		name     string
		sfen     string
		from, to Square
		promote  bool
		want     error
	}{
		{"empty origin", StartSFEN, Sq(5, 5), Sq(5, 4), false, ErrNoPiece},
		{"off board origin", StartSFEN, Sq(0, 5), Sq(1, 5), false, ErrNoPiece},
		{"enemy piece", StartSFEN, Sq(3, 3), Sq(3, 4), false, ErrNotYourPiece},
		{"pawn two steps", StartSFEN, Sq(7, 7), Sq(7, 5), false, ErrUnreachable},
		{"rook blocked", StartSFEN, Sq(2, 8), Sq(2, 3), false, ErrUnreachable},
		{"off board target", StartSFEN, Sq(9, 9), Sq(10, 9), false, ErrUnreachable},
		{"own piece", StartSFEN, Sq(9, 9), Sq(9, 7), false, ErrOwnPiece},
		{"promote outside zone", StartSFEN, Sq(7, 7), Sq(7, 6), true, ErrCannotPromote},
		{"promote gold", "4k4/9/4G4/9/9/9/9/9/4K4 b - 1", Sq(5, 3), Sq(5, 2), true, ErrCannotPromote},
		{"promote twice", "4k4/9/4+P4/9/9/9/9/9/4K4 b - 1", Sq(5, 3), Sq(5, 2), true, ErrCannotPromote},
		{"knight sideways", StartSFEN, Sq(8, 9), Sq(7, 9), false, ErrUnreachable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := mustDecode(t, c.sfen)
			before := *pos
			err := pos.ApplyMovement(c.from, c.to, c.promote)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("err %v does not wrap ErrIllegalMove", err)
			}
			if *pos != before {
				t.Fatalf("position changed after rejected move")
			}
		})
	}
}

func TestPromotionLeavingZone(t *testing.T) {
	// silver moving out of the far three ranks may still promote
	pos := mustDecode(t, "4k4/9/6S2/9/9/9/9/9/4K4 b - 1")
	if err := pos.ApplyMovement(Sq(3, 3), Sq(2, 4), true); err != nil {
		t.Fatalf("3c2d+: %v", err)
	}
	if pc, _ := pos.PieceAt(Sq(2, 4)); !pc.Promoted {
		t.Fatalf("silver not promoted: %+v", pc)
	}

	// gote's zone is ranks g..i
	pos = mustDecode(t, "4k4/9/9/9/9/2p6/9/9/4K4 w - 1")
	if err := pos.ApplyMovement(Sq(7, 6), Sq(7, 7), true); err != nil {
		t.Fatalf("7f7g+: %v", err)
	}
}

func TestApplyDropErrors(t *testing.T) {
	const handSFEN = "4k4/9/9/9/9/9/9/9/4K4 b RBGSNLPrbgsnlp 1"
	cases := []struct {
		name string
		sfen string
		pt   PieceType
		to   Square
		want error
	}{
		{"king", handSFEN, PieceKing, Sq(5, 5), ErrDropKing},
		{"occupied", handSFEN, PieceGold, Sq(5, 1), ErrDropOccupied},
		{"not in hand", "4k4/9/9/9/9/9/9/9/4K4 b p 1", PiecePawn, Sq(5, 5), ErrNotInHand},
		{"pawn last rank", handSFEN, PiecePawn, Sq(3, 1), ErrDeadDrop},
		{"lance last rank", handSFEN, PieceLance, Sq(3, 1), ErrDeadDrop},
		{"knight last rank", handSFEN, PieceKnight, Sq(3, 1), ErrDeadDrop},
		{"knight second rank", handSFEN, PieceKnight, Sq(3, 2), ErrDeadDrop},
		{"gote pawn last rank", "4k4/9/9/9/9/9/9/9/4K4 w p 1", PiecePawn, Sq(3, 9), ErrDeadDrop},
		{"gote knight second rank", "4k4/9/9/9/9/9/9/9/4K4 w n 1", PieceKnight, Sq(3, 8), ErrDeadDrop},
		{"gote knight last rank", "4k4/9/9/9/9/9/9/9/4K4 w n 1", PieceKnight, Sq(3, 9), ErrDeadDrop},
		{"gote lance last rank", "4k4/9/9/9/9/9/9/9/4K4 w l 1", PieceLance, Sq(3, 9), ErrDeadDrop},
		{"off board", handSFEN, PieceGold, Sq(5, 10), ErrUnreachable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := mustDecode(t, c.sfen)
			before := *pos
			err := pos.ApplyDrop(c.pt, c.to)
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("err %v does not wrap ErrIllegalMove", err)
			}
			if *pos != before {
				t.Fatalf("position changed after rejected drop")
			}
		})
	}
}

func TestApplyDropUpdatesHand(t *testing.T) {
	pos := mustDecode(t, "4k4/9/9/9/9/9/9/9/4K4 b 2G 1")
	if err := pos.ApplyDrop(PieceGold, Sq(5, 5)); err != nil {
		t.Fatalf("G*5e: %v", err)
	}
	if n := pos.Hands[Sente].Count(PieceGold); n != 1 {
		t.Fatalf("golds in hand = %d, want 1", n)
	}
	if pc, _ := pos.PieceAt(Sq(5, 5)); pc != (Piece{Type: PieceGold, Side: Sente}) {
		t.Fatalf("5e = %+v", pc)
	}
	if pos.SideToMove != Gote {
		t.Fatalf("turn did not flip")
	}
	// knight on the third rank is fine
	pos = mustDecode(t, "4k4/9/9/9/9/9/9/9/4K4 b N 1")
	if err := pos.ApplyDrop(PieceKnight, Sq(3, 3)); err != nil {
		t.Fatalf("N*3c: %v", err)
	}
}

func TestDoublePawnOnEveryRank(t *testing.T) {
	cases := []struct {
		name     string
		sfen     string
		pawnRank int
	}{
		{"sente", "4k4/9/9/9/9/9/6P2/9/4K4 b P 1", 7},
		{"gote", "4k4/9/6p2/9/9/9/9/9/4K4 w p 1", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos := mustDecode(t, c.sfen)
			for rank := 1; rank <= Ranks; rank++ {
				if rank == c.pawnRank {
					continue
				}
				p := *pos
				err := p.ApplyDrop(PiecePawn, Sq(3, rank))
				if !errors.Is(err, ErrDoublePawn) {
					t.Errorf("P*3%c: err = %v, want ErrDoublePawn", 'a'+rank-1, err)
				}
			}
		})
	}

	// a promoted pawn does not count
	pos := mustDecode(t, "4k4/9/9/9/9/9/6+P2/9/4K4 b P 1")
	if err := pos.ApplyDrop(PiecePawn, Sq(3, 5)); err != nil {
		t.Fatalf("P*3e next to tokin: %v", err)
	}
	// neither does the opponent's pawn
	pos = mustDecode(t, "4k4/9/6p2/9/9/9/9/9/4K4 b P 1")
	if err := pos.ApplyDrop(PiecePawn, Sq(3, 5)); err != nil {
		t.Fatalf("P*3e under enemy pawn: %v", err)
	}
}

func TestCapturedKingStaysOutOfHand(t *testing.T) {
	// not reachable through legal play; the side not to move is in check
	pos := mustDecode(t, "4k4/9/9/9/9/9/9/9/K3R4 b - 1")
	if err := pos.Apply(mustMove(t, "5i5a")); err != nil {
		t.Fatalf("5i5a: %v", err)
	}
	if n := pos.Hands[Sente].Count(PieceKing); n != 0 {
		t.Fatalf("kings in hand = %d", n)
	}
	const want = "4R4/9/9/9/9/9/9/9/K8 w - 1"
	if got := pos.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
	mustDecode(t, pos.Encode())
}

func TestApplyMoveLeavesReceiverUntouched(t *testing.T) {
	pos := NewInitialPosition()
	before := *pos
	next, err := pos.ApplyMove(NewMovement(Sq(2, 7), Sq(2, 6), false))
	if err != nil {
		t.Fatalf("2g2f: %v", err)
	}
	if *pos != before {
		t.Fatalf("receiver mutated")
	}
	if next.SideToMove != Gote {
		t.Fatalf("successor side = %v", next.SideToMove)
	}
	if _, err := pos.ApplyMove(NewDrop(PiecePawn, Sq(5, 5))); !errors.Is(err, ErrNotInHand) {
		t.Fatalf("drop without hand: err = %v", err)
	}
}
