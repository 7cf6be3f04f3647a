package shogi

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var letterToPieceType = map[rune]PieceType{
	'p': PiecePawn,
	'k': PieceKing,
	'b': PieceBishop,
	'r': PieceRook,
	'g': PieceGold,
	's': PieceSilver,
	'n': PieceKnight,
	'l': PieceLance,
}

var pieceTypeToLetter = [numPieceTypes]byte{
	PiecePawn:   'p',
	PieceKing:   'k',
	PieceBishop: 'b',
	PieceRook:   'r',
	PieceGold:   'g',
	PieceSilver: 's',
	PieceKnight: 'n',
	PieceLance:  'l',
}

// SFEN hand order
var handOrder = []PieceType{PieceRook, PieceBishop, PieceGold, PieceSilver, PieceKnight, PieceLance, PiecePawn}

func pieceLetter(pt PieceType, side Side) byte {
	c := pieceTypeToLetter[pt]
	if side == Sente {
		c -= 'a' - 'A'
	}
	return c
}

// ParsePieceLetter maps a letter to its type and side (uppercase = Sente).
func ParsePieceLetter(ch rune) (PieceType, Side, bool) {
	pt, ok := letterToPieceType[unicode.ToLower(ch)]
	if !ok {
		return PieceNone, NoSide, false
	}
	if unicode.IsUpper(ch) {
		return pt, Sente, true
	}
	return pt, Gote, true
}

func (pc Piece) String() string {
	if pc.Empty() {
		return "."
	}
	s := string(pieceLetter(pc.Type, pc.Side))
	if pc.Promoted {
		return "+" + s
	}
	return s
}

// Encode renders the position as SFEN. The move counter is always 1.
func (p *Position) Encode() string {
	var sb strings.Builder
	for rank := 1; rank <= Ranks; rank++ {
		if rank > 1 {
			sb.WriteByte('/')
		}
		empty := 0
		for file := Files; file >= 1; file-- {
			pc := p.Board.At(Sq(file, rank))
			if pc.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == Gote {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.Hands[Sente].Empty() && p.Hands[Gote].Empty() {
		sb.WriteByte('-')
	} else {
		for _, side := range []Side{Sente, Gote} {
			for _, pt := range handOrder {
				n := p.Hands[side].Count(pt)
				if n == 0 {
					continue
				}
				if n > 1 {
					sb.WriteString(strconv.Itoa(n))
				}
				sb.WriteByte(pieceLetter(pt, side))
			}
		}
	}
	sb.WriteString(" 1")
	return sb.String()
}

func (p *Position) String() string { return p.Encode() }

// DecodePosition parses "<board> <turn> <hands> [<counter>]".
func DecodePosition(sfen string) (*Position, error) {
	parts := strings.Fields(sfen)
	if len(parts) < 3 || len(parts) > 4 {
		return nil, fmt.Errorf("%w: want 3 or 4 fields, got %d", ErrInvalidSFEN, len(parts))
	}

	pos := &Position{}
	if err := decodeBoard(&pos.Board, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "b":
		pos.SideToMove = Sente
	case "w":
		pos.SideToMove = Gote
	default:
		return nil, fmt.Errorf("%w: bad turn %q", ErrInvalidSFEN, parts[1])
	}

	if err := decodeHands(&pos.Hands, parts[2]); err != nil {
		return nil, err
	}
	return pos, nil
}

func decodeBoard(b *Board, field string) error {
	rows := strings.Split(field, "/")
	if len(rows) != Ranks {
		return fmt.Errorf("%w: %d ranks", ErrInvalidSFEN, len(rows))
	}
	for i, row := range rows {
		rank := i + 1
		file := Files
		promoted := false
		for _, ch := range row {
			switch {
			case ch >= '1' && ch <= '9':
				if promoted {
					return fmt.Errorf("%w: '+' before digit in rank %d", ErrInvalidSFEN, rank)
				}
				file -= int(ch - '0')
				if file < 0 {
					return fmt.Errorf("%w: rank %d overflows", ErrInvalidSFEN, rank)
				}
			case ch == '+':
				if promoted {
					return fmt.Errorf("%w: double '+' in rank %d", ErrInvalidSFEN, rank)
				}
				promoted = true
			default:
				pt, side, ok := ParsePieceLetter(ch)
				if !ok {
					return fmt.Errorf("%w: unknown piece %q", ErrInvalidSFEN, ch)
				}
				if promoted && !pt.Promotable() {
					return fmt.Errorf("%w: %s cannot be promoted", ErrInvalidSFEN, pt)
				}
				if file < 1 {
					return fmt.Errorf("%w: rank %d overflows", ErrInvalidSFEN, rank)
				}
				b.Set(Sq(file, rank), Piece{Type: pt, Side: side, Promoted: promoted})
				file--
				promoted = false
			}
		}
		if promoted {
			return fmt.Errorf("%w: dangling '+' in rank %d", ErrInvalidSFEN, rank)
		}
		if file != 0 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidSFEN, rank, Files-file)
		}
	}
	return nil
}

// pieces of each type in a full set, the most one hand can hold
var handSupply = [numPieceTypes]int{
	PiecePawn: 18, PieceLance: 4, PieceKnight: 4, PieceSilver: 4,
	PieceGold: 4, PieceBishop: 2, PieceRook: 2,
}

func decodeHands(hands *[2]Hand, field string) error {
	if field == "-" {
		return nil
	}
	count, digits := 0, false
	for _, ch := range field {
		if ch >= '0' && ch <= '9' {
			digits = true
			count = count*10 + int(ch-'0')
			if count > 18 {
				return fmt.Errorf("%w: hand count too large", ErrInvalidSFEN)
			}
			continue
		}
		pt, side, ok := ParsePieceLetter(ch)
		if !ok {
			return fmt.Errorf("%w: unknown hand piece %q", ErrInvalidSFEN, ch)
		}
		if pt == PieceKing {
			return fmt.Errorf("%w: king in hand", ErrInvalidSFEN)
		}
		n := 1
		if digits {
			if count < 1 {
				return fmt.Errorf("%w: zero hand count", ErrInvalidSFEN)
			}
			n = count
		}
		if int(hands[side][pt])+n > handSupply[pt] {
			return fmt.Errorf("%w: more than %d %s in hand", ErrInvalidSFEN, handSupply[pt], pt)
		}
		hands[side][pt] += int8(n)
		count, digits = 0, false
	}
	if digits || field == "" {
		return fmt.Errorf("%w: truncated hand %q", ErrInvalidSFEN, field)
	}
	return nil
}
