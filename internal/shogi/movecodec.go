package shogi

import "fmt"

// String renders m in USI notation: "7g7f", "8h2b+", "P*5e".
func (m Move) String() string {
	if m.Drop {
		return string(pieceLetter(m.Piece, Sente)) + "*" + m.To.String()
	}
	s := m.From.String() + m.Dest().String()
	if m.Promote {
		s += "+"
	}
	return s
}

// EncodeMove is m.String.
func EncodeMove(m Move) string { return m.String() }

// DecodeMove parses USI move notation. It checks syntax only; legality is
// decided when the move is applied, so "K*5e" and "7g7g" decode and are then
// refused by ApplyDrop and ApplyMovement.
func DecodeMove(text string) (Move, error) {
	switch {
	case len(text) == 4 && text[1] == '*':
		pt, side, ok := ParsePieceLetter(rune(text[0]))
		if !ok || side != Sente {
			return Move{}, fmt.Errorf("%w: bad drop piece in %q", ErrInvalidMove, text)
		}
		to, err := decodeSquare(text[2:4])
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q", err, text)
		}
		return NewDrop(pt, to), nil

	case len(text) == 4 || (len(text) == 5 && text[4] == '+'):
		from, err := decodeSquare(text[0:2])
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q", err, text)
		}
		to, err := decodeSquare(text[2:4])
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q", err, text)
		}
		return NewMovement(from, to, len(text) == 5), nil
	}
	return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, text)
}

func decodeSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < '1' || s[0] > '9' || s[1] < 'a' || s[1] > 'i' {
		return Square{}, fmt.Errorf("%w: bad square %q", ErrInvalidMove, s)
	}
	return Sq(int(s[0]-'0'), int(s[1]-'a')+1), nil
}
