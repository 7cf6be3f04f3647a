package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"shogi/internal/shogi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	// ErrSelfCheck wraps shogi.ErrIllegalMove.
	ErrSelfCheck = fmt.Errorf("%w: king left in check", shogi.ErrIllegalMove)
)

// Manager keeps games in memory, keyed by a random UUID.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*record
}

type record struct {
	GameState
	seen map[uint64]int // position hash -> occurrences
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*record)}
}

// NewGame starts from pos, or from the initial position when pos is nil.
func (m *Manager) NewGame(pos *shogi.Position) GameState {
	if pos == nil {
		pos = shogi.NewInitialPosition()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &record{
		GameState: GameState{
			ID:          uuid.NewString(),
			Pos:         pos.Clone(),
			CreatedAt:   now,
			UpdatedAt:   now,
			Repetitions: 1,
		},
		seen: map[uint64]int{pos.Hash(): 1},
	}
	m.games[g.ID] = g
	return g.snapshot()
}

func (m *Manager) Get(id string) (GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return GameState{}, ErrGameNotFound
	}
	return g.snapshot(), nil
}

// Play applies mv for the side to move. The move must pass the mutators and
// must not leave the mover in check.
func (m *Manager) Play(id string, mv shogi.Move) (GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return GameState{}, ErrGameNotFound
	}
	if g.Over() {
		return GameState{}, ErrGameOver
	}
	mover := g.Pos.SideToMove
	next, err := g.Pos.ApplyMove(mv)
	if err != nil {
		return GameState{}, err
	}
	if next.IsInCheck(mover) {
		return GameState{}, ErrSelfCheck
	}
	g.Pos = next
	g.Moves = append(g.Moves, mv)
	g.UpdatedAt = time.Now()
	h := next.Hash()
	g.seen[h]++
	g.Repetitions = g.seen[h]
	return g.snapshot(), nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

func (g *record) snapshot() GameState {
	s := g.GameState
	s.Moves = append([]shogi.Move(nil), g.Moves...)
	return s
}
