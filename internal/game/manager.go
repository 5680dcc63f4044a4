package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/storage"
)

// Store persists game records. *storage.Storage satisfies it.
type Store interface {
	SaveGame(rec *storage.GameRecord) error
	LoadGame(id string) (*storage.GameRecord, error)
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
	store Store
}

// NewManager creates a manager. store may be nil, in which case Save and
// Load fail with ErrNoStore.
func NewManager(store Store) *Manager {
	return &Manager{games: make(map[string]*Game), store: store}
}

func (m *Manager) add(pos *board.Position) *Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := newGame(uuid.NewString(), pos)
	m.games[g.ID] = g
	return g
}

// NewGame starts a session from the standard starting position.
func (m *Manager) NewGame() *Game {
	return m.add(board.NewPosition())
}

// NewGameFromFEN starts a session from fen. Unlike board.ParseFEN this is
// strict: any malformed field or an impossible position is rejected.
func (m *Manager) NewGameFromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return m.add(pos), nil
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

// Remove forgets a session. The stored record, if any, is kept.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

// IDs returns the IDs of all live sessions in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	m.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Save writes the session to the store.
func (m *Manager) Save(id string) error {
	if m.store == nil {
		return ErrNoStore
	}
	g, err := m.Get(id)
	if err != nil {
		return err
	}

	g.mu.Lock()
	rec := &storage.GameRecord{
		ID:        g.ID,
		Position:  g.pos.Snapshot(),
		History:   append([]string(nil), g.history...),
		CreatedAt: g.CreatedAt,
	}
	g.mu.Unlock()

	return m.store.SaveGame(rec)
}

// Load brings a stored game back as a live session under its original ID,
// replacing any session with the same ID.
func (m *Manager) Load(id string) (*Game, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}
	rec, err := m.store.LoadGame(id)
	if errors.Is(err, storage.ErrGameNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	pos, err := board.FromSnapshot(rec.Position)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	g := newGame(rec.ID, pos)
	g.history = rec.History
	g.CreatedAt = rec.CreatedAt
	g.UpdatedAt = rec.UpdatedAt

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g, nil
}
