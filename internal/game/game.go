// Package game keeps live chess sessions on top of the board rules core.
package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoStore      = errors.New("no store configured")
)

// Game is one session: a position, the SAN history that led to it and a
// lock serialising every access.
type Game struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	pos     *board.Position
	history []string

	// Set between a promoting Play and the matching Promote so the history
	// entry can be rewritten with the chosen piece.
	promoMove   board.Move
	promoBefore *board.Position
}

func newGame(id string, pos *board.Position) *Game {
	now := time.Now()
	return &Game{ID: id, pos: pos, CreatedAt: now, UpdatedAt: now}
}

// Moves returns the legal destinations of the piece on sq.
func (g *Game) Moves(sq board.Square) ([]board.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ml, err := g.pos.MovesFor(sq)
	if err != nil {
		return nil, err
	}
	return ml.Slice(), nil
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.LegalMoves().Slice()
}

// Play makes the legal move from -> to. A pawn reaching the last rank leaves
// the game waiting for Promote.
func (g *Game) Play(from, to board.Square) (board.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.play(from, to)
}

func (g *Game) play(from, to board.Square) (board.Move, error) {
	ml, err := g.pos.MovesFor(from)
	if err != nil {
		return board.NoMove, err
	}
	m, ok := ml.Find(from, to)
	if !ok {
		return board.NoMove, fmt.Errorf("%w: %v%v", ErrIllegalMove, from, to)
	}

	before := g.pos.Copy()
	san := m.ToSAN(before, board.NoPieceType)
	if err := g.pos.Apply(m); err != nil {
		return board.NoMove, err
	}

	g.history = append(g.history, san)
	if g.pos.AwaitingPromotion() {
		g.promoMove, g.promoBefore = m, before
	}
	g.UpdatedAt = time.Now()
	return m, nil
}

// Promote chooses the piece for a pawn waiting on the back rank.
func (g *Game) Promote(pt board.PieceType) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.promote(pt)
}

func (g *Game) promote(pt board.PieceType) error {
	if err := g.pos.ResolvePromotion(pt); err != nil {
		return err
	}
	if n := len(g.history); n > 0 {
		if g.promoBefore != nil {
			g.history[n-1] = g.promoMove.ToSAN(g.promoBefore, pt)
		} else {
			// Restored from storage mid-promotion.
			san := strings.TrimSuffix(g.history[n-1], "+") + "=" + string(pt.Letter())
			if g.pos.InCheck() {
				san += "+"
			}
			g.history[n-1] = san
		}
	}
	g.promoMove, g.promoBefore = board.NoMove, nil
	g.UpdatedAt = time.Now()
	return nil
}

// PlayUCI plays a coordinate move such as "e2e4" or "e7e8q". With a
// promotion letter the choice is applied immediately.
func (g *Game) PlayUCI(s string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, promo, err := board.ParseMove(strings.TrimSpace(s), g.pos)
	if err != nil {
		return err
	}
	if promo != board.NoPieceType && !m.IsPromotion() {
		return fmt.Errorf("%w: %s does not promote", board.ErrInvalidPromotionKind, s)
	}
	if _, err := g.play(m.From, m.To); err != nil {
		return err
	}
	if promo != board.NoPieceType && g.pos.AwaitingPromotion() {
		return g.promote(promo)
	}
	return nil
}

// AwaitingPromotion reports whether Promote must be called before the next
// move.
func (g *Game) AwaitingPromotion() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.AwaitingPromotion()
}

// History returns the moves played so far in SAN.
func (g *Game) History() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.history...)
}

// FEN returns the current position as FEN.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.ToFEN()
}

// State returns the flattened current position.
func (g *Game) State() board.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Snapshot()
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.Copy()
}
