package board

import "fmt"

// Snapshot is the flattened form of a Position, suitable for JSON storage
// and transmission. Bitboards are indexed [Color][PieceType].
type Snapshot struct {
	Pieces           [2][6]uint64 `json:"pieces"`
	WhiteToMove      bool         `json:"white_to_move"`
	WhiteKingSide    bool         `json:"white_castle_k"`
	WhiteQueenSide   bool         `json:"white_castle_q"`
	BlackKingSide    bool         `json:"black_castle_k"`
	BlackQueenSide   bool         `json:"black_castle_q"`
	EnPassant        string       `json:"en_passant"`
	HalfMoveClock    int          `json:"halfmove_clock"`
	FullMoveNumber   int          `json:"fullmove_number"`
	PendingPromotion string       `json:"pending_promotion"`
	Hash             uint64       `json:"hash"`
}

// Snapshot flattens the position.
func (p *Position) Snapshot() Snapshot {
	s := Snapshot{
		WhiteToMove:      p.SideToMove == White,
		WhiteKingSide:    p.CastlingRights.CanCastle(White, KingSide),
		WhiteQueenSide:   p.CastlingRights.CanCastle(White, QueenSide),
		BlackKingSide:    p.CastlingRights.CanCastle(Black, KingSide),
		BlackQueenSide:   p.CastlingRights.CanCastle(Black, QueenSide),
		EnPassant:        p.EnPassant.String(),
		HalfMoveClock:    p.HalfMoveClock,
		FullMoveNumber:   p.FullMoveNumber,
		PendingPromotion: p.PendingPromotion.String(),
		Hash:             p.Hash(),
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			s.Pieces[c][pt] = uint64(p.Pieces[c][pt])
		}
	}
	return s
}

// FromSnapshot rebuilds a Position and checks it against the stored hash
// and the board invariants.
func FromSnapshot(s Snapshot) (*Position, error) {
	p := NewEmptyPosition()
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			p.Pieces[c][pt] = Bitboard(s.Pieces[c][pt])
		}
	}

	if !s.WhiteToMove {
		p.SideToMove = Black
	}
	flags := [4]bool{s.WhiteKingSide, s.WhiteQueenSide, s.BlackKingSide, s.BlackQueenSide}
	for i, held := range flags {
		if held {
			p.CastlingRights |= WhiteKingSideCastle << i
		}
	}

	var err error
	if p.EnPassant, err = parseOptionalSquare(s.EnPassant); err != nil {
		return nil, fmt.Errorf("snapshot en passant: %w", err)
	}
	if p.PendingPromotion, err = parseOptionalSquare(s.PendingPromotion); err != nil {
		return nil, fmt.Errorf("snapshot pending promotion: %w", err)
	}
	p.HalfMoveClock = s.HalfMoveClock
	p.FullMoveNumber = s.FullMoveNumber

	if s.Hash != 0 && s.Hash != p.Hash() {
		return nil, fmt.Errorf("snapshot hash mismatch: stored %016x, computed %016x", s.Hash, p.Hash())
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return p, nil
}

func parseOptionalSquare(s string) (Square, error) {
	if s == "" || s == "-" {
		return NoSquare, nil
	}
	return ParseSquare(s)
}
