package board

import "fmt"

// Move is an immutable record of a single piece displacement.
// It is produced by the generator and consumed once by Apply.
// Castling is expressed as the king moving two files; en passant as a pawn
// moving diagonally onto an empty square. Promotion is not part of the move:
// it is chosen afterwards through ResolvePromotion.
type Move struct {
	From   Square
	To     Square
	Piece  PieceType
	Player Color
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPieceType, Player: NoColor}

// NewMove creates a move of piece pt owned by c.
func NewMove(from, to Square, pt PieceType, c Color) Move {
	return Move{From: from, To: to, Piece: pt, Player: c}
}

// IsCastling returns true if this is a king moving two files.
func (m Move) IsCastling() bool {
	return m.Piece == King && abs(m.To.File()-m.From.File()) == 2
}

// CastleSide returns the wing of a castling move.
func (m Move) CastleSide() CastleSide {
	if m.To.File() > m.From.File() {
		return KingSide
	}
	return QueenSide
}

// IsDoublePush returns true for a pawn advancing two ranks.
func (m Move) IsDoublePush() bool {
	return m.Piece == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2
}

// IsDiagonalPawnMove returns true for a pawn changing file (a capture).
func (m Move) IsDiagonalPawnMove() bool {
	return m.Piece == Pawn && m.From.File() != m.To.File()
}

// IsEnPassant returns true if the move is an en-passant capture in pos.
func (m Move) IsEnPassant(pos *Position) bool {
	return m.IsDiagonalPawnMove() && pos.IsEmpty(m.To)
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant(pos) {
		return true
	}
	return pos.OccupiedBy(m.Player.Other()).IsSet(m.To)
}

// IsPromotion returns true if the move brings a pawn to its last rank.
func (m Move) IsPromotion() bool {
	return m.Piece == Pawn && m.To.RelativeRank(m.Player) == 7
}

// String returns the coordinate form of the move (e.g., "e2e4").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// ParseMove parses a coordinate move string ("e2e4" or "e7e8q") against pos.
// The returned promotion type is NoPieceType unless a fifth letter is given.
func ParseMove(s string, pos *Position) (Move, PieceType, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, NoPieceType, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, NoPieceType, err
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, NoPieceType, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		promo, err = PromotionFromChar(s[4])
		if err != nil {
			return NoMove, NoPieceType, err
		}
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, NoPieceType, fmt.Errorf("%w: %s", ErrEmptySquareQuery, from)
	}

	return NewMove(from, to, piece.Type(), piece.Color()), promo, nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Find returns the move from -> to, if present.
func (ml *MoveList) Find(from, to Square) (Move, bool) {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].From == from && ml.moves[i].To == to {
			return ml.moves[i], true
		}
	}
	return NoMove, false
}

// Destinations returns the union of all target squares, for highlighting.
func (ml *MoveList) Destinations() Bitboard {
	var bb Bitboard
	for i := 0; i < ml.count; i++ {
		bb |= SquareBB(ml.moves[i].To)
	}
	return bb
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
