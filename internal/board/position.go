package board

import (
	"fmt"
	"strings"
)

// DebugMoveValidation enables consistency checks after every applied move.
// Problems are reported through log.Printf; nothing is repaired.
var DebugMoveValidation = false

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// CastleSide selects the wing a king castles toward.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// String returns the castling notation for the side.
func (s CastleSide) String() string {
	if s == KingSide {
		return "O-O"
	}
	return "O-O-O"
}

// castlingRight returns the single flag for a color and side.
func castlingRight(c Color, side CastleSide) CastlingRights {
	switch {
	case c == White && side == KingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case side == KingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side still holds the right to castle
// in the given direction. It says nothing about the current board.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&castlingRight(c, side) != 0
}

// Position is the authoritative board state.
//
// The twelve piece bitboards are the only placement data; occupancy is
// derived on demand so there is nothing to fall out of sync. A Position is
// never copied implicitly: what-if exploration goes through Copy.
type Position struct {
	// Piece bitboards: [Color][PieceType], pairwise disjoint.
	Pieces [2][6]Bitboard

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Carried from import, not touched by Apply
	FullMoveNumber int    // Carried from import, not touched by Apply

	// PendingPromotion is the square of a pawn that reached the back rank on
	// the last applied move and still waits for its replacement, or NoSquare.
	PendingPromotion Square
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// NewEmptyPosition creates an empty board with White to move.
func NewEmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:        NoSquare,
		FullMoveNumber:   1,
		PendingPromotion: NoSquare,
	}
}

// Place puts a piece of the given type and color on sq. Whatever stood there
// before is removed so the piece sets stay disjoint.
func (p *Position) Place(pt PieceType, c Color, sq Square) {
	if pt >= NoPieceType || c >= NoColor || !sq.IsValid() {
		return
	}
	p.removePiece(sq)
	p.Pieces[c][pt] |= SquareBB(sq)
}

// setPiece places a combined piece value, ignoring NoPiece.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	p.Place(piece.Type(), piece.Color(), sq)
}

// removePiece clears sq in every set and returns what was there.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}
	p.Pieces[piece.Color()][piece.Type()] &^= SquareBB(sq)
	return piece
}

// OccupiedBy returns every square holding a piece of color c.
func (p *Position) OccupiedBy(c Color) Bitboard {
	var bb Bitboard
	for pt := Pawn; pt <= King; pt++ {
		bb |= p.Pieces[c][pt]
	}
	return bb
}

// AllOccupied returns every occupied square.
func (p *Position) AllOccupied() Bitboard {
	return p.OccupiedBy(White) | p.OccupiedBy(Black)
}

// EmptySquares returns every unoccupied square.
func (p *Position) EmptySquares() Bitboard {
	return ^p.AllOccupied()
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if bb == 0 {
		return NoPiece
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if p.Pieces[c][pt]&bb != 0 {
				return NewPiece(pt, c)
			}
		}
	}
	return NoPiece
}

// PieceAtRowCol returns the piece at drawn-board coordinates.
func (p *Position) PieceAtRowCol(row, col int) Piece {
	return p.PieceAt(SquareAt(row, col))
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied()&SquareBB(sq) == 0
}

// OccupiedAt reports whether (row, col) blocks movement. Coordinates off the
// board count as occupied so rays and steps stop at the edge.
func (p *Position) OccupiedAt(row, col int) bool {
	if !InBounds(row, col) {
		return true
	}
	return p.AllOccupied()&RowColBB(row, col) != 0
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.SideToMove
}

// AwaitingPromotion reports whether a pawn on the back rank still needs a
// replacement piece. While true, no further move may be generated or applied.
func (p *Position) AwaitingPromotion() bool {
	return p.PendingPromotion != NoSquare
}

// KingSquare returns the square of c's king, or NoSquare if there is none.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}

// Validate checks if the position is valid.
func (p *Position) Validate() error {
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			if seen&bb != 0 {
				return fmt.Errorf("piece sets overlap on %v", (seen & bb).LSB())
			}
			seen |= bb
		}
	}

	if p.Pieces[White][King].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}

	// The promoting pawn legitimately sits on the back rank until resolved.
	pawns := (p.Pieces[White][Pawn] | p.Pieces[Black][Pawn]) &^ SquareBB(p.PendingPromotion)
	if pawns&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}

	if p.AwaitingPromotion() {
		mover := p.SideToMove.Other()
		if !p.Pieces[mover][Pawn].IsSet(p.PendingPromotion) {
			return fmt.Errorf("pending promotion on %v without a %v pawn", p.PendingPromotion, mover)
		}
	}

	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Pending promotion: %s\n", p.PendingPromotion)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}
