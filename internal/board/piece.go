package board

import (
	"fmt"
	"strings"
)

// Color identifies a player. White moves first and pushes pawns toward
// rank 8.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is one of the six piece kinds. Generation and application
// switch over it exhaustively.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// pieceChars holds the FEN letters indexed by Piece: white first, then black.
const pieceChars = "PNBRQKpnbrqk"

var pieceTypeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

// Letter returns the uppercase SAN letter of the type, or ' ' for NoPieceType.
func (pt PieceType) Letter() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceChars[pt]
}

// Char returns the lowercase FEN letter of the type.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return pieceChars[pt+6]
}

// IsPromotionTarget reports whether a pawn may be replaced by this type.
func (pt PieceType) IsPromotionTarget() bool {
	return pt >= Knight && pt <= Queen
}

// PromotionFromChar maps a promotion letter (either case) to its piece type.
func PromotionFromChar(c byte) (PieceType, error) {
	if p := PieceFromChar(c); p.Type().IsPromotionTarget() {
		return p.Type(), nil
	}
	return NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPromotionKind, c)
}

// Piece is a PieceType owned by a Color, encoded as pieceType + color*6.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar converts a FEN letter to a Piece, or NoPiece.
func PieceFromChar(c byte) Piece {
	i := strings.IndexByte(pieceChars, c)
	if i < 0 {
		return NoPiece
	}
	return Piece(i)
}
