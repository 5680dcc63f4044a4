package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrEmptyFEN is returned when there is nothing to import.
var ErrEmptyFEN = errors.New("empty FEN")

// ParseFEN parses a FEN string and returns a Position.
//
// Import is lenient: a malformed field falls back to its default (White to
// move, no castling, no en passant, clocks 0 and 1) instead of failing the
// whole import. The returned error joins every problem found; the position
// is still usable. Only an empty string yields a nil position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, ErrEmptyFEN
	}

	pos := NewEmptyPosition()
	var errs []error

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		errs = append(errs, err)
	}

	// Parse side to move (field 1)
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			pos.SideToMove = White
		case "b":
			pos.SideToMove = Black
		default:
			errs = append(errs, fmt.Errorf("invalid side to move: %q", parts[1]))
		}
	}

	// Parse castling rights (field 2)
	if len(parts) > 2 {
		if err := parseCastlingRights(pos, parts[2]); err != nil {
			errs = append(errs, err)
		}
	}

	// Parse en passant square (field 3); "_" is accepted as an alias for "-"
	if len(parts) > 3 && parts[3] != "-" && parts[3] != "_" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid en passant square: %w", err))
		} else {
			pos.EnPassant = sq
		}
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			errs = append(errs, fmt.Errorf("invalid half-move clock: %q", parts[4]))
		} else {
			pos.HalfMoveClock = hmc
		}
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			errs = append(errs, fmt.Errorf("invalid full-move number: %q", parts[5]))
		} else {
			pos.FullMoveNumber = fmn
		}
	}

	return pos, errors.Join(errs...)
}

// MustParseFEN is like ParseFEN but panics on any problem.
func MustParseFEN(fen string) *Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(fmt.Sprintf("board: MustParseFEN(%q): %v", fen, err))
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
// Squares it cannot make sense of are left empty.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.CastlingRights = NoCastling
		return nil
	}

	var cr CastlingRights
	for _, c := range castling {
		switch c {
		case 'K':
			cr |= WhiteKingSideCastle
		case 'Q':
			cr |= WhiteQueenSideCastle
		case 'k':
			cr |= BlackKingSideCastle
		case 'q':
			cr |= BlackQueenSideCastle
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}
	pos.CastlingRights = cr

	return nil
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	return sb.String()
}
