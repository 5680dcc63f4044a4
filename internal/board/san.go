package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
// promo is the piece a promoting pawn becomes, or NoPieceType when the move
// does not promote or the choice is not known yet.
func (m Move) ToSAN(pos *Position, promo PieceType) string {
	if m == NoMove {
		return "-"
	}

	var sb strings.Builder

	if m.IsCastling() {
		sb.WriteString(m.CastleSide().String())
	} else {
		pt := m.Piece

		// Piece letter (not for pawns)
		if pt != Pawn {
			sb.WriteByte(pt.Letter())
			sb.WriteString(getDisambiguation(pos, m))
		}

		if m.IsCapture(pos) {
			if pt == Pawn {
				// Pawn captures include the file of origin
				sb.WriteByte('a' + byte(m.From.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(m.To.String())

		if m.IsPromotion() && promo.IsPromotionTarget() {
			sb.WriteByte('=')
			sb.WriteByte(promo.Letter())
		}
	}

	// Check marker, worked out on a copy
	next := pos.Copy()
	next.applyMove(m)
	if next.AwaitingPromotion() && promo.IsPromotionTarget() {
		if err := next.ResolvePromotion(promo); err != nil {
			panic(fmt.Sprintf("board: ToSAN(%v): %v", m, err))
		}
	}
	if next.IsKingInCheck(m.Player.Other()) {
		sb.WriteByte('+')
	}

	return sb.String()
}

// getDisambiguation returns the disambiguation string needed for a move.
func getDisambiguation(pos *Position, m Move) string {
	var candidates []Square

	allMoves := pos.LegalMoves()
	for _, other := range allMoves.Slice() {
		if other.To != m.To || other.From == m.From || other.Piece != m.Piece {
			continue
		}
		candidates = append(candidates, other.From)
	}

	// No ambiguity
	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == m.From.File() {
			sameFile = true
		}
		if sq.Rank() == m.From.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + m.From.File()))
	}
	if !sameRank {
		return string(rune('1' + m.From.Rank()))
	}
	return m.From.String()
}

// ParseSAN parses a SAN string against the legal moves of pos. It returns the
// move and the promotion piece named after "=", if any.
func ParseSAN(s string, pos *Position) (Move, PieceType, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	moves := pos.LegalMoves()

	// Handle castling
	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		side := KingSide
		if len(s) == 5 {
			side = QueenSide
		}
		path := castlePaths[pos.SideToMove][side]
		if m, ok := moves.Find(path.king, path.dest); ok && m.Piece == King {
			return m, NoPieceType, nil
		}
		return NoMove, NoPieceType, fmt.Errorf("illegal castling: %q", orig)
	}

	// Parse promotion
	promo := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPromotionKind, orig)
		}
		var err error
		if promo, err = PromotionFromChar(s[idx+1]); err != nil {
			return NoMove, NoPieceType, err
		}
		s = s[:idx]
	}

	// Remove capture marker
	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	// Determine piece type
	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		switch s[0] {
		case 'N':
			pt = Knight
		case 'B':
			pt = Bishop
		case 'R':
			pt = Rook
		case 'Q':
			pt = Queen
		case 'K':
			pt = King
		default:
			return NoMove, NoPieceType, fmt.Errorf("invalid piece letter in %q", orig)
		}
		s = s[1:]
	}

	// Parse destination (last 2 characters)
	if len(s) < 2 {
		return NoMove, NoPieceType, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, NoPieceType, err
	}
	s = s[:len(s)-2]

	// Parse disambiguation (file, rank, or both)
	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	for _, m := range moves.Slice() {
		if m.To != dest || m.Piece != pt || m.IsCastling() {
			continue
		}
		if disambigFile >= 0 && m.From.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && m.From.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture(pos) {
			continue
		}
		if m.IsPromotion() != (promo != NoPieceType) {
			continue
		}
		return m, promo, nil
	}

	return NoMove, NoPieceType, fmt.Errorf("no legal move matches %q", orig)
}
