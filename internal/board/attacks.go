package board

// PawnAttacks returns every square c's pawns attack diagonally, whether or
// not anything stands there.
func (p *Position) PawnAttacks(c Color) Bitboard {
	var attacks Bitboard
	dir := pawnDirection(c)
	pawns := p.Pieces[c][Pawn]
	for pawns != 0 {
		sq := pawns.PopLSB()
		row, col := sq.Row(), sq.Col()
		attacks |= RowColBB(row+dir, col-1) | RowColBB(row+dir, col+1)
	}
	return attacks
}

// AttackedSquares returns every square attacker could capture on.
//
// It regenerates the attacker's castling-free pseudo-legal moves, drops the
// pawn moves (pushes never capture) and adds the pawn attack set instead.
// Regenerating per query is slow but cannot recurse into castling.
func (p *Position) AttackedSquares(attacker Color) Bitboard {
	attacks := p.PawnAttacks(attacker)
	ml := p.PseudoLegalMovesNoCastling(attacker)
	for _, m := range ml.Slice() {
		if m.Piece == Pawn {
			continue
		}
		attacks |= SquareBB(m.To)
	}
	return attacks
}

// IsSquareAttackedBy returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttackedBy(sq Square, attacker Color) bool {
	return p.AttackedSquares(attacker).IsSet(sq)
}

// IsKingInCheck returns true if c's king is attacked by the other side.
// A side without a king is never in check.
func (p *Position) IsKingInCheck(c Color) bool {
	ksq := p.KingSquare(c)
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttackedBy(ksq, c.Other())
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsKingInCheck(p.SideToMove)
}
