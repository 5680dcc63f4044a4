package board

import (
	"fmt"
	"log"
)

// Apply commits a generated move to the position.
//
// Apply does not re-check legality; offer only moves from LegalMoves or
// MovesFor. It refuses to run while a promotion is pending, when the move
// belongs to the side not on turn and when the origin square does not hold
// the moving piece.
func (p *Position) Apply(m Move) error {
	if p.AwaitingPromotion() {
		return fmt.Errorf("%w on %v", ErrPromotionPending, p.PendingPromotion)
	}
	if m.Player != p.SideToMove || m.Piece >= NoPieceType || !m.To.IsValid() ||
		!p.Pieces[m.Player][m.Piece].IsSet(m.From) {
		return fmt.Errorf("%w: %v %v on %v", ErrPieceMismatch, m.Player, m.Piece, m.From)
	}

	p.applyMove(m)

	if DebugMoveValidation {
		if err := p.Validate(); err != nil {
			log.Printf("APPLY INVALID: move=%v left position invalid: %v fen=%s", m, err, p.ToFEN())
		}
	}
	return nil
}

// applyMove performs the state changes of m in a fixed order. It is shared
// by Apply and by the scratch copies used for legality checks.
func (p *Position) applyMove(m Move) {
	us, them := m.Player, m.Player.Other()
	fromBB, toBB := SquareBB(m.From), SquareBB(m.To)

	// Clear en passant
	p.EnPassant = NoSquare

	// The victim is read before anything moves
	victim := p.PieceAt(m.To)

	// En passant: diagonal pawn move onto an empty square. The captured pawn
	// sits on the origin rank, destination file.
	if m.Piece == Pawn && victim == NoPiece && m.From.File() != m.To.File() {
		p.Pieces[them][Pawn] &^= SquareBB(NewSquare(m.To.File(), m.From.Rank()))
	}

	// Normal capture
	if victim != NoPiece {
		p.Pieces[victim.Color()][victim.Type()] &^= toBB
	}

	// Move the piece
	p.Pieces[us][m.Piece] ^= fromBB | toBB

	// Set en passant square for double pawn push
	if m.IsDoublePush() {
		p.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	// Castling moves the rook onto the king's transit square
	if m.IsCastling() {
		path := castlePaths[us][m.CastleSide()]
		p.Pieces[us][Rook] ^= SquareBB(path.rook) | SquareBB(path.transit)
	}

	// Promotion is deferred until ResolvePromotion
	if m.IsPromotion() {
		p.PendingPromotion = m.To
	}

	// Update castling rights
	if m.Piece == King {
		p.CastlingRights &^= castlingRight(us, KingSide) | castlingRight(us, QueenSide)
	}
	for _, side := range [2]CastleSide{KingSide, QueenSide} {
		if m.Piece == Rook && m.From == castlePaths[us][side].rook {
			p.CastlingRights &^= castlingRight(us, side)
		}
		if victim.Type() == Rook && m.To == castlePaths[victim.Color()][side].rook {
			p.CastlingRights &^= castlingRight(victim.Color(), side)
		}
	}

	// Switch side to move
	p.SideToMove = p.SideToMove.Other()
}

// ResolvePromotion replaces the pawn waiting on the back rank with a piece of
// type pt. The new piece belongs to the player who pushed the pawn, which is
// the opponent of the side now to move. The turn is not flipped again.
func (p *Position) ResolvePromotion(pt PieceType) error {
	if !p.AwaitingPromotion() {
		return ErrNoPendingPromotion
	}
	if !pt.IsPromotionTarget() {
		return fmt.Errorf("%w: %v", ErrInvalidPromotionKind, pt)
	}

	mover := p.SideToMove.Other()
	sq := p.PendingPromotion
	if !p.Pieces[mover][Pawn].IsSet(sq) {
		return fmt.Errorf("%w: no %v pawn on %v", ErrNoPendingPromotion, mover, sq)
	}

	p.Pieces[mover][Pawn] &^= SquareBB(sq)
	p.Pieces[mover][pt] |= SquareBB(sq)
	p.PendingPromotion = NoSquare
	return nil
}
