package board

import "fmt"

// offset is a (row, col) step on the drawn board. Negative rows head toward
// rank 8.
type offset struct {
	dr, dc int
}

var (
	knightOffsets = [8]offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}

	// Exactly the eight distinct unit steps.
	kingOffsets = [8]offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}

	bishopDirections = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirections   = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirections  = append(append([]offset{}, bishopDirections...), rookDirections...)
)

// castlePath describes one castling option. The rook lands on the king's
// transit square.
type castlePath struct {
	king, rook    Square
	transit, dest Square
	between       Bitboard // squares strictly between king and rook
}

var castlePaths = [2][2]castlePath{
	White: {
		KingSide:  {king: E1, rook: H1, transit: F1, dest: G1, between: SquareBB(F1) | SquareBB(G1)},
		QueenSide: {king: E1, rook: A1, transit: D1, dest: C1, between: SquareBB(B1) | SquareBB(C1) | SquareBB(D1)},
	},
	Black: {
		KingSide:  {king: E8, rook: H8, transit: F8, dest: G8, between: SquareBB(F8) | SquareBB(G8)},
		QueenSide: {king: E8, rook: A8, transit: D8, dest: C8, between: SquareBB(B8) | SquareBB(C8) | SquareBB(D8)},
	},
}

// pawnDirection returns the row step of c's pawns.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow returns the row c's pawns start on.
func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// PseudoLegalMoves generates every pseudo-legal move of c, castling included.
func (p *Position) PseudoLegalMoves(c Color) *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml, c, true)
	return ml
}

// PseudoLegalMovesNoCastling generates the pseudo-legal moves of c without
// castling. Attack detection relies on this never consulting attack
// detection itself.
func (p *Position) PseudoLegalMovesNoCastling(c Color) *MoveList {
	ml := NewMoveList()
	p.generateAllMoves(ml, c, false)
	return ml
}

// LegalMoves generates every legal move for the side to move. It is empty
// while a promotion is pending.
func (p *Position) LegalMoves() *MoveList {
	if p.AwaitingPromotion() {
		return NewMoveList()
	}
	ml := NewMoveList()
	p.generateAllMoves(ml, p.SideToMove, true)
	return p.filterLegalMoves(ml)
}

// MovesFor returns the legal moves of the piece standing on sq.
func (p *Position) MovesFor(sq Square) (*MoveList, error) {
	if p.AwaitingPromotion() {
		return nil, fmt.Errorf("%w on %v", ErrPromotionPending, p.PendingPromotion)
	}
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return nil, fmt.Errorf("%w: %v is empty", ErrEmptySquareQuery, sq)
	}
	if piece.Color() != p.SideToMove {
		return nil, fmt.Errorf("%w: %v holds a %v piece, %v to move",
			ErrEmptySquareQuery, sq, piece.Color(), p.SideToMove)
	}

	ml := NewMoveList()
	p.generatePieceMoves(ml, piece.Color(), piece.Type(), SquareBB(sq))
	if piece.Type() == King {
		p.generateCastlingMoves(ml, piece.Color())
	}
	return p.filterLegalMoves(ml), nil
}

// IsLegal reports whether a generated move leaves the mover's king safe.
// The move is tried on a scratch copy; p is never modified.
func (p *Position) IsLegal(m Move) bool {
	scratch := p.Copy()
	scratch.applyMove(m)
	return !scratch.IsKingInCheck(m.Player)
}

// filterLegalMoves keeps the moves that pass IsLegal.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// generateAllMoves generates all pseudo-legal moves of c.
func (p *Position) generateAllMoves(ml *MoveList, c Color, castling bool) {
	for pt := Pawn; pt <= King; pt++ {
		p.generatePieceMoves(ml, c, pt, Universe)
	}
	if castling {
		p.generateCastlingMoves(ml, c)
	}
}

// generatePieceMoves generates the moves of c's pieces of type pt that stand
// on a square in mask.
func (p *Position) generatePieceMoves(ml *MoveList, c Color, pt PieceType, mask Bitboard) {
	pieces := p.Pieces[c][pt] & mask
	if pieces == 0 {
		return
	}

	switch pt {
	case Pawn:
		p.generatePawnMoves(ml, c, pieces)
	case Knight:
		p.generateStepMoves(ml, c, Knight, pieces, knightOffsets[:])
	case Bishop:
		p.generateSlidingMoves(ml, c, Bishop, pieces, bishopDirections)
	case Rook:
		p.generateSlidingMoves(ml, c, Rook, pieces, rookDirections)
	case Queen:
		p.generateSlidingMoves(ml, c, Queen, pieces, queenDirections)
	case King:
		p.generateStepMoves(ml, c, King, pieces, kingOffsets[:])
	default:
		panic(fmt.Sprintf("board: no move rules for piece type %d", pt))
	}
}

// generatePawnMoves generates pushes, double pushes, captures and en-passant
// captures. Promotion is handled when the move is applied.
func (p *Position) generatePawnMoves(ml *MoveList, c Color, pawns Bitboard) {
	them := c.Other()
	enemies := p.OccupiedBy(them)
	dir := pawnDirection(c)

	for pawns != 0 {
		from := pawns.PopLSB()
		row, col := from.Row(), from.Col()

		// Single and double pushes
		if !p.OccupiedAt(row+dir, col) {
			ml.Add(NewMove(from, SquareAt(row+dir, col), Pawn, c))
			if row == pawnStartRow(c) && !p.OccupiedAt(row+2*dir, col) {
				ml.Add(NewMove(from, SquareAt(row+2*dir, col), Pawn, c))
			}
		}

		// Captures, each diagonal checked on its own so files never wrap
		for _, dc := range [2]int{-1, 1} {
			if !InBounds(row+dir, col+dc) {
				continue
			}
			to := SquareAt(row+dir, col+dc)
			if enemies.IsSet(to) {
				ml.Add(NewMove(from, to, Pawn, c))
				continue
			}
			// En passant: the victim sits beside us on the origin row
			if to == p.EnPassant && p.Pieces[them][Pawn].IsSet(SquareAt(row, col+dc)) {
				ml.Add(NewMove(from, to, Pawn, c))
			}
		}
	}
}

// generateStepMoves generates single-step moves from a fixed offset table.
func (p *Position) generateStepMoves(ml *MoveList, c Color, pt PieceType, pieces Bitboard, offsets []offset) {
	friends := p.OccupiedBy(c)
	for pieces != 0 {
		from := pieces.PopLSB()
		row, col := from.Row(), from.Col()
		for _, o := range offsets {
			to := SquareAt(row+o.dr, col+o.dc)
			if to == NoSquare || friends.IsSet(to) {
				continue
			}
			ml.Add(NewMove(from, to, pt, c))
		}
	}
}

// generateSlidingMoves ray-casts along each direction until the edge or a
// blocker; an enemy blocker is included as a capture.
func (p *Position) generateSlidingMoves(ml *MoveList, c Color, pt PieceType, pieces Bitboard, dirs []offset) {
	enemies := p.OccupiedBy(c.Other())
	for pieces != 0 {
		from := pieces.PopLSB()
		row, col := from.Row(), from.Col()
		for _, d := range dirs {
			for step := 1; ; step++ {
				r, f := row+d.dr*step, col+d.dc*step
				if p.OccupiedAt(r, f) {
					// Off-board counts as occupied and ends the ray.
					if to := SquareAt(r, f); enemies.IsSet(to) {
						ml.Add(NewMove(from, to, pt, c))
					}
					break
				}
				ml.Add(NewMove(from, SquareAt(r, f), pt, c))
			}
		}
	}
}

// generateCastlingMoves adds the castling moves available to c.
func (p *Position) generateCastlingMoves(ml *MoveList, c Color) {
	for _, side := range [2]CastleSide{KingSide, QueenSide} {
		if p.CanCastle(c, side) {
			path := castlePaths[c][side]
			ml.Add(NewMove(path.king, path.dest, King, c))
		}
	}
}

// CanCastle reports whether c may castle toward side right now: the right is
// held, king and rook are home, the squares between them are empty, and the
// king neither starts in, passes through, nor lands on an attacked square.
func (p *Position) CanCastle(c Color, side CastleSide) bool {
	if !p.CastlingRights.CanCastle(c, side) {
		return false
	}

	path := castlePaths[c][side]
	if !p.Pieces[c][King].IsSet(path.king) || !p.Pieces[c][Rook].IsSet(path.rook) {
		return false
	}
	if p.AllOccupied()&path.between != 0 {
		return false
	}

	attacked := p.AttackedSquares(c.Other())
	return attacked&(SquareBB(path.king)|SquareBB(path.transit)|SquareBB(path.dest)) == 0
}

// CanCastleKingSide reports whether c may castle short.
func (p *Position) CanCastleKingSide(c Color) bool {
	return p.CanCastle(c, KingSide)
}

// CanCastleQueenSide reports whether c may castle long.
func (p *Position) CanCastleQueenSide(c Color) bool {
	return p.CanCastle(c, QueenSide)
}
