package board

import "errors"

// Contract violations. Callers are expected to never trigger these when they
// only offer moves produced by the generator.
var (
	// ErrEmptySquareQuery is returned when moves are requested for an empty
	// square or for a piece that does not belong to the side to move.
	ErrEmptySquareQuery = errors.New("no piece of the side to move on square")

	// ErrNoPendingPromotion is returned by ResolvePromotion when no pawn is
	// waiting on the back rank.
	ErrNoPendingPromotion = errors.New("no promotion pending")

	// ErrInvalidPromotionKind is returned for Pawn, King or unknown
	// replacement kinds.
	ErrInvalidPromotionKind = errors.New("invalid promotion piece")

	// ErrPromotionPending is returned when a move is generated or applied
	// before the pending promotion has been resolved.
	ErrPromotionPending = errors.New("promotion pending")

	// ErrPieceMismatch is returned by Apply when the origin square does not
	// hold the piece described by the move.
	ErrPieceMismatch = errors.New("move does not match board")
)
