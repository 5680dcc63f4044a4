package board

import "fmt"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// This is the standard way to verify move generation correctness.
//
// A promotion is a single move here since the piece is chosen afterwards;
// children resolve it to a queen. The counts therefore match published
// tables only while no pawn reaches the last rank.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		nodes += Perft(pos.child(moves.Get(i)), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its
// coordinate form.
func Divide(pos *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth < 1 {
		return result
	}
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		result[m.String()] = Perft(pos.child(m), depth-1)
	}
	return result
}

// child returns a copy of p with m applied and any promotion resolved.
func (p *Position) child(m Move) *Position {
	next := p.Copy()
	next.applyMove(m)
	if next.AwaitingPromotion() {
		if err := next.ResolvePromotion(Queen); err != nil {
			panic(fmt.Sprintf("board: perft child %v: %v", m, err))
		}
	}
	return next
}
