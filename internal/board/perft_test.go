package board

import (
	"fmt"
	"testing"
)

type perftCase struct {
	depth    int
	expected uint64
	slow     bool
}

func runPerft(t *testing.T, fen string, tests []perftCase) {
	t.Helper()
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("depth%d", tc.depth), func(t *testing.T) {
			if tc.slow && testing.Short() {
				t.Skip("slow perft depth")
			}
			got := Perft(pos, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	runPerft(t, StartFEN, []perftCase{
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, true},
	})
}

// TestPerftKiwipete tests the famous Kiwipete position with many edge cases.
func TestPerftKiwipete(t *testing.T) {
	runPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []perftCase{
		{1, 48, false},
		{2, 2039, false},
		{3, 97862, true},
	})
}

// TestPerftPosition3 tests en passant edge cases.
func TestPerftPosition3(t *testing.T) {
	runPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []perftCase{
		{1, 14, false},
		{2, 191, false},
		{3, 2812, false},
		{4, 43238, true},
	})
}

// TestPerftEnPassantPin tests the en passant horizontal pin edge case.
// The black pawn on e4 could take d3 en passant, but that would expose the
// king on a4 to the rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	pos := MustParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")

	for _, m := range pos.LegalMoves().Slice() {
		if m.IsEnPassant(pos) {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	runPerft(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []perftCase{
		{1, 6, false},
		{2, 94, false},
	})
}

// TestPerftPromotion walks through a promotion. Promotions count once,
// resolved to a queen: depth 2 is 5 king moves times 5 replies plus a8=Q+
// with three escapes.
func TestPerftPromotion(t *testing.T) {
	runPerft(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", []perftCase{
		{1, 6, false},
		{2, 28, false},
	})
}

func TestDivideSumsToPerft(t *testing.T) {
	pos := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	div := Divide(pos, 2)
	if len(div) != 48 {
		t.Fatalf("Divide has %d root moves, want 48", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Errorf("Divide sums to %d, want 2039", sum)
	}
	if div["e1g1"] == 0 {
		t.Error("castling missing from Divide")
	}
}
