package board

import "testing"

func TestPlaceKeepsSetsDisjoint(t *testing.T) {
	pos := NewEmptyPosition()
	pos.Place(Knight, White, D4)
	pos.Place(Queen, Black, D4)

	if pos.Pieces[White][Knight] != 0 {
		t.Errorf("white knight survived being overwritten")
	}
	if got := pos.PieceAt(D4); got != BlackQueen {
		t.Errorf("PieceAt(d4) = %v, want q", got)
	}
	assertDisjoint(t, pos)
}

func TestOccupancyQueries(t *testing.T) {
	pos := NewPosition()

	if got := pos.OccupiedBy(White); got != Bitboard(0x000000000000FFFF) {
		t.Errorf("OccupiedBy(White) =\n%v", got)
	}
	if got := pos.OccupiedBy(Black); got != Bitboard(0xFFFF000000000000) {
		t.Errorf("OccupiedBy(Black) =\n%v", got)
	}
	if got := pos.EmptySquares().PopCount(); got != 32 {
		t.Errorf("EmptySquares has %d squares, want 32", got)
	}
	if got := pos.PieceAtRowCol(7, 4); got != WhiteKing {
		t.Errorf("PieceAtRowCol(7, 4) = %v, want K", got)
	}
}

func TestOccupiedAtTreatsOffBoardAsBlocked(t *testing.T) {
	pos := NewEmptyPosition()

	if pos.OccupiedAt(3, 3) {
		t.Errorf("empty square reported occupied")
	}
	for _, rc := range [][2]int{{-1, 0}, {8, 0}, {0, -1}, {0, 8}} {
		if !pos.OccupiedAt(rc[0], rc[1]) {
			t.Errorf("OccupiedAt(%d, %d) = false, want true off the board", rc[0], rc[1])
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition()
	scratch := pos.Copy()
	scratch.Place(Queen, Black, E4)
	scratch.SideToMove = Black

	if !pos.IsEmpty(E4) || pos.SideToMove != White {
		t.Errorf("mutating the copy changed the original")
	}
}

func TestValidate(t *testing.T) {
	if err := NewPosition().Validate(); err != nil {
		t.Fatalf("start position invalid: %v", err)
	}

	pos := NewPosition()
	pos.Pieces[Black][Pawn] |= SquareBB(E1)
	if err := pos.Validate(); err == nil {
		t.Errorf("overlapping sets not reported")
	}

	pos = MustParseFEN("4k3/8/8/8/8/8/8/8 w - - 0 1")
	if err := pos.Validate(); err == nil {
		t.Errorf("missing white king not reported")
	}
}

// assertDisjoint fails if any two of the twelve piece sets share a square.
func assertDisjoint(t *testing.T, pos *Position) {
	t.Helper()
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if seen&pos.Pieces[c][pt] != 0 {
				t.Fatalf("%v %v overlaps another set:\n%v", c, pt, pos)
			}
			seen |= pos.Pieces[c][pt]
		}
	}
}
