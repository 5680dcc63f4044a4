package board

import "testing"

func TestSquareBB(t *testing.T) {
	if SquareBB(NoSquare) != Empty {
		t.Error("SquareBB(NoSquare) is not empty")
	}
	if SquareBB(A1) != 1 || SquareBB(H8) != 1<<63 {
		t.Error("SquareBB corner bits wrong")
	}
	if Rank1.PopCount() != 8 || !Rank8.IsSet(E8) || Rank8.IsSet(E1) {
		t.Error("back-rank masks wrong")
	}
}

func TestPopLSB(t *testing.T) {
	bb := SquareBB(C3) | SquareBB(A1) | SquareBB(H8)
	var got []Square
	for bb != 0 {
		got = append(got, bb.PopLSB())
	}
	want := []Square{A1, C3, H8}
	if len(got) != len(want) {
		t.Fatalf("PopLSB order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PopLSB order = %v, want %v", got, want)
		}
	}
	if Empty.LSB() != NoSquare {
		t.Error("LSB of empty board should be NoSquare")
	}
}
