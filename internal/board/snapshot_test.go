package board

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	pos := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b Kq a3 3 21")

	data, err := json.Marshal(pos.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	got, err := FromSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *pos {
		t.Errorf("restored position differs:\n%v\nwant:\n%v", got, pos)
	}
}

func TestSnapshotKeepsPendingPromotion(t *testing.T) {
	pos := MustParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err := pos.Apply(NewMove(A7, A8, Pawn, White)); err != nil {
		t.Fatal(err)
	}

	snap := pos.Snapshot()
	if snap.PendingPromotion != "a8" {
		t.Errorf("PendingPromotion = %q, want a8", snap.PendingPromotion)
	}
	got, err := FromSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}
	if err := got.ResolvePromotion(Queen); err != nil {
		t.Fatal(err)
	}
	if got.PieceAt(A8) != WhiteQueen {
		t.Errorf("a8 holds %v, want white queen", got.PieceAt(A8))
	}
}

func TestFromSnapshotRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		want   string
	}{
		{"tampered hash", func(s *Snapshot) { s.Hash ^= 1 }, "hash mismatch"},
		{"moved piece without rehash", func(s *Snapshot) { s.Pieces[White][Knight] ^= uint64(SquareBB(G1) | SquareBB(F3)) }, "hash mismatch"},
		{"bad en passant", func(s *Snapshot) { s.EnPassant = "k9" }, "en passant"},
		{"overlap", func(s *Snapshot) {
			s.Pieces[Black][Queen] |= uint64(SquareBB(E1))
			s.Hash = 0
		}, "snapshot"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := NewPosition().Snapshot()
			tc.mutate(&snap)
			_, err := FromSnapshot(snap)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("FromSnapshot err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestHashIgnoresCounters(t *testing.T) {
	a := MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	b := MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 40 90")
	if a.Hash() != b.Hash() {
		t.Error("hash depends on move counters")
	}
	c := MustParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if a.Hash() == c.Hash() {
		t.Error("hash ignores side to move")
	}
}
