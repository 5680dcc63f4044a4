package board

import "testing"

func TestToSAN(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		promo PieceType
		want  string
	}{
		{"pawn push", StartFEN, "e2e4", NoPieceType, "e4"},
		{"knight", StartFEN, "g1f3", NoPieceType, "Nf3"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", NoPieceType, "exd5"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", NoPieceType, "exd6"},
		{"castle king side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", NoPieceType, "O-O"},
		{"castle queen side", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", NoPieceType, "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", NoPieceType, "Rad1"},
		{"rank disambiguation", "R3k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a4", NoPieceType, "R1a4+"},
		{"check", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", "d1d7", NoPieceType, "Qd7+"},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", Queen, "a8=Q+"},
		{"promotion pending", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", NoPieceType, "a8"},
		{"underpromotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", Knight, "a8=N"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			m, _, err := ParseMove(tc.move, pos)
			if err != nil {
				t.Fatal(err)
			}
			if got := m.ToSAN(pos, tc.promo); got != tc.want {
				t.Errorf("ToSAN = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseSAN(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		san       string
		want      string
		wantPromo PieceType
	}{
		{"pawn push", StartFEN, "e4", "e2e4", NoPieceType},
		{"knight", StartFEN, "Nf3", "g1f3", NoPieceType},
		{"castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "O-O-O", "e1c1", NoPieceType},
		{"castle zeros", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "0-0", "e8g8", NoPieceType},
		{"disambiguated", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "Rad1", "a1d1", NoPieceType},
		{"capture with check marker", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "exd5+", "e4d5", NoPieceType},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8=R", "a7a8", Rook},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			m, promo, err := ParseSAN(tc.san, pos)
			if err != nil {
				t.Fatal(err)
			}
			if m.String() != tc.want || promo != tc.wantPromo {
				t.Errorf("ParseSAN(%q) = %v,%v; want %s,%v", tc.san, m, promo, tc.want, tc.wantPromo)
			}
		})
	}
}

func TestParseSANErrors(t *testing.T) {
	pos := NewPosition()
	for _, s := range []string{"", "e5", "Nf4", "O-O", "Xe4", "e8=K", "a8="} {
		if m, _, err := ParseSAN(s, pos); err == nil {
			t.Errorf("ParseSAN(%q) = %v, want error", s, m)
		}
	}
}

func TestSANRoundTrip(t *testing.T) {
	pos := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	for _, m := range pos.LegalMoves().Slice() {
		san := m.ToSAN(pos, NoPieceType)
		back, _, err := ParseSAN(san, pos)
		if err != nil {
			t.Errorf("ParseSAN(%q) for %v: %v", san, m, err)
			continue
		}
		if back != m {
			t.Errorf("ParseSAN(ToSAN(%v)) = %v via %q", m, back, san)
		}
	}
}
