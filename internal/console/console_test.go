package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

func run(t *testing.T, c *Console, out *bytes.Buffer, script string) string {
	t.Helper()
	out.Reset()
	if err := c.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(game.NewManager(nil), nil, &out), &out
}

func TestPositionAndFEN(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "position startpos moves e2e4 e7e5 g1f3\nfen\n")
	if !strings.Contains(got, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 0 1") {
		t.Errorf("unexpected output:\n%s", got)
	}

	got = run(t, c, out, "position fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1g1\nfen\n")
	if !strings.Contains(got, "4k3/8/8/8/8/8/8/5RK1 b - - 0 1") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestPositionErrors(t *testing.T) {
	c, out := newConsole(t)
	before := c.Current()

	for _, line := range []string{
		"position",
		"position sideways",
		"position fen 4k3/8 w",
		"position startpos moves e2e5",
	} {
		got := run(t, c, out, line+"\n")
		if !strings.HasPrefix(got, "error:") {
			t.Errorf("%q: output %q, want an error", line, got)
		}
	}
	if c.Current() != before {
		t.Error("failed position command replaced the current game")
	}
}

func TestMovesCommand(t *testing.T) {
	c, out := newConsole(t)

	got := strings.Fields(run(t, c, out, "moves g1\n"))
	if len(got) != 2 || got[0] != "g1f3" && got[0] != "g1h3" {
		t.Errorf("moves g1 = %v", got)
	}

	got = strings.Fields(run(t, c, out, "moves\n"))
	if len(got) != 20 {
		t.Errorf("moves = %d entries, want 20", len(got))
	}

	if s := run(t, c, out, "moves e5\n"); !strings.HasPrefix(s, "error:") {
		t.Errorf("moves on empty square: %q", s)
	}
}

func TestMoveReportsState(t *testing.T) {
	c, out := newConsole(t)

	got := run(t, c, out, "move f2f3\nmove e7e5\nmove g2g4\nmove d8h4\n")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 4 || lines[3] != "checkmate, Black wins" {
		t.Errorf("output:\n%s", got)
	}

	if s := run(t, c, out, "move a2a3\n"); !strings.HasPrefix(s, "error:") {
		t.Errorf("move after mate: %q", s)
	}
}

func TestPromoteCommand(t *testing.T) {
	c, out := newConsole(t)
	run(t, c, out, "position fen 4k3/P7/8/8/8/8/8/4K3 w - - 0 1\n")

	if got := run(t, c, out, "move a7a8\n"); got != "promote? (q r b n)\n" {
		t.Errorf("move a7a8 output %q", got)
	}
	if got := run(t, c, out, "move e8d7\n"); !strings.HasPrefix(got, "error:") {
		t.Errorf("move while pending: %q", got)
	}
	if got := run(t, c, out, "promote k\n"); !strings.HasPrefix(got, "error:") {
		t.Errorf("promote k: %q", got)
	}
	if got := run(t, c, out, "promote q\n"); got != "check\n" {
		t.Errorf("promote q output %q", got)
	}
	if got := run(t, c, out, "history\n"); got != "1. a8=Q+\n" {
		t.Errorf("history output %q", got)
	}
}

func TestPerftCommand(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "perft 2\n")
	if !strings.Contains(got, "Nodes: 400") {
		t.Errorf("perft output:\n%s", got)
	}
	if got := run(t, c, out, "perft x\n"); !strings.HasPrefix(got, "error:") {
		t.Errorf("perft x: %q", got)
	}
}

func TestSaveLoadList(t *testing.T) {
	store, err := storage.Open(storage.Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var out bytes.Buffer
	c := New(game.NewManager(store), store, &out)
	id := c.Current().ID

	got := run(t, c, &out, "move d2d4\nsave\nlist\n")
	if !strings.Contains(got, "saved "+id) {
		t.Errorf("save output:\n%s", got)
	}
	if !strings.Contains(got, "* live "+id) || !strings.Contains(got, "(1 moves)") {
		t.Errorf("list output:\n%s", got)
	}

	other := New(game.NewManager(store), store, &out)
	got = run(t, other, &out, "load "+id+"\nhistory\n")
	if !strings.Contains(got, "1. d4") {
		t.Errorf("load output:\n%s", got)
	}
	if got := run(t, other, &out, "load nope\n"); !strings.HasPrefix(got, "error:") {
		t.Errorf("load missing: %q", got)
	}
}

func TestQuitStopsReading(t *testing.T) {
	c, out := newConsole(t)
	got := run(t, c, out, "quit\nfen\n")
	if got != "" {
		t.Errorf("commands after quit ran: %q", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	c, out := newConsole(t)
	if got := run(t, c, out, "xyzzy\n"); !strings.HasPrefix(got, "error: unknown command") {
		t.Errorf("output %q", got)
	}
}

func TestFormatHistory(t *testing.T) {
	if got := formatHistory([]string{"e4", "e5", "Nf3"}); got != "1. e4 e5 2. Nf3" {
		t.Errorf("formatHistory = %q", got)
	}
	if got := formatHistory(nil); got != "" {
		t.Errorf("formatHistory(nil) = %q", got)
	}
}
