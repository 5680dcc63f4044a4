// Package console implements a line-oriented text protocol for playing and
// inspecting games.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

// Lister enumerates stored games. *storage.Storage satisfies it.
type Lister interface {
	ListGames() ([]*storage.GameRecord, error)
}

// Console reads commands and writes replies. Every command acts on the
// current game, which "new", "position" and "load" replace.
type Console struct {
	manager *game.Manager
	lister  Lister
	out     io.Writer

	current *game.Game
}

// New creates a console. lister may be nil.
func New(manager *game.Manager, lister Lister, out io.Writer) *Console {
	c := &Console{manager: manager, lister: lister, out: out}
	c.current = manager.NewGame()
	return c
}

// Current returns the game commands act on.
func (c *Console) Current() *game.Game {
	return c.current
}

// Run reads commands from in until "quit" or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if c.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns true on "quit".
func (c *Console) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "new":
		c.current = c.manager.NewGame()
		c.printf("game %s\n", c.current.ID)
	case "position":
		if board.DebugMoveValidation {
			log.Printf("DEBUG: position %s", strings.Join(args, " "))
		}
		c.handlePosition(args)
	case "moves":
		c.handleMoves(args)
	case "move":
		c.handleMove(args)
	case "promote":
		c.handlePromote(args)
	case "d":
		c.printf("%s", c.current.Position().String())
	case "fen":
		c.printf("%s\n", c.current.FEN())
	case "history":
		c.printf("%s\n", formatHistory(c.current.History()))
	case "perft":
		c.handlePerft(args)
	case "save":
		c.handleSave()
	case "load":
		c.handleLoad(args)
	case "list":
		c.handleList()
	case "quit":
		return true
	default:
		c.errorf("unknown command %q", cmd)
	}
	return false
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "error: "+format+"\n", args...)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		c.errorf("position: missing startpos or fen")
		return
	}

	// Find "moves" keyword
	setupEnd := len(args)
	var moves []string
	for i, arg := range args {
		if arg == "moves" {
			setupEnd = i
			moves = args[i+1:]
			break
		}
	}

	var g *game.Game
	switch args[0] {
	case "startpos":
		g = c.manager.NewGame()
	case "fen":
		var err error
		g, err = c.manager.NewGameFromFEN(strings.Join(args[1:setupEnd], " "))
		if err != nil {
			c.errorf("invalid FEN: %v", err)
			return
		}
	default:
		c.errorf("position: expected startpos or fen, got %q", args[0])
		return
	}

	for _, moveStr := range moves {
		if err := g.PlayUCI(moveStr); err != nil {
			c.errorf("invalid move %s: %v", moveStr, err)
			c.manager.Remove(g.ID)
			return
		}
	}

	c.current = g
	c.printf("game %s\n", g.ID)
}

func (c *Console) handleMoves(args []string) {
	var moves []board.Move
	if len(args) == 0 {
		moves = c.current.LegalMoves()
	} else {
		sq, err := board.ParseSquare(args[0])
		if err != nil {
			c.errorf("%v", err)
			return
		}
		if moves, err = c.current.Moves(sq); err != nil {
			c.errorf("%v", err)
			return
		}
	}

	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	c.printf("%s\n", strings.Join(strs, " "))
}

func (c *Console) handleMove(args []string) {
	if len(args) != 1 {
		c.errorf("usage: move <from><to>[promotion]")
		return
	}
	if err := c.current.PlayUCI(args[0]); err != nil {
		c.errorf("%v", err)
		return
	}
	c.reportState()
}

func (c *Console) handlePromote(args []string) {
	if len(args) != 1 || len(args[0]) != 1 {
		c.errorf("usage: promote <q|r|b|n>")
		return
	}
	pt, err := board.PromotionFromChar(args[0][0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	if err := c.current.Promote(pt); err != nil {
		c.errorf("%v", err)
		return
	}
	c.reportState()
}

// reportState tells the user what the side to move faces after a move.
func (c *Console) reportState() {
	if c.current.AwaitingPromotion() {
		c.printf("promote? (q r b n)\n")
		return
	}

	pos := c.current.Position()
	inCheck := pos.InCheck()
	noMoves := pos.LegalMoves().Len() == 0
	switch {
	case inCheck && noMoves:
		c.printf("checkmate, %s wins\n", pos.SideToMove.Other())
	case noMoves:
		c.printf("stalemate\n")
	case inCheck:
		c.printf("check\n")
	default:
		c.printf("ok\n")
	}
}

// handlePerft runs a perft test.
func (c *Console) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil || depth < 0 {
			c.errorf("perft: invalid depth %q", args[0])
			return
		}
	}

	pos := c.current.Position()
	start := time.Now()
	nodes := board.Perft(pos, depth)
	elapsed := time.Since(start)

	c.printf("Nodes: %d\n", nodes)
	c.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		c.printf("NPS: %.0f\n", nps)
	}
}

func (c *Console) handleSave() {
	if err := c.manager.Save(c.current.ID); err != nil {
		c.errorf("save: %v", err)
		return
	}
	c.printf("saved %s\n", c.current.ID)
}

func (c *Console) handleLoad(args []string) {
	if len(args) != 1 {
		c.errorf("usage: load <id>")
		return
	}
	g, err := c.manager.Load(args[0])
	if err != nil {
		c.errorf("load: %v", err)
		return
	}
	c.current = g
	c.printf("game %s\n", g.ID)
}

func (c *Console) handleList() {
	for _, id := range c.manager.IDs() {
		marker := " "
		if id == c.current.ID {
			marker = "*"
		}
		c.printf("%s live %s\n", marker, id)
	}

	if c.lister == nil {
		return
	}
	recs, err := c.lister.ListGames()
	if err != nil {
		c.errorf("list: %v", err)
		return
	}
	for _, rec := range recs {
		c.printf("  saved %s %s (%d moves)\n", rec.ID, rec.UpdatedAt.Format(time.RFC3339), len(rec.History))
	}
}

// formatHistory numbers SAN moves in pairs: "1. e4 e5 2. Nf3".
func formatHistory(sans []string) string {
	var sb strings.Builder
	for i, san := range sans {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if i%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", i/2+1)
		}
		sb.WriteString(san)
	}
	return sb.String()
}
