package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/console"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	memory     = flag.Bool("memory", false, "keep games in memory only")
	verbose    = flag.Bool("verbose", false, "log storage activity and validate every move")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	opts := storage.Options{Dir: *dbDir, InMemory: *memory}
	if *verbose {
		board.DebugMoveValidation = true
		opts.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	store, err := storage.Open(opts)
	if err != nil {
		log.Fatal("could not open storage: ", err)
	}
	defer store.Close()

	c := console.New(game.NewManager(store), store, os.Stdout)
	if err := c.Run(os.Stdin); err != nil {
		log.Printf("reading input: %v", err)
	}
}
