package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const (
	gamePrefix = "game/"
)

// ErrGameNotFound is returned when no record exists for an ID.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is a saved game: the current position plus the moves that led
// to it in SAN.
type GameRecord struct {
	ID        string         `json:"id"`
	Position  board.Snapshot `json:"position"`
	History   []string       `json:"history"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Options configures Open.
type Options struct {
	// Dir is the database directory. Empty means GetDatabaseDir.
	Dir string
	// InMemory keeps everything in RAM; Dir is ignored.
	InMemory bool
	// Logger receives badger's own log output. Nil silences it.
	Logger *log.Logger
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the game database.
func Open(opts Options) (*Storage, error) {
	dir := opts.Dir
	if opts.InMemory {
		dir = ""
	} else if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, err
		}
	}

	bopts := badger.DefaultOptions(dir).WithInMemory(opts.InMemory)
	bopts.Logger = nil // Disable logging
	if opts.Logger != nil {
		bopts.Logger = badgerLogger{opts.Logger}
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// SaveGame writes rec, stamping UpdatedAt (and CreatedAt on first save).
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return errors.New("save game: empty id")
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame reads the record stored under id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListGames returns every stored record, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var recs []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UpdatedAt.After(recs[j].UpdatedAt)
	})
	return recs, nil
}

// DeleteGame removes the record stored under id.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// badgerLogger forwards badger's leveled logging to a standard logger.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Printf("badger ERROR: "+format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Printf("badger WARN: "+format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Printf("badger: "+format, args...)
}

func (b badgerLogger) Debugf(string, ...interface{}) {}
