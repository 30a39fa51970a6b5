// Package storage keeps statistics about finished games in a BadgerDB database.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/dgraph-io/badger/v4"

	"tilechess/types"
)

const appName = "tilechess"

// Storage keys
const (
	keyStats      = "stats"
	keyGamePrefix = "game/"
)

// GameResult is the record of one finished game.
type GameResult struct {
	Winner   types.Side    `json:"winner"`
	Moves    int           `json:"moves"`
	Captures int           `json:"captures"`
	Duration time.Duration `json:"duration"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	EndedAt  time.Time     `json:"ended_at"`
}

// GameStats is the running tally over all recorded games.
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	TotalMoves    int           `json:"total_moves"`
	TotalCaptures int           `json:"total_captures"`
	LongestGame   int           `json:"longest_game"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// Wins returns the number of games side has won.
func (s *GameStats) Wins(side types.Side) int {
	if side == types.Black {
		return s.BlackWins
	}
	return s.WhiteWins
}

// AverageMoves returns the mean game length in moves.
func (s *GameStats) AverageMoves() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.GamesPlayed)
}

func (s *GameStats) add(r GameResult) {
	s.GamesPlayed++
	if r.Winner == types.Black {
		s.BlackWins++
	} else {
		s.WhiteWins++
	}
	s.TotalMoves += r.Moves
	s.TotalCaptures += r.Captures
	s.TotalPlayTime += r.Duration
	if r.Moves > s.LongestGame {
		s.LongestGame = r.Moves
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	return open(badger.DefaultOptions(dir))
}

// OpenDefault opens the database under the XDG data directory.
func OpenDefault() (*Storage, error) {
	return Open(DatabaseDir())
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging; stdout belongs to the terminal UI

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Storage{db: db}, nil
}

// DatabaseDir returns the directory for the BadgerDB database.
func DatabaseDir() string {
	return filepath.Join(xdg.DataHome, appName, "stats")
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	var stats *GameStats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn) (*GameStats, error) {
	stats := &GameStats{}
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}

func gameKey(t time.Time) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyGamePrefix, t.UnixNano()))
}

// RecordGame stores a finished game and folds it into the statistics in one
// transaction. A zero EndedAt is set to the current time.
func (s *Storage) RecordGame(result GameResult) error {
	if result.EndedAt.IsZero() {
		result.EndedAt = time.Now()
	}

	return s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.add(result)

		// Two results can share a clock reading; step until the key is free.
		at := result.EndedAt
		key := gameKey(at)
		for {
			_, err := txn.Get(key)
			if err == badger.ErrKeyNotFound {
				break
			}
			if err != nil {
				return err
			}
			at = at.Add(time.Nanosecond)
			key = gameKey(at)
		}

		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		data, err = json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}

// RecentGames returns up to n results, most recent first.
func (s *Storage) RecentGames(n int) ([]GameResult, error) {
	var out []GameResult
	if n <= 0 {
		return out, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(keyGamePrefix)
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix) && len(out) < n; it.Next() {
			var r GameResult
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}
