package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
)

// Storage keys
const (
	keyPreferences    = "preferences"
	keyStats          = "stats"
	keyAnalysisPrefix = "analysis/"
)

// analysisTTL ages cached analyses out so entries computed by older engine
// revisions do not linger forever.
const analysisTTL = 30 * 24 * time.Hour

// PlayerSide represents which side the human plays.
type PlayerSide int

const (
	SideX PlayerSide = iota
	SideO
)

// UserPreferences stores user settings for the website's play mode.
type UserPreferences struct {
	Username      string     `json:"username"`
	AnalysisDepth int        `json:"analysis_depth"`
	PlayerSide    PlayerSide `json:"player_side"`
	ShowAnalysis  bool       `json:"show_analysis"`
	LastPlayed    time.Time  `json:"last_played"`
}

// DefaultPreferences returns default user preferences.
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:      "Player",
		AnalysisDepth: 6,
		PlayerSide:    SideX,
		ShowAnalysis:  true,
		LastPlayed:    time.Now(),
	}
}

// GameStats stores statistics over completed games.
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsBySide     map[string]int `json:"wins_by_side"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics.
func NewGameStats() *GameStats {
	return &GameStats{
		WinsBySide: make(map[string]int),
	}
}

// GetWinRate returns the win rate as a percentage (0-100).
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// GameResult represents the result of a completed game from the human
// player's point of view.
type GameResult struct {
	Won      bool
	Draw     bool
	Side     PlayerSide
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in the given directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// analysisKey builds the cache key of one analysed position.
func analysisKey(wire string, side bool, depth int) []byte {
	player := "o"
	if side {
		player = "x"
	}
	return []byte(fmt.Sprintf("%s%s/%s/%d", keyAnalysisPrefix, wire, player, depth))
}

// LoadAnalysis returns the cached analysis of a position, if present.
// It implements engine.AnalysisCache.
func (s *Storage) LoadAnalysis(wire string, side bool, depth int) (engine.Analysis, bool) {
	var a engine.Analysis
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(analysisKey(wire, side, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &a); err != nil {
				return err
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return engine.Analysis{}, false
	}

	return a, found
}

// StoreAnalysis caches a finished analysis.
func (s *Storage) StoreAnalysis(wire string, side bool, a engine.Analysis) error {
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(analysisKey(wire, side, a.Depth), data).WithTTL(analysisTTL)
		return txn.SetEntry(e)
	})
}

// SavePreferences saves user preferences.
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found.
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveStats saves game statistics.
func (s *Storage) SaveStats(stats *GameStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads game statistics, returns empty stats if not found.
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame records a completed game and updates statistics.
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	sideKey := "x"
	if result.Side == SideO {
		sideKey = "o"
	}

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsBySide[sideKey]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}
