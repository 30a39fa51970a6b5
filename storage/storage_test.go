package storage

import (
	"testing"
	"time"

	"tilechess/types"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyStats(t *testing.T) {
	s := openTest(t)
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 0 || stats.AverageMoves() != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	games, err := s.RecentGames(5)
	if err != nil || len(games) != 0 {
		t.Errorf("RecentGames on empty db = %v, %v", games, err)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []GameResult{
		{Winner: types.White, Moves: 30, Captures: 8, Duration: 5 * time.Minute, Width: 8, Height: 8, EndedAt: base},
		{Winner: types.Black, Moves: 51, Captures: 12, Duration: 9 * time.Minute, Width: 8, Height: 8, EndedAt: base.Add(time.Hour)},
		{Winner: types.White, Moves: 13, Captures: 3, Duration: time.Minute, Width: 6, Height: 6, EndedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 3 {
		t.Errorf("GamesPlayed = %d, want 3", stats.GamesPlayed)
	}
	if stats.Wins(types.White) != 2 || stats.Wins(types.Black) != 1 {
		t.Errorf("wins = %d/%d, want 2/1", stats.Wins(types.White), stats.Wins(types.Black))
	}
	if stats.TotalMoves != 94 || stats.LongestGame != 51 || stats.TotalCaptures != 23 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalPlayTime != 15*time.Minute {
		t.Errorf("TotalPlayTime = %v, want 15m", stats.TotalPlayTime)
	}

	recent, err := s.RecentGames(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentGames(2) = %d results", len(recent))
	}
	if recent[0].Moves != 13 || recent[1].Moves != 51 {
		t.Errorf("RecentGames order = %d, %d, want 13, 51", recent[0].Moves, recent[1].Moves)
	}
	if !recent[0].EndedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("EndedAt = %v", recent[0].EndedAt)
	}
}

func TestRecordGameSameInstant(t *testing.T) {
	s := openTest(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := s.RecordGame(GameResult{Winner: types.Black, Moves: i + 1, EndedAt: at}); err != nil {
			t.Fatal(err)
		}
	}
	games, err := s.RecentGames(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 3 {
		t.Errorf("stored %d games, want 3", len(games))
	}
}

func TestRecordGameSetsEndTime(t *testing.T) {
	s := openTest(t)
	before := time.Now()
	if err := s.RecordGame(GameResult{Winner: types.White, Moves: 4}); err != nil {
		t.Fatal(err)
	}
	games, err := s.RecentGames(1)
	if err != nil || len(games) != 1 {
		t.Fatalf("RecentGames = %v, %v", games, err)
	}
	if games[0].EndedAt.Before(before) {
		t.Errorf("EndedAt = %v, before %v", games[0].EndedAt, before)
	}
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordGame(GameResult{Winner: types.Black, Moves: 7}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.BlackWins != 1 {
		t.Errorf("stats after reopen = %+v", stats)
	}
}
