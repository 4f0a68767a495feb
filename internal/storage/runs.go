package storage

import (
	"fmt"
	"time"
)

// Run sources.
const (
	SourcePlay = "play"
	SourceSim  = "sim"
)

// RunSummary is the outcome of one marble run, interactive or headless.
type RunSummary struct {
	ID        int64
	GameID    string
	Source    string // SourcePlay or SourceSim
	Seed      int64
	Score     int
	Deleted   int // balls swept by the delete zone
	Captured  int
	Spat      int
	Mixes     int // mixed pairs summed over every step
	Ticks     int
	Remaining int // balls left in world and inventory
	CreatedAt time.Time
}

// SaveRun records a run summary and returns its ID.
func (s *Store) SaveRun(run RunSummary) (int64, error) {
	if run.Source == "" {
		run.Source = SourcePlay
	}

	res, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, source, seed, score, deleted, captured, spat, mixes, ticks, remaining)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GameID,
		run.Source,
		run.Seed,
		run.Score,
		run.Deleted,
		run.Captured,
		run.Spat,
		run.Mixes,
		run.Ticks,
		run.Remaining,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs for gameID, newest first. An empty
// gameID lists runs for every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, source, seed, score, deleted, captured, spat, mixes, ticks, remaining, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Source,
			&r.Seed,
			&r.Score,
			&r.Deleted,
			&r.Captured,
			&r.Spat,
			&r.Mixes,
			&r.Ticks,
			&r.Remaining,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
