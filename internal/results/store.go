// internal/results/store.go
//
// Persistence of finished crossword sessions.
// The store is the consumer of game.Result values: one row per session,
// written once (INSERT OR IGNORE on session_id) and never updated.
// Daily plays also carry their UTC date; UNIQUE(player_id, daily_date) keeps
// one daily result per player per day.

package results

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/crossword/internal/game"
)

// Record is a stored session result.
type Record struct {
	SessionID      string    `json:"sessionId"`
	PuzzleID       string    `json:"puzzleId"`
	PlayerID       string    `json:"playerId"`
	Score          int       `json:"score"`
	Accuracy       float64   `json:"accuracy"`
	TimeSpent      int       `json:"timeSpent"`
	HintsUsed      int       `json:"hintsUsed"`
	Completed      bool      `json:"completed"`
	CluesCompleted int       `json:"cluesCompleted"`
	CluesTotal     int       `json:"cluesTotal"`
	DailyDate      string    `json:"dailyDate,omitempty"` // YYYY-MM-DD for daily plays
	CreatedAt      time.Time `json:"createdAt"`
}

// FromResult builds a record for a finished session.
func FromResult(sessionID, puzzleID, playerID string, r game.Result) Record {
	return Record{
		SessionID:      sessionID,
		PuzzleID:       puzzleID,
		PlayerID:       playerID,
		Score:          r.Score,
		Accuracy:       r.Accuracy,
		TimeSpent:      r.TimeSpentSeconds,
		HintsUsed:      r.HintsUsed,
		Completed:      r.Completed,
		CluesCompleted: r.CluesCompleted,
		CluesTotal:     r.CluesTotal,
	}
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores a record. A second insert for the same session, or a second
// daily result for the same player and date, is ignored; stored reports
// whether the row was written.
func (s *Store) Insert(ctx context.Context, r Record) (stored bool, err error) {
	var daily sql.NullString
	if r.DailyDate != "" {
		daily = sql.NullString{String: r.DailyDate, Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (session_id, puzzle_id, player_id, score, accuracy, time_spent,
             hints_used, completed, clues_completed, clues_total, daily_date)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.PuzzleID, r.PlayerID, r.Score, r.Accuracy, r.TimeSpent,
		r.HintsUsed, r.Completed, r.CluesCompleted, r.CluesTotal, daily,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Leaderboard returns the best results for a puzzle: highest score first,
// then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, puzzleID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx, `WHERE puzzle_id=? ORDER BY score DESC, time_spent ASC, created_at ASC, id ASC LIMIT ?`,
		puzzleID, limit)
}

// ByPlayer returns a player's most recent results.
func (s *Store) ByPlayer(ctx context.Context, playerID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(ctx, `WHERE player_id=? ORDER BY created_at DESC, id DESC LIMIT ?`, playerID, limit)
}

// PlayedDaily reports whether a player already has a daily result for the
// given UTC date (YYYY-MM-DD).
func (s *Store) PlayedDaily(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM results WHERE player_id=? AND daily_date=?`,
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *Store) query(ctx context.Context, where string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, puzzle_id, player_id, score, accuracy, time_spent,
               hints_used, completed, clues_completed, clues_total,
               COALESCE(daily_date, ''), created_at
        FROM results `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		var created string
		if err := rows.Scan(&r.SessionID, &r.PuzzleID, &r.PlayerID, &r.Score, &r.Accuracy, &r.TimeSpent,
			&r.HintsUsed, &r.Completed, &r.CluesCompleted, &r.CluesTotal, &r.DailyDate, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
