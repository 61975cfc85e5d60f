package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Ranking is one observation of the own domain's position for a keyword on
// a given date. Position 0 means not found in the checked results. The
// history is append-only and deduplicated on (keyword, date): re-tracking a
// keyword on the same day replaces that day's observation.
type Ranking struct {
	ID        int64     `db:"id" json:"-"`
	Keyword   string    `db:"keyword" json:"keyword"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Position  int       `db:"position" json:"position"`
	InTop     bool      `db:"in_top" json:"in_top"`
	Err       string    `db:"error" json:"error,omitempty"`
	CheckedAt time.Time `db:"checked_at" json:"checked_at"`
}

// OpportunityRun is one persisted scored opportunity from a weekly run.
type OpportunityRun struct {
	ID             int64     `db:"id" json:"id"`
	RunDate        string    `db:"run_date" json:"run_date"`
	Topic          string    `db:"topic" json:"topic"`
	Score          int       `db:"score" json:"score"`
	FeaturesJSON   string    `db:"features" json:"-"`
	Features       []string  `db:"-" json:"features"`
	AlreadyRanking bool      `db:"already_ranking" json:"already_ranking"`
	HasTrend       bool      `db:"has_trend" json:"has_trend"`
	TrendValue     float64   `db:"trend_value" json:"trend_value"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Store is the persistence interface for ranking history and opportunity
// runs.
type Store interface {
	UpsertRanking(ctx context.Context, r *Ranking) error
	UpsertRankings(ctx context.Context, rankings []Ranking) error
	ListRankings(ctx context.Context, keyword string, since time.Time) ([]Ranking, error)

	SaveOpportunities(ctx context.Context, runs []OpportunityRun) error
	ListOpportunities(ctx context.Context, runDate string, limit int) ([]OpportunityRun, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertRanking(ctx context.Context, r *Ranking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rankings (keyword, date, position, in_top, error, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(keyword, date) DO UPDATE SET
			position = excluded.position,
			in_top = excluded.in_top,
			error = excluded.error,
			checked_at = excluded.checked_at
	`, r.Keyword, r.Date, r.Position, r.InTop, r.Err, r.CheckedAt)
	if err != nil {
		return fmt.Errorf("upsert ranking %s/%s: %w", r.Keyword, r.Date, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertRankings(ctx context.Context, rankings []Ranking) error {
	for i := range rankings {
		if err := s.UpsertRanking(ctx, &rankings[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) ListRankings(ctx context.Context, keyword string, since time.Time) ([]Ranking, error) {
	query := "SELECT * FROM rankings WHERE keyword = ?"
	args := []any{keyword}

	if !since.IsZero() {
		query += " AND date >= ?"
		args = append(args, since.Format("2006-01-02"))
	}
	query += " ORDER BY date"

	var rankings []Ranking
	if err := s.db.SelectContext(ctx, &rankings, query, args...); err != nil {
		return nil, fmt.Errorf("list rankings %s: %w", keyword, err)
	}
	return rankings, nil
}

func (s *SQLiteStore) SaveOpportunities(ctx context.Context, runs []OpportunityRun) error {
	for i := range runs {
		r := &runs[i]
		featuresJSON, _ := json.Marshal(r.Features)
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO opportunity_runs (run_date, topic, score, features, already_ranking, has_trend, trend_value, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_date, topic) DO UPDATE SET
				score = excluded.score,
				features = excluded.features,
				already_ranking = excluded.already_ranking,
				has_trend = excluded.has_trend,
				trend_value = excluded.trend_value,
				created_at = excluded.created_at
		`, r.RunDate, r.Topic, r.Score, string(featuresJSON), r.AlreadyRanking, r.HasTrend, r.TrendValue, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("save opportunity %s/%s: %w", r.RunDate, r.Topic, err)
		}
	}
	return nil
}

func (s *SQLiteStore) ListOpportunities(ctx context.Context, runDate string, limit int) ([]OpportunityRun, error) {
	query := "SELECT * FROM opportunity_runs WHERE 1=1"
	var args []any

	if runDate != "" {
		query += " AND run_date = ?"
		args = append(args, runDate)
	}
	query += " ORDER BY score DESC"

	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var runs []OpportunityRun
	if err := s.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	for i := range runs {
		if err := json.Unmarshal([]byte(runs[i].FeaturesJSON), &runs[i].Features); err != nil {
			return nil, fmt.Errorf("decode features for %s/%s: %w", runs[i].RunDate, runs[i].Topic, err)
		}
	}
	return runs, nil
}
