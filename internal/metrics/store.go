package metrics

import (
	"context"
	"database/sql"
	"time"

	"meal-recommender/internal/shared"
)

// ExecutionMetric records metadata for a single explanation generation.
type ExecutionMetric struct {
	Slot             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Fallback         bool
	Timestamp        time.Time
}

// Store handles persistence of generation metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	fallback := 0
	if m.Fallback {
		fallback = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_metrics (slot, model, prompt_tokens, completion_tokens, latency_ms, fallback, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Slot, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, fallback, ts,
	)
	return err
}

// RecordMeta records metrics directly from shared.GenerationMeta.
func (s *Store) RecordMeta(ctx context.Context, meta shared.GenerationMeta) error {
	return s.Record(ctx, MapMeta(meta))
}

// DailyUsage represents generation totals for a single day.
type DailyUsage struct {
	Date            string
	TotalPrompt     int
	TotalCompletion int
	TotalExecution  int
	Fallbacks       int
}

// GetDailyUsage retrieves usage for the last N days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).UTC()
	rows, err := s.db.QueryContext(ctx,
		`SELECT date(timestamp), COALESCE(SUM(prompt_tokens), 0), COALESCE(SUM(completion_tokens), 0),
		        COUNT(*), COALESCE(SUM(fallback), 0)
		 FROM generation_metrics
		 WHERE timestamp >= ?
		 GROUP BY date(timestamp)
		 ORDER BY date(timestamp)`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.TotalPrompt, &u.TotalCompletion, &u.TotalExecution, &u.Fallbacks); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -olderThanDays).UTC()
	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MapMeta converts shared.GenerationMeta to an ExecutionMetric.
func MapMeta(meta shared.GenerationMeta) ExecutionMetric {
	return ExecutionMetric{
		Slot:             meta.Slot,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
		Fallback:         meta.Fallback,
		Timestamp:        time.Now().UTC(),
	}
}
