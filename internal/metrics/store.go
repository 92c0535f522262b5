package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CallMetric records metadata for a single external provider call.
type CallMetric struct {
	Provider   string
	Endpoint   string
	StatusCode int
	LatencyMS  int64
	Timestamp  time.Time
}

// Store handles persistence of provider call metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database. A nil Store discards the metric so
// callers can leave metrics unwired.
func (s *Store) Record(m CallMetric) error {
	if s == nil {
		return nil
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	const q = `
		INSERT INTO provider_metrics (provider, endpoint, status_code, latency_ms, timestamp)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(context.Background(), q,
		m.Provider, m.Endpoint, m.StatusCode, m.LatencyMS, ts)
	if err != nil {
		return fmt.Errorf("failed to insert provider metric: %w", err)
	}
	return nil
}

// DailyUsage represents provider call totals for a single day.
type DailyUsage struct {
	Date         string
	Provider     string
	Calls        int
	Errors       int
	AvgLatencyMS float64
}

// GetDailyUsage retrieves per-provider call totals for the last N days.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().AddDate(0, 0, -days).UTC()

	const q = `
		SELECT date(timestamp) AS day,
		       provider,
		       COUNT(*),
		       SUM(CASE WHEN status_code >= 400 OR status_code = 0 THEN 1 ELSE 0 END),
		       AVG(latency_ms)
		FROM provider_metrics
		WHERE timestamp >= ?
		GROUP BY day, provider
		ORDER BY day DESC, provider`

	rows, err := s.db.Query(q, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily usage: %w", err)
	}
	defer rows.Close()

	var usage []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Provider, &u.Calls, &u.Errors, &u.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan daily usage row: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
