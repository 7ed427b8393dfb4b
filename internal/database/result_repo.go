package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// StoredResult is a completed verification outcome. Only the outcome
// is kept; challenge records and mouse traces are never persisted, and
// nothing links results across sessions.
type StoredResult struct {
	SessionID  string
	Confidence float64
	Level      string
	ModelUsed  string
	Features   json.RawMessage
	CreatedAt  time.Time
}

type ResultRepository struct {
	db *DB
}

func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) Insert(ctx context.Context, result *StoredResult) error {
	query := r.db.rebind(`
		INSERT INTO verification_results (session_id, confidence, level, model_used, features, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.conn.ExecContext(ctx, query,
		result.SessionID,
		result.Confidence,
		result.Level,
		result.ModelUsed,
		string(result.Features),
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert verification result: %w", err)
	}
	return nil
}

func (r *ResultRepository) GetBySessionID(ctx context.Context, sessionID string) (*StoredResult, error) {
	query := r.db.rebind(`
		SELECT session_id, confidence, level, model_used, features, created_at
		FROM verification_results WHERE session_id = ?`)

	var result StoredResult
	var features string
	err := r.db.conn.QueryRowContext(ctx, query, sessionID).Scan(
		&result.SessionID,
		&result.Confidence,
		&result.Level,
		&result.ModelUsed,
		&features,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification result: %w", err)
	}
	result.Features = json.RawMessage(features)
	return &result, nil
}

func (r *ResultRepository) ListRecent(ctx context.Context, limit int) ([]StoredResult, error) {
	query := r.db.rebind(`
		SELECT session_id, confidence, level, model_used, features, created_at
		FROM verification_results
		ORDER BY created_at DESC
		LIMIT ?`)

	rows, err := r.db.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		var result StoredResult
		var features string
		if err := rows.Scan(
			&result.SessionID,
			&result.Confidence,
			&result.Level,
			&result.ModelUsed,
			&features,
			&result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan verification result: %w", err)
		}
		result.Features = json.RawMessage(features)
		results = append(results, result)
	}

	return results, rows.Err()
}

// CountByLevel returns how many stored results landed in each
// confidence level.
func (r *ResultRepository) CountByLevel(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT level, COUNT(*) FROM verification_results GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count verification results: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan level count: %w", err)
		}
		counts[level] = count
	}

	return counts, rows.Err()
}
