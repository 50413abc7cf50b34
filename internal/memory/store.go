// Package memory persists assessment history in SQLite.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"healthbot/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements domain.AssessmentStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// single connection for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id          TEXT PRIMARY KEY,
		company     TEXT NOT NULL,
		industry    TEXT NOT NULL,
		tenant_url  TEXT,
		score       INTEGER NOT NULL,
		chunk_count INTEGER NOT NULL,
		delivered   INTEGER NOT NULL,
		fallback    INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_assessments_time ON assessments(created_at);
	CREATE INDEX IF NOT EXISTS idx_assessments_company ON assessments(company);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, rec domain.AssessmentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, company, industry, tenant_url, score, chunk_count, delivered, fallback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Company, string(rec.Industry), rec.TenantURL,
		rec.Score, rec.ChunkCount, rec.Delivered, rec.Fallback, rec.CreatedAt,
	)
	return err
}

func (s *SQLiteStore) RecentAssessments(ctx context.Context, limit int) ([]domain.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, company, industry, tenant_url, score, chunk_count, delivered, fallback, created_at
		 FROM assessments ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.AssessmentRecord
	for rows.Next() {
		var rec domain.AssessmentRecord
		var industry string
		if err := rows.Scan(&rec.ID, &rec.Company, &industry, &rec.TenantURL,
			&rec.Score, &rec.ChunkCount, &rec.Delivered, &rec.Fallback, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Industry = domain.Industry(industry)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// PurgeOlderThan deletes history older than the given age and returns how
// many rows were removed.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged assessment history", "rows", n, "older_than", age)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
