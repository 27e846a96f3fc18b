package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the database-backed Store. It persists the same fields as
// the flat-file layout: one row per (profile, day) plus key=value metadata
// rows per profile.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS water_days (
			profile TEXT NOT NULL,
			day TEXT NOT NULL,
			intake_ml INTEGER NOT NULL DEFAULT 0,
			goal_ml INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY(profile, day)
		);`,
		`CREATE TABLE IF NOT EXISTS profile_meta (
			profile TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY(profile, key)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadDay(ctx context.Context, profile ProfileID, day string) (*DayRecord, error) {
	if profile == "" {
		return nil, ErrProfileRequired
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT day, intake_ml, goal_ml
		FROM water_days
		WHERE profile = ? AND day = ?
	`, string(profile), day)
	var rec DayRecord
	if err := row.Scan(&rec.Day, &rec.IntakeML, &rec.GoalML); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) LoadHistory(ctx context.Context, profile ProfileID) (map[string]DayRecord, error) {
	if profile == "" {
		return nil, ErrProfileRequired
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, intake_ml, goal_ml
		FROM water_days
		WHERE profile = ?
	`, string(profile))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]DayRecord{}
	for rows.Next() {
		var rec DayRecord
		if err := rows.Scan(&rec.Day, &rec.IntakeML, &rec.GoalML); err != nil {
			return nil, err
		}
		// Keep the same tolerance as the flat-file loader for rows edited
		// out-of-band.
		if rec.IntakeML < 0 || rec.GoalML <= 0 {
			continue
		}
		out[rec.Day] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) SaveDay(ctx context.Context, profile ProfileID, rec DayRecord) error {
	if profile == "" {
		return ErrProfileRequired
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO water_days(profile, day, intake_ml, goal_ml)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(profile, day) DO UPDATE SET
			intake_ml = excluded.intake_ml,
			goal_ml = excluded.goal_ml
	`, string(profile), rec.Day, rec.IntakeML, rec.GoalML)
	return err
}

func (s *SQLiteStore) LoadProfileMeta(ctx context.Context, profile ProfileID) (*ProfileMeta, error) {
	if profile == "" {
		return nil, ErrProfileRequired
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, value FROM profile_meta WHERE profile = ?
	`, string(profile))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	meta := decodeMeta(values)
	return &meta, nil
}

func (s *SQLiteStore) SaveProfileMeta(ctx context.Context, profile ProfileID, meta ProfileMeta) error {
	if profile == "" {
		return ErrProfileRequired
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for key, value := range encodeMeta(meta) {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO profile_meta(profile, key, value) VALUES(?, ?, ?)
			ON CONFLICT(profile, key) DO UPDATE SET value = excluded.value
		`, string(profile), key, value); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
