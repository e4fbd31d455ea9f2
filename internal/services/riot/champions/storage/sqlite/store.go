// Package sqlite persists champion tables in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/riftscout/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/riftscout/internal/services/riot/champions/storage/sqlite/migrations"
	"github.com/louisbranch/riftscout/internal/services/riot/ddragon"
	_ "modernc.org/sqlite"
)

// Store keeps champion tables keyed by (version, language).
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite champion store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadTable returns the stored table, reporting false when none was saved.
func (s *Store) LoadTable(ctx context.Context, version, language string) ([]ddragon.Champion, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, fmt.Errorf("storage is not configured")
	}

	var fetchedAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT fetched_at FROM champion_tables WHERE version = ? AND language = ?`,
		version, language,
	).Scan(&fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load champion table: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT champion_id, name FROM champion_names
		 WHERE version = ? AND language = ?
		 ORDER BY champion_id`,
		version, language,
	)
	if err != nil {
		return nil, false, fmt.Errorf("load champion names: %w", err)
	}
	defer rows.Close()

	var champions []ddragon.Champion
	for rows.Next() {
		var c ddragon.Champion
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, false, fmt.Errorf("scan champion name: %w", err)
		}
		champions = append(champions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate champion names: %w", err)
	}
	return champions, true, nil
}

// SaveTable replaces the stored table for (version, language).
func (s *Store) SaveTable(ctx context.Context, version, language string, champions []ddragon.Champion) (err error) {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(version) == "" || strings.TrimSpace(language) == "" {
		return fmt.Errorf("version and language are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save champion table: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"champion_names", "champion_tables"} {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE version = ? AND language = ?`,
			version, language,
		); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO champion_tables (version, language, fetched_at) VALUES (?, ?, ?)`,
		version, language, s.now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert champion table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO champion_names (version, language, champion_id, name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare champion insert: %w", err)
	}
	defer stmt.Close()
	for _, c := range champions {
		if _, err = stmt.ExecContext(ctx, version, language, c.ID, c.Name); err != nil {
			return fmt.Errorf("insert champion %d: %w", c.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit champion table: %w", err)
	}
	return nil
}
