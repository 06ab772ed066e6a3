package sessionstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"newswave/internal/domain/entity"
	"newswave/internal/repository"
)

// Keys of the session_kv table.
const (
	KeyRole     = "role"
	KeyUserID   = "user_id"
	KeyUserName = "user_name"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite stores the session in a sqlite database.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ repository.SessionRepository = (*SQLite)(nil)

// Open opens (creating if needed) the sqlite file at path and migrates it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}

	if err := migrateUp(ctx, db, path, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db, logger: logger}, nil
}

// NewWithDB wraps an already migrated handle.
func NewWithDB(db *sql.DB, logger *slog.Logger) *SQLite {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLite{db: db, logger: logger}
}

func migrateUp(ctx context.Context, db *sql.DB, path string, logger *slog.Logger) error {
	dbInstance, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", dbInstance)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.DebugContext(ctx, "session db up to date", slog.String("path", path))
		return nil
	}

	version, dirty, _ := m.Version()
	logger.InfoContext(ctx, "session db migrated",
		slog.String("path", path),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))
	return nil
}

// Save replaces the stored session in one transaction.
func (s *SQLite) Save(ctx context.Context, session entity.Session) error {
	if !session.Valid() {
		return &entity.ValidationError{Field: "session", Message: "refusing to save an incomplete session"}
	}

	const query = `
INSERT INTO session_kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Save: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows := [][2]string{
		{KeyRole, string(session.Role)},
		{KeyUserID, strconv.FormatInt(session.UserID, 10)},
		{KeyUserName, session.UserName},
	}
	for _, kv := range rows {
		if _, err := tx.ExecContext(ctx, query, kv[0], kv[1]); err != nil {
			return fmt.Errorf("Save: ExecContext %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: Commit: %w", err)
	}
	return nil
}

// Load returns the stored session, or the zero Session when nothing usable is
// stored.
func (s *SQLite) Load(ctx context.Context) entity.Session {
	const query = `
SELECT key, value
FROM session_kv
WHERE key IN (?, ?, ?)`

	rows, err := s.db.QueryContext(ctx, query, KeyRole, KeyUserID, KeyUserName)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read session", slog.Any("error", err))
		return entity.Session{}
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string, 3)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			s.logger.WarnContext(ctx, "failed to scan session row", slog.Any("error", err))
			return entity.Session{}
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		s.logger.WarnContext(ctx, "failed to read session", slog.Any("error", err))
		return entity.Session{}
	}

	return decodeSession(ctx, s.logger, values)
}

// Clear removes the stored session.
func (s *SQLite) Clear(ctx context.Context) error {
	const query = `DELETE FROM session_kv WHERE key IN (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, KeyRole, KeyUserID, KeyUserName); err != nil {
		return fmt.Errorf("Clear: ExecContext: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// decodeSession rebuilds a session from its key/value rows. Partial or
// malformed records yield the zero Session.
func decodeSession(ctx context.Context, logger *slog.Logger, values map[string]string) entity.Session {
	if len(values) == 0 {
		return entity.Session{}
	}

	role, err := entity.ParseRole(values[KeyRole])
	if err != nil {
		logger.WarnContext(ctx, "ignoring stored session with invalid role",
			slog.String("role", values[KeyRole]))
		return entity.Session{}
	}

	id, err := strconv.ParseInt(values[KeyUserID], 10, 64)
	if err != nil {
		logger.WarnContext(ctx, "ignoring stored session with invalid user id",
			slog.String("user_id", values[KeyUserID]))
		return entity.Session{}
	}

	session, err := entity.NewSession(role, id, values[KeyUserName])
	if err != nil {
		logger.WarnContext(ctx, "ignoring incomplete stored session", slog.Any("error", err))
		return entity.Session{}
	}
	return session
}
