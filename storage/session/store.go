package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/elevate/core/profile"
	appfs "github.com/trezcool/elevate/fs"
)

// well-known keys
const (
	KeyIsFirstVisit = "isFirstVisit"
	KeyUserData     = "userData"
)

// Store keeps the local session of the client in a SQLite key/value table.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the session database path inside `dataDir`,
// or inside the user config directory when `dataDir` is empty.
func DefaultPath(dataDir string) (string, error) {
	if dataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", errors.Wrap(err, "locating config dir")
		}
		dataDir = filepath.Join(dir, "elevate")
	}
	return filepath.Join(dataDir, "session.db"), nil
}

// Open opens (creating it if needed) the session database at `dsn` and migrates it.
// Use ":memory:" for a throwaway store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
			return nil, errors.Wrap(err, "creating data dir")
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening session db")
	}
	// a single connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if err = migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(appfs.FS, appfs.SessionMigrationsDir)
	if err != nil {
		return errors.Wrap(err, "loading migrations")
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return errors.Wrap(err, "preparing migrations")
	}
	if _, err = provider.Up(ctx); err != nil {
		return errors.Wrap(err, "migrating session db")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "getting %s", key)
	}
	return value, true, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func set(ctx context.Context, exec execer, key, value string) error {
	_, err := exec.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return errors.Wrapf(err, "setting %s", key)
}

// SaveOnboarded marks onboarding as complete and stores the profile, atomically.
func (s *Store) SaveOnboarded(ctx context.Context, p profile.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encoding profile")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err = set(ctx, tx, KeyUserData, string(data)); err != nil {
		return err
	}
	if err = set(ctx, tx, KeyIsFirstVisit, "false"); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing session")
}

// IsOnboarded reports whether onboarding was completed on this device.
func (s *Store) IsOnboarded(ctx context.Context) (bool, error) {
	v, ok, err := s.get(ctx, KeyIsFirstVisit)
	if err != nil {
		return false, err
	}
	return ok && v == "false", nil
}

// Profile returns the stored profile; ok is false when there is none.
func (s *Store) Profile(ctx context.Context) (p profile.Profile, ok bool, err error) {
	v, ok, err := s.get(ctx, KeyUserData)
	if err != nil || !ok {
		return profile.Profile{}, false, err
	}
	if err = json.Unmarshal([]byte(v), &p); err != nil {
		return profile.Profile{}, false, errors.Wrap(err, "decoding profile")
	}
	return p, true, nil
}

// Clear forgets the session: the next run starts onboarding again.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, KeyIsFirstVisit, KeyUserData)
	return errors.Wrap(err, "clearing session")
}
