package users

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/ports"
)

// SQLiteStore implements the UserStore interface using modernc.org/sqlite.
// The wallet_address unique index is the enforcement point for one identity
// per address under concurrent first-time logins.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite user store at the given path.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "users")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for concurrent readers during logins
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("user store initialized", "path", path)
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			wallet_address TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_wallet_address
			ON users(wallet_address);
	`
	_, err := s.db.Exec(schema)
	return err
}

// FindByWallet returns the identity for a lowercase wallet address.
func (s *SQLiteStore) FindByWallet(ctx context.Context, address string) (*core.Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, wallet_address, created_at FROM users WHERE wallet_address = ?`,
		address,
	)

	var identity core.Identity
	err := row.Scan(&identity.ID, &identity.Email, &identity.Name, &identity.WalletAddress, &identity.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by wallet: %w", err)
	}
	return &identity, nil
}

// FindByID returns the identity with the given user ID.
func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*core.Identity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, wallet_address, created_at FROM users WHERE id = ?`,
		id,
	)

	var identity core.Identity
	err := row.Scan(&identity.ID, &identity.Email, &identity.Name, &identity.WalletAddress, &identity.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return &identity, nil
}

// Create inserts a new identity. A unique-constraint violation reports
// core.ErrIdentityConflict so callers can re-read the winning row.
func (s *SQLiteStore) Create(ctx context.Context, identity *core.Identity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, wallet_address, created_at) VALUES (?, ?, ?, ?, ?)`,
		identity.ID, identity.Email, identity.Name, identity.WalletAddress, identity.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.ErrIdentityConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.UserStore = (*SQLiteStore)(nil)
