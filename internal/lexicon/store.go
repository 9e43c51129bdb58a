package lexicon

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema
// 1 - Added index on lexemes.category
// 2 - Triggers rejecting lexemes that are not case-folded
const currentSchemaVersion = 2

// Supported database/sql driver names.
const (
	DriverCgo    = "sqlite3"
	DriverPureGo = "sqlite"
)

// Entry is one lexicon row.
type Entry struct {
	Lexeme   string `json:"lexeme" yaml:"lexeme"`
	Category string `json:"category" yaml:"category"`
	Weight   int    `json:"weight" yaml:"weight"`
}

// Store is the durable lexicon plus its in-memory cache.
type Store struct {
	db     *sql.DB
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]Entry
	keys    []string
}

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	driver string
	logger *zap.Logger
}

// WithDriver selects the database/sql driver ("sqlite3" or "sqlite").
func WithDriver(driver string) Option {
	return func(c *openConfig) {
		if driver != "" {
			c.driver = driver
		}
	}
}

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *openConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Open creates or opens the lexicon database at path, applies pragmas and
// migrations, and loads every entry into the cache.
//
// This function is idempotent - safe to call multiple times on the same path.
// It does not seed the lexicon; see Initialize.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := openConfig{driver: DriverCgo, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.driver != DriverCgo && cfg.driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported sqlite driver %q", cfg.driver)
	}

	db, err := sql.Open(cfg.driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, logger: cfg.logger}
	if err := s.Reload(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("lexicon opened",
		zap.String("path", path),
		zap.String("driver", cfg.driver),
		zap.Int("entries", s.Len()),
	)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := migrateToV2(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 indexes categories; Categories() is called once per unknown word.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_lexemes_category ON lexemes(category)`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// migrateToV2 guards the UNIQUE constraint on lexeme, which compares bytes:
// rows written around Store must already be folded. SQLite's lower() only
// folds ASCII, so this catches ASCII case and surrounding blanks.
func migrateToV2(db *sql.DB) error {
	triggers := []struct{ name, event string }{
		{"lexemes_folded_insert", "INSERT"},
		{"lexemes_folded_update", "UPDATE OF lexeme"},
	}
	for _, tr := range triggers {
		stmt := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS %s BEFORE %s ON lexemes
			WHEN NEW.lexeme <> lower(trim(NEW.lexeme))
			BEGIN
				SELECT RAISE(ABORT, 'lexeme must be case-folded');
			END`, tr.name, tr.event)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate to v2: %w", err)
		}
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
