package lexicon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const insertLexemeSQL = `
	INSERT INTO lexemes (lexeme, category, weight)
	VALUES (?, ?, ?)
	ON CONFLICT(lexeme) DO NOTHING
`

// newEntry folds the lexeme and validates the fields.
func newEntry(lexeme, category string, weight int) (Entry, error) {
	e := Entry{
		Lexeme:   Fold(lexeme),
		Category: strings.TrimSpace(category),
		Weight:   weight,
	}
	if e.Lexeme == "" {
		return Entry{}, fmt.Errorf("%w: empty lexeme", ErrInvalidEntry)
	}
	if e.Category == "" {
		return Entry{}, fmt.Errorf("%w: empty category for %q", ErrInvalidEntry, e.Lexeme)
	}
	return e, nil
}

// Insert registers a new lexeme.
//
// Returns a *DuplicateLexemeError if the folded lexeme is already stored. The
// check happens in SQLite, so rows written by another process are detected
// too; in that case the stored row is pulled into the cache before returning,
// and a following Lookup finds it.
//
// The write lock is held across the SQL insert and the cache update.
func (s *Store) Insert(ctx context.Context, lexeme, category string, weight int) (Entry, error) {
	e, err := newEntry(lexeme, category, weight)
	if err != nil {
		return Entry{}, fmt.Errorf("insert lexeme: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, insertLexemeSQL, e.Lexeme, e.Category, e.Weight)
	if err != nil {
		return Entry{}, fmt.Errorf("insert lexeme: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Entry{}, fmt.Errorf("insert lexeme: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		existing, err := s.readEntry(ctx, e.Lexeme)
		if err != nil {
			return Entry{}, fmt.Errorf("insert lexeme: select existing: %w", err)
		}
		s.cacheLocked(existing)
		return existing, &DuplicateLexemeError{Lexeme: e.Lexeme, Existing: existing}
	}

	s.cacheLocked(e)
	s.logger.Info("lexeme registered",
		zap.String("lexeme", e.Lexeme),
		zap.String("category", e.Category),
		zap.Int("weight", e.Weight),
	)
	return e, nil
}

// Initialize applies the seed set if this database has never been seeded.
// Returns the number of rows inserted.
//
// Idempotent: the seeding is recorded in lexicon_meta, and rows are written
// with insert-if-absent semantics, so existing entries are never overwritten
// or duplicated.
func (s *Store) Initialize(ctx context.Context, seed []Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("initialize lexicon: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seededAt string
	err = tx.QueryRowContext(ctx, `SELECT value FROM lexicon_meta WHERE key = 'seeded_at'`).Scan(&seededAt)
	if err == nil {
		s.logger.Debug("lexicon already seeded", zap.String("seeded_at", seededAt))
		return 0, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("initialize lexicon: read meta: %w", err)
	}

	inserted := make([]Entry, 0, len(seed))
	for _, raw := range seed {
		e, err := newEntry(raw.Lexeme, raw.Category, raw.Weight)
		if err != nil {
			return 0, fmt.Errorf("initialize lexicon: %w", err)
		}
		result, err := tx.ExecContext(ctx, insertLexemeSQL, e.Lexeme, e.Category, e.Weight)
		if err != nil {
			return 0, fmt.Errorf("initialize lexicon: insert %q: %w", e.Lexeme, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("initialize lexicon: rows affected: %w", err)
		}
		if n > 0 {
			inserted = append(inserted, e)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO lexicon_meta (key, value) VALUES ('seeded_at', ?)`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, fmt.Errorf("initialize lexicon: write meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("initialize lexicon: commit: %w", err)
	}

	for _, e := range inserted {
		s.cacheLocked(e)
	}

	s.logger.Info("lexicon seeded", zap.Int("inserted", len(inserted)))
	return len(inserted), nil
}

// cacheLocked adds e to the cache if absent. Caller holds s.mu for writing.
func (s *Store) cacheLocked(e Entry) {
	if _, ok := s.entries[e.Lexeme]; ok {
		return
	}
	s.entries[e.Lexeme] = e
	s.keys = append(s.keys, e.Lexeme)
}
