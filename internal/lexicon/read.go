package lexicon

import (
	"context"
	"fmt"
	"sort"
)

// LoadAll reads every entry from durable storage, keyed by folded lexeme.
// It bypasses the cache.
func (s *Store) LoadAll(ctx context.Context) (map[string]Entry, error) {
	entries, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Entry, len(entries))
	for _, e := range entries {
		out[e.Lexeme] = e
	}
	return out, nil
}

// Reload rebuilds the cache from durable storage.
func (s *Store) Reload(ctx context.Context) error {
	entries, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry, len(entries))
	s.keys = make([]string, 0, len(entries))
	for _, e := range entries {
		s.cacheLocked(e)
	}
	return nil
}

// readAll returns every row ordered by insertion (id ASC).
func (s *Store) readAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lexeme, category, weight
		FROM lexemes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query lexemes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Lexeme, &e.Category, &e.Weight); err != nil {
			return nil, fmt.Errorf("scan lexeme: %w", err)
		}
		e.Lexeme = Fold(e.Lexeme)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lexemes: %w", err)
	}

	return entries, nil
}

// readEntry reads a single row by folded lexeme.
// Returns sql.ErrNoRows if not found.
func (s *Store) readEntry(ctx context.Context, lexeme string) (Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT lexeme, category, weight
		FROM lexemes
		WHERE lexeme = ?
	`, lexeme).Scan(&e.Lexeme, &e.Category, &e.Weight)
	return e, err
}

// Lookup returns the entry for lexeme (case-insensitive) from the cache.
func (s *Store) Lookup(lexeme string) (Entry, bool) {
	key := Fold(lexeme)

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return e, ok
}

// Keys returns every cached lexeme in insertion order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Entries returns every cached entry in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.entries[k])
	}
	return out
}

// Categories returns the distinct categories in use, sorted.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
