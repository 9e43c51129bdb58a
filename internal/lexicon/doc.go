// Package lexicon provides the SQLite-backed lexicon: the durable mapping from
// a case-folded word form (lexeme) to its category tag and signed sentiment
// weight.
//
// The store keeps an in-memory cache of every entry, built when the database is
// opened. All reads are served from the cache; Insert is the only writer.
//
// # Invariants
//
// Lexeme uniqueness:
//   - lexemes.lexeme is UNIQUE and always stored folded (see Fold)
//   - Insert detects duplicates at the SQL layer (ON CONFLICT DO NOTHING and a
//     rows-affected check), never only against the cache
//
// Cache consistency:
//   - Insert holds the write lock across the SQL write and the cache update
//   - readers take the read lock, so a lexeme is never visible in the cache
//     before it is durable, nor durable and missing after Insert returns
//
// Seeding:
//   - Initialize applies a seed set once per database, recorded in
//     lexicon_meta; later calls are no-ops and never overwrite rows
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - one open connection (single writer)
//
// Two drivers are supported: "sqlite3" (github.com/mattn/go-sqlite3, cgo) and
// "sqlite" (modernc.org/sqlite, pure Go).
package lexicon
