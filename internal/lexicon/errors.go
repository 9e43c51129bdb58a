package lexicon

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is returned when a lexeme or category is empty.
var ErrInvalidEntry = errors.New("invalid lexicon entry")

// DuplicateLexemeError reports an insert of a lexeme that is already stored.
// Existing holds the stored row.
type DuplicateLexemeError struct {
	Lexeme   string
	Existing Entry
}

// Error implements the error interface.
func (e *DuplicateLexemeError) Error() string {
	return fmt.Sprintf("duplicate lexeme %q (stored as %s/%d)", e.Lexeme, e.Existing.Category, e.Existing.Weight)
}

// IsDuplicate returns true if err is (or wraps) a DuplicateLexemeError.
func IsDuplicate(err error) bool {
	var de *DuplicateLexemeError
	return errors.As(err, &de)
}
