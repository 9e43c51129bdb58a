package oracle

import (
	"context"

	"github.com/roach88/callcheck/internal/resolve"
)

// Reject leaves every unknown word unresolved.
type Reject struct{}

// Decide always cancels.
func (Reject) Decide(context.Context, resolve.Query) (resolve.Decision, error) {
	return resolve.Cancel(), nil
}
