package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool is returned when a pick is needed from an empty pool.
	ErrEmptyPool = errors.New("selector: candidate pool is empty")

	// ErrInvalidDistance marks an oracle result that is negative, NaN or
	// infinite.
	ErrInvalidDistance = errors.New("invalid distance")
)

// OracleError reports a failed distance query. The selection that issued it
// is abandoned; no substitute distance is used.
type OracleError struct {
	Reference string
	Candidate string
	Err       error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("selector: distance(%q, %q): %v", truncate(e.Reference), truncate(e.Candidate), e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

func truncate(s string) string {
	const limit = 40
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
