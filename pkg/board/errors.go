package board

import "fmt"

// ValidationError reports an inconsistency in a board description found
// during model construction. The Entity field names the offending layer,
// net, footprint, or via so the description can be fixed directly.
type ValidationError struct {
	Entity string // What is wrong (e.g., `via 3 at (10.00, 20.00)`)
	Reason string // Why it is wrong
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid board model: %s: %s", e.Entity, e.Reason)
}

func validationErrorf(entity, format string, args ...interface{}) error {
	return &ValidationError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}
