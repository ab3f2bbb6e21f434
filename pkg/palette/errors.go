package palette

import (
	"fmt"

	"github.com/agentstation/venuemap/pkg/errors"
)

var errEmptyFallback = errors.NewValidationError("palette.fallback", nil, "at least one fallback color is required")

// RuleError reports an unusable rule.
type RuleError struct {
	Index   int
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("palette rule %d: %s", e.Index, e.Message)
}

// Is implements errors.Is support.
func (e *RuleError) Is(target error) bool {
	return target == errors.ErrInvalidInput
}
