package transform

import (
	"fmt"

	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
)

// InputTransform is a what-if change to a business profile. Transforms are composable and
// never modify their argument: CalcInput is a value, so Apply returns the changed copy.
type InputTransform interface {
	// Apply returns a copy of base with the change applied
	Apply(base domain.CalcInput) (domain.CalcInput, error)

	// Name returns a short identifier such as "raise_prices"
	Name() string

	// Description returns a human-readable summary of the change
	Description() string

	// Validate checks the parameters against base without applying anything
	Validate(base domain.CalcInput) error
}

// ApplyTransforms applies transforms in order, each one receiving the output of the previous
// one. The final profile must still pass input validation.
func ApplyTransforms(base domain.CalcInput, transforms []InputTransform) (domain.CalcInput, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return domain.CalcInput{}, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return domain.CalcInput{}, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return domain.CalcInput{}, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	if err := config.ValidateInput(current); err != nil {
		return domain.CalcInput{}, fmt.Errorf("transformed input is invalid: %w", err)
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
