package insights

import (
	"errors"
	"fmt"
	"strings"

	"greenops-insights/internal/model"
)

// MalformedReading is re-exported so callers of the engine need not import model.
type MalformedReading = model.MalformedReading

var (
	ErrMalformedReading = model.ErrMalformedReading
	ErrValidation       = errors.New("validation failed")
	ErrConfiguration    = errors.New("invalid configuration")
)

// ValidationError is returned in strict mode when any input record is malformed.
type ValidationError struct {
	Problems []*MalformedReading
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Error())
	}
	return fmt.Sprintf("%s: %d malformed record(s): %s", ErrValidation, len(e.Problems), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError names the option that was rejected, using its
// configuration-file key.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
