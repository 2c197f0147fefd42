package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned at construction when a parameter is out of range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateField reports that a raw field was flat and could not be
	// stretched to [0,1]. The accompanying grid is all zeros.
	ErrDegenerateField = errors.New("degenerate field")
	// ErrNonFiniteField reports a raw field holding NaN or an infinity. The
	// accompanying grid is all zeros.
	ErrNonFiniteField = errors.New("non-finite field")
)

// ParamError describes a single rejected parameter.
type ParamError struct {
	Field string
	Value any
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s must be %s, got %v", ErrInvalidParameter, e.Field, e.Rule, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// ParseError reports a parameter value that could not be parsed.
func ParseError(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalidParameter, key, value, err)
}
