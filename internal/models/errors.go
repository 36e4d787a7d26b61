package models

import (
	"errors"
	"fmt"
)

// Caller-visible errors
var (
	ErrNotFound        = errors.New("team not found")
	ErrDegenerateInput = errors.New("home and away teams must be different")
)

// ProviderError marks a failed provider call. It is always recovered
// locally and folded into the fallback policy.
type ProviderError struct {
	Provider ProviderName
	Op       string
	Err      error
}

// NewProviderError wraps err as a failure of op against provider
func NewProviderError(provider ProviderName, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
