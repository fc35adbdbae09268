package xfail

import (
	"errors"
	"fmt"
)

// PlatformError reports a platform-specific exclusion request that matched a
// real test function. Platform-scoped annotations are not supported, so the
// match is reported instead of patched; it is never applied silently.
type PlatformError struct {
	Name string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform-specific exclusion not supported for %q", e.Name)
}

// IsPlatformError checks if the error is or wraps a PlatformError.
func IsPlatformError(err error) bool {
	var pe *PlatformError
	return err != nil && errors.As(err, &pe)
}

// AmbiguousMatchError reports a test name that matched more than one
// definition in the file. Patching the first hit would be a guess, so the
// operation fails loudly instead.
type AmbiguousMatchError struct {
	Name  string
	Count int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("test name %q matches %d definitions; cannot patch safely", e.Name, e.Count)
}

// IsAmbiguousMatchError checks if the error is or wraps an AmbiguousMatchError.
func IsAmbiguousMatchError(err error) bool {
	var ae *AmbiguousMatchError
	return err != nil && errors.As(err, &ae)
}
