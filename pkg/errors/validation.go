package errors

import (
	"math"
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePositive rejects zero, negative, NaN and infinite values for the
// named parameter.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidParameter, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidParameter, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateOrder checks a filter order against what a cascade of
// second-order stages can realize: positive, even and at most max.
func ValidateOrder(order, max int) error {
	if order <= 0 {
		return New(ErrCodeInvalidOrder, "filter order must be positive, got %d", order)
	}
	if order%2 != 0 {
		return New(ErrCodeInvalidOrder, "filter order must be even, got %d", order)
	}
	if order > max {
		return New(ErrCodeInvalidOrder, "filter order %d exceeds maximum of %d", order, max)
	}
	return nil
}

// ValidateOutputPath validates a path the CLI or server is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..) after cleaning
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) && strings.HasPrefix(clean, "..") {
		return New(ErrCodeInvalidPath, "path cannot escape the working directory")
	}

	return nil
}
