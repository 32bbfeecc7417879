package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePositive checks that a named dimension is a finite number greater
// than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSettings, "%s must be a finite number", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidSettings, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that a named dimension is finite and not
// negative. Zero is allowed.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSettings, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidSettings, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateRange checks that v lies in the closed interval [lo, hi].
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return New(ErrCodeInvalidSettings, "%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateFinite checks every coordinate of a point for NaN or infinity.
// Such points usually come from a malformed site file.
func ValidateFinite(what string, coords ...float64) error {
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return New(ErrCodeInvalidInput, "%s has a non-finite coordinate", what)
		}
	}
	return nil
}

// ValidateFormats checks a list of output format names against the allowed
// set. Names are compared case-insensitively.
func ValidateFormats(formats []string, allowed ...string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "no output format given")
	}
	for _, f := range formats {
		ok := false
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(f), a) {
				ok = true
				break
			}
		}
		if !ok {
			return New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidateLotID validates a stored lot identifier from a URL path. It only
// rejects values that could never be a valid ID; parsing is left to the store.
func ValidateLotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "lot id cannot be empty")
	}
	const maxIDLength = 64
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "lot id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return New(ErrCodeInvalidInput, "lot id contains invalid characters")
		}
	}
	return nil
}
