// Package conv provides checked conversions for repeat bounds.
//
// Repeat bounds arrive as user-typed strings. These helpers reject anything
// that is not an unsigned decimal integer within the repetition limit the
// regex engines accept, instead of letting a bad bound reach the engine.
package conv

import (
	"errors"
	"math"
	"strconv"
)

// MaxRepeat is the largest repetition count accepted in {n,m}.
// Matches the limit of regexp/syntax, which coregex parses with.
const MaxRepeat = 1000

var (
	// ErrNotNumber is returned for bounds that are not unsigned decimal integers.
	ErrNotNumber = errors.New("repeat bound is not an unsigned integer")

	// ErrTooLarge is returned for bounds above MaxRepeat.
	ErrTooLarge = errors.New("repeat bound exceeds 1000")
)

// ParseBound parses a repeat bound.
// Leading signs, spaces and decimal points are rejected.
func ParseBound(s string) (int, error) {
	if s == "" {
		return 0, ErrNotNumber
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrNotNumber
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		// Only overflow is possible here, the digits were checked above.
		return 0, ErrTooLarge
	}
	if n > MaxRepeat {
		return 0, ErrTooLarge
	}
	return IntFromUint64(n), nil
}

// IntFromUint64 converts a uint64 to int.
// Panics if n does not fit, which indicates a programming error.
//
//go:inline
func IntFromUint64(n uint64) int {
	if n > math.MaxInt32 {
		panic("integer overflow: uint64 value out of int range")
	}
	return int(n)
}
