// Package arith implements the integer addition exported to guests, with one
// function per overflow policy. Every function is pure and deterministic, so
// any of them is safe to call concurrently.
package arith

import (
	"errors"
	"math"
)

// ErrOverflow is returned by Add when the mathematical sum of its operands is
// not representable as an int32.
var ErrOverflow = errors.New("integer overflow")

// Add returns a + b, or ErrOverflow when the sum is outside
// [math.MinInt32, math.MaxInt32].
func Add(a, b int32) (int32, error) {
	sum := int64(a) + int64(b)
	if sum < math.MinInt32 || sum > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int32(sum), nil
}

// WrapAdd returns a + b with two's-complement wraparound. This is Go's native
// int32 addition.
func WrapAdd(a, b int32) int32 {
	return a + b
}

// SatAdd returns a + b clamped to [math.MinInt32, math.MaxInt32].
func SatAdd(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 {
		return math.MaxInt32
	}
	if sum < math.MinInt32 {
		return math.MinInt32
	}
	return int32(sum)
}
