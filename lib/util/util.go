package util

import "golang.org/x/exp/constraints"

// IsPow2 reports whether v is a power of two.
func IsPow2[T constraints.Unsigned](v T) bool {
	return v != 0 && v&(v-1) == 0
}

// Congruent reports whether a and b are equal modulo m. m must not be zero.
func Congruent[T constraints.Unsigned](a, b, m T) bool {
	return a%m == b%m
}

// AlignUp rounds v up to a multiple of align, which must be a power of two.
func AlignUp[T constraints.Unsigned](v, align T) T {
	return (v + align - 1) &^ (align - 1)
}
