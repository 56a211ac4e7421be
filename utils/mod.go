package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}

// Without returns a freshly allocated copy of slice minus the element at i.
// The input is left untouched so saved slice headers stay valid.
func Without[T any](slice []T, i int) []T {
	out := make([]T, 0, len(slice)-1)
	out = append(out, slice[:i]...)
	return append(out, slice[i+1:]...)
}

// Replace returns a freshly allocated copy of slice with the element at i set to v.
func Replace[T any](slice []T, i int, v T) []T {
	out := make([]T, len(slice))
	copy(out, slice)
	out[i] = v
	return out
}

func Sum[T constraints.Integer | constraints.Float](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs[T constraints.Signed | constraints.Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Appended returns a freshly allocated copy of slice with values appended.
func Appended[T any](slice []T, values ...T) []T {
	out := make([]T, 0, len(slice)+len(values))
	out = append(out, slice...)
	return append(out, values...)
}
