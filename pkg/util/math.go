package util

import "golang.org/x/exp/constraints"

func MinInt[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxInt[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func AbsInt[T constraints.Signed](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
