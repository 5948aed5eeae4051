package math

import "golang.org/x/exp/constraints"

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// FitDimensions scales width and height down, keeping the aspect ratio, so
// that neither exceeds limit. Dimensions never drop below one.
func FitDimensions[T constraints.Integer](width, height, limit T) (T, T) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width >= height {
		h := Max(T(1), height*limit/width)
		return limit, h
	}
	w := Max(T(1), width*limit/height)
	return w, limit
}
