package containers

// Array is a growable list whose capacity increases in fixed steps instead of
// doubling.
type Array[T any] struct {
	data []T
	step int
}

func NewArray[T any](step int) *Array[T] {
	if step <= 0 {
		step = 1
	}
	return &Array[T]{step: step}
}

// Push appends v, growing the backing storage by one step when it is full.
func (a *Array[T]) Push(v T) int {
	if a.Full() {
		step := a.step
		if step <= 0 {
			step = 1
		}
		grown := make([]T, len(a.data), cap(a.data)+step)
		copy(grown, a.data)
		a.data = grown
	}
	a.data = append(a.data, v)
	return len(a.data) - 1
}

func (a *Array[T]) Full() bool {
	return len(a.data) == cap(a.data)
}

func (a *Array[T]) Len() int {
	return len(a.data)
}

func (a *Array[T]) Cap() int {
	return cap(a.data)
}

func (a *Array[T]) At(i int) *T {
	return &a.data[i]
}

// Slice exposes the live elements. The result aliases the array.
func (a *Array[T]) Slice() []T {
	return a.data
}

func (a *Array[T]) Clear() {
	clear(a.data)
	a.data = a.data[:0]
}
