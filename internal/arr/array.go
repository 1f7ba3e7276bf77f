// Package arr provides a generic grow-by-doubling array with an
// overflow-checked growth contract.
//
// Unlike the built-in append, a failed grow never mutates the array: the
// caller observes the old length and contents and receives ErrOutOfMemory.
// This makes the array safe as the storage primitive for shared structures
// (clip box lists, dash arrays) whose partial mutation would be visible to
// other references.
package arr

import (
	"errors"
	"math"
	"slices"
)

// ErrOutOfMemory is returned when a grow request overflows int arithmetic.
// Allocation failure inside the runtime is not recoverable in Go, so the
// overflow check is the practical boundary this error guards.
var ErrOutOfMemory = errors.New("arr: allocation size overflow")

// Array is a dynamically sized array of T. The zero value is an empty
// array ready for use.
type Array[T any] struct {
	elems []T
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.elems) }

// Cap returns the current capacity.
func (a *Array[T]) Cap() int { return cap(a.elems) }

// Index returns a pointer to the i-th element. Indexing position 0 of an
// empty array returns nil so that empty-collection loops need no special
// case; any other out-of-range index panics.
func (a *Array[T]) Index(i int) *T {
	if i == 0 && len(a.elems) == 0 {
		return nil
	}
	return &a.elems[i]
}

// Slice returns the live backing slice. The caller must not grow it.
func (a *Array[T]) Slice() []T { return a.elems }

// grow ensures capacity for at least need elements, doubling from the
// current capacity (or 1 if empty) until the requirement is met.
func (a *Array[T]) grow(need int) error {
	if need <= cap(a.elems) {
		return nil
	}
	newCap := cap(a.elems)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		if newCap > math.MaxInt/2 {
			return ErrOutOfMemory
		}
		newCap *= 2
	}
	elems := make([]T, len(a.elems), newCap)
	copy(elems, a.elems)
	a.elems = elems
	return nil
}

// Append adds one element, growing as needed.
func (a *Array[T]) Append(v T) error {
	if err := a.grow(len(a.elems) + 1); err != nil {
		return err
	}
	a.elems = append(a.elems, v)
	return nil
}

// AppendMany adds all given elements. On failure the array is unchanged.
func (a *Array[T]) AppendMany(vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	need := len(a.elems) + len(vs)
	if need < 0 {
		return ErrOutOfMemory
	}
	if err := a.grow(need); err != nil {
		return err
	}
	a.elems = append(a.elems, vs...)
	return nil
}

// Allocate reserves n zero-valued slots at the end of the array and
// returns the slice covering them.
func (a *Array[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrOutOfMemory
	}
	need := len(a.elems) + n
	if need < 0 {
		return nil, ErrOutOfMemory
	}
	if err := a.grow(need); err != nil {
		return nil, err
	}
	old := len(a.elems)
	a.elems = a.elems[:need]
	clear(a.elems[old:])
	return a.elems[old:], nil
}

// Truncate shortens the array to n elements. Truncating beyond the current
// length is a no-op. Capacity is retained.
func (a *Array[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(a.elems) {
		a.elems = a.elems[:n]
	}
}

// SortFunc sorts the elements using cmp, which follows the conventions of
// slices.SortFunc.
func (a *Array[T]) SortFunc(cmp func(x, y T) int) {
	slices.SortFunc(a.elems, cmp)
}

// Clone returns a deep copy with capacity equal to its length rounded up
// by the usual doubling rule.
func (a *Array[T]) Clone() (Array[T], error) {
	var c Array[T]
	if err := c.AppendMany(a.elems...); err != nil {
		return Array[T]{}, err
	}
	return c, nil
}
