// Package array provides read-only rectangular views over caller-owned
// slices. A view pairs a flat backing slice with a shape; elements are
// laid out row-major, the innermost axis varying fastest. Views never
// copy or retain the data beyond the calls they serve.
package array

import "fmt"

// Array is a rectangular view over a caller-owned slice.
type Array[T any] struct {
	data  []T
	shape Shape
}

// New wraps data in a view with the given extents, outermost axis
// first. The product of the extents must equal len(data).
func New[T any](data []T, dims ...int) (*Array[T], error) {
	shape := Shape(dims)
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	if n := shape.Len(); n != len(data) {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)", len(data), shape, n)
	}

	return &Array[T]{data: data, shape: shape.Clone()}, nil
}

// From2D flattens rows into a rank-2 view. All rows must have the
// same length.
func From2D[T any](rows [][]T) (*Array[T], error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	data := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("ragged row %d: length %d, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}

	return &Array[T]{data: data, shape: Shape{len(rows), cols}}, nil
}

// From3D flattens a nested slice into a rank-3 view. All planes must
// have the same row count and all rows the same length.
func From3D[T any](planes [][][]T) (*Array[T], error) {
	rows, cols := 0, 0
	if len(planes) > 0 {
		rows = len(planes[0])
		if rows > 0 {
			cols = len(planes[0][0])
		}
	}

	data := make([]T, 0, len(planes)*rows*cols)
	for i, plane := range planes {
		if len(plane) != rows {
			return nil, fmt.Errorf("ragged plane %d: %d rows, want %d", i, len(plane), rows)
		}
		for j, row := range plane {
			if len(row) != cols {
				return nil, fmt.Errorf("ragged row (%d,%d): length %d, want %d", i, j, len(row), cols)
			}
			data = append(data, row...)
		}
	}

	return &Array[T]{data: data, shape: Shape{len(planes), rows, cols}}, nil
}

// Data returns the backing slice in row-major order.
func (a *Array[T]) Data() []T {
	return a.data
}

// Shape returns a copy of the extents.
func (a *Array[T]) Shape() Shape {
	return a.shape.Clone()
}

// Rank returns the number of axes.
func (a *Array[T]) Rank() int {
	return a.shape.Rank()
}

// Len returns the total number of elements.
func (a *Array[T]) Len() int {
	return a.shape.Len()
}

// Dim returns the extent of axis i.
func (a *Array[T]) Dim(i int) int {
	return a.shape[i]
}

// At returns the element at the given indices, one per axis. It
// panics when the index count or any index is out of range, matching
// slice indexing semantics.
func (a *Array[T]) At(idx ...int) T {
	if len(idx) != a.shape.Rank() {
		panic(fmt.Sprintf("array: %d indices for rank %d", len(idx), a.shape.Rank()))
	}

	strides := a.shape.Strides()

	off := 0
	for i, x := range idx {
		if x < 0 || x >= a.shape[i] {
			panic(fmt.Sprintf("array: index %d out of range on axis %d (extent %d)", x, i, a.shape[i]))
		}
		off += x * strides[i]
	}

	return a.data[off]
}
