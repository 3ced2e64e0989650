package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rank 1", func(t *testing.T) {
		a, err := New([]int32{1, 2, 3}, 3)
		require.NoError(t, err)

		assert.Equal(t, 1, a.Rank())
		assert.Equal(t, 3, a.Len())
		assert.Equal(t, Shape{3}, a.Shape())
	})

	t.Run("rank 3", func(t *testing.T) {
		a, err := New(make([]float64, 24), 2, 3, 4)
		require.NoError(t, err)

		assert.Equal(t, 3, a.Rank())
		assert.Equal(t, 24, a.Len())
		assert.Equal(t, 4, a.Dim(2))
	})

	t.Run("zero extent", func(t *testing.T) {
		a, err := New([]float64{}, 0, 3)
		require.NoError(t, err)

		assert.Equal(t, 2, a.Rank())
		assert.Equal(t, 0, a.Len())
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := New([]int32{1, 2, 3}, 2, 2)
		assert.Error(t, err)
	})

	t.Run("negative extent", func(t *testing.T) {
		_, err := New([]int32{}, -1, 0)
		assert.Error(t, err)
	})
}

func TestFrom2D(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := From2D([][]int32{{1, 2, 3}, {4, 5, 6}})
		require.NoError(t, err)

		assert.Equal(t, Shape{2, 3}, a.Shape())
		assert.Equal(t, []int32{1, 2, 3, 4, 5, 6}, a.Data())
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := From2D([][]int32{{1, 2}, {3}})
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		a, err := From2D([][]float64{})
		require.NoError(t, err)

		assert.Equal(t, Shape{0, 0}, a.Shape())
		assert.Equal(t, 0, a.Len())
	})
}

func TestFrom3D(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := From3D([][][]float64{
			{{1, 2}, {3, 4}},
			{{5, 6}, {7, 8}},
		})
		require.NoError(t, err)

		assert.Equal(t, Shape{2, 2, 2}, a.Shape())
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, a.Data())
	})

	t.Run("ragged plane", func(t *testing.T) {
		_, err := From3D([][][]float64{
			{{1, 2}},
			{{3, 4}, {5, 6}},
		})
		assert.Error(t, err)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := From3D([][][]float64{
			{{1, 2}, {3}},
		})
		assert.Error(t, err)
	})
}

func TestAt(t *testing.T) {
	a, err := From2D([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, int32(1), a.At(0, 0))
	assert.Equal(t, int32(3), a.At(0, 2))
	assert.Equal(t, int32(4), a.At(1, 0))
	assert.Equal(t, int32(6), a.At(1, 2))

	assert.Panics(t, func() { a.At(0) })
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0, -1) })
}

func TestShapeStrides(t *testing.T) {
	assert.Equal(t, []int{1}, Shape{5}.Strides())
	assert.Equal(t, []int{3, 1}, Shape{2, 3}.Strides())
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.Strides())
}

func TestShapeEqualClone(t *testing.T) {
	s := Shape{2, 3}

	assert.True(t, s.Equal(Shape{2, 3}))
	assert.False(t, s.Equal(Shape{3, 2}))
	assert.False(t, s.Equal(Shape{2, 3, 1}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, Shape{2, 3}, s)
}
