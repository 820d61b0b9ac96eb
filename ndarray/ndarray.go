// Package ndarray provides a minimal row-major N-dimensional float64 array.
// The trailing axis is interpreted as the channel axis by the feature
// packages; all leading axes are spatial.
package ndarray

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Array is a dense, row-major N-dimensional array of float64 samples.
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// New creates a zero-filled array with the given shape.
// Every dimension must be >= 1.
func New(shape ...int) *Array {
	if len(shape) == 0 {
		panic("ndarray: empty shape")
	}
	size := 1
	for _, d := range shape {
		if d < 1 {
			panic(fmt.Sprintf("ndarray: invalid dimension %d", d))
		}
		size *= d
	}
	a := &Array{
		shape: append([]int(nil), shape...),
		data:  make([]float64, size),
	}
	a.strides = computeStrides(a.shape)
	return a
}

// FromSlice wraps an existing row-major sample slice with the given shape.
// The slice is used directly, not copied; len(data) must equal the product
// of the dimensions.
func FromSlice(data []float64, shape ...int) *Array {
	size := 1
	for _, d := range shape {
		if d < 1 {
			panic(fmt.Sprintf("ndarray: invalid dimension %d", d))
		}
		size *= d
	}
	if len(data) != size {
		panic(fmt.Sprintf("ndarray: data length %d does not match shape size %d", len(data), size))
	}
	a := &Array{
		shape: append([]int(nil), shape...),
		data:  data,
	}
	a.strides = computeStrides(a.shape)
	return a
}

func computeStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// Shape returns the dimensions of the array. The returned slice is a copy.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.shape) }

// Dim returns the size of axis i.
func (a *Array) Dim(i int) int { return a.shape[i] }

// Channels returns the size of the trailing (channel) axis.
func (a *Array) Channels() int { return a.shape[len(a.shape)-1] }

// Len returns the total number of samples.
func (a *Array) Len() int { return len(a.data) }

// Data returns the underlying row-major sample slice.
func (a *Array) Data() []float64 { return a.data }

// Offset returns the flat index of the given multi-dimensional index.
func (a *Array) Offset(idx ...int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for i, j := range idx {
		off += j * a.strides[i]
	}
	return off
}

// At returns the sample at the given index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.Offset(idx...)]
}

// Set stores v at the given index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.Offset(idx...)] = v
}

// At3 returns a sample from a 3-axis (rows, cols, channels) array without
// constructing an index slice.
func (a *Array) At3(r, c, ch int) float64 {
	return a.data[r*a.strides[0]+c*a.strides[1]+ch]
}

// Set3 stores v into a 3-axis (rows, cols, channels) array.
func (a *Array) Set3(v float64, r, c, ch int) {
	a.data[r*a.strides[0]+c*a.strides[1]+ch] = v
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	b := &Array{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    make([]float64, len(a.data)),
	}
	copy(b.data, a.data)
	return b
}

// Scale multiplies every sample by f in place.
func (a *Array) Scale(f float64) {
	floats.Scale(f, a.data)
}
