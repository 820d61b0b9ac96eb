// Package gradient computes the numeric derivative of a channels-last
// pixel array along every spatial axis.
package gradient

import (
	"fmt"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/ndarray"
)

// Field computes the per-channel derivative of img along every spatial
// axis. The input has its channel axis last, so an N-dimensional image is
// represented by an N+1 dimensional array. The output trailing axis has
// length channels * spatialAxes, ordered channel-major, axis-minor: for a
// 2-D, 2-channel image the ordering is [C0d0, C0d1, C1d0, C1d1].
//
// Interior samples use central differences, boundary samples one-sided
// differences. A spatial axis of size 1 yields a zero derivative.
func Field(img *ndarray.Array) (*ndarray.Array, error) {
	if img.Rank() < 2 {
		return nil, fmt.Errorf("gradient: %w: image must have at least one spatial axis and a trailing channel axis, got rank %d",
			features.ErrInvalidParameter, img.Rank())
	}

	shape := img.Shape()
	spatial := shape[:len(shape)-1]
	channels := shape[len(shape)-1]
	axes := len(spatial)

	outShape := append(append([]int(nil), spatial...), channels*axes)
	out := ndarray.New(outShape...)

	idx := make([]int, len(shape))
	outIdx := make([]int, len(outShape))
	for c := 0; c < channels; c++ {
		idx[len(shape)-1] = c
		for a := 0; a < axes; a++ {
			outIdx[len(outShape)-1] = c*axes + a
			deriveAxis(img, out, idx, outIdx, spatial, a)
		}
	}
	return out, nil
}

// deriveAxis fills the derivative along spatial axis a for the channel
// fixed in idx. idx and outIdx are scratch index vectors whose spatial
// entries are overwritten.
func deriveAxis(img, out *ndarray.Array, idx, outIdx, spatial []int, a int) {
	pos := make([]int, len(spatial))
	for {
		for i, p := range pos {
			idx[i] = p
			outIdx[i] = p
		}
		out.Set(deriveAt(img, idx, a, spatial[a]), outIdx...)

		// advance the spatial counter
		i := len(pos) - 1
		for i >= 0 {
			pos[i]++
			if pos[i] < spatial[i] {
				break
			}
			pos[i] = 0
			i--
		}
		if i < 0 {
			return
		}
	}
}

// deriveAt evaluates the derivative at idx along axis a of size n.
func deriveAt(img *ndarray.Array, idx []int, a, n int) float64 {
	if n == 1 {
		return 0
	}
	p := idx[a]
	switch {
	case p == 0:
		idx[a] = 1
		hi := img.At(idx...)
		idx[a] = 0
		lo := img.At(idx...)
		return hi - lo
	case p == n-1:
		idx[a] = n - 1
		hi := img.At(idx...)
		idx[a] = n - 2
		lo := img.At(idx...)
		idx[a] = p
		return hi - lo
	default:
		idx[a] = p + 1
		hi := img.At(idx...)
		idx[a] = p - 1
		lo := img.At(idx...)
		idx[a] = p
		return (hi - lo) / 2
	}
}
