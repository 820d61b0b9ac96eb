package hog

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/steliosploumpis/menpo/ndarray"
)

// dalalTriggsFeature computes the Dalal-Triggs HOG descriptor of a window:
// trilinear-interpolated orientation votes accumulated into a cell grid,
// then per-block L2 normalization with clipping and renormalization.
//
// The cell grid carries one guard cell on every side (hist1 x hist2), so a
// window of H x W pixels with cell size c has hist1 = 2 + ceil(H/c - 0.5)
// cell rows and hist1 - blockSize - 1 block rows.
type dalalTriggsFeature struct {
	numBins   int
	cellSize  int
	blockSize int
	signed    bool
	clip      float64

	windowHeight int
	windowWidth  int
	channels     int

	hist1  int
	hist2  int
	blocks int

	// scratch reused across windows
	hist  []float64
	block []float64
}

func newDalalTriggsFeature(o *Options, windowHeight, windowWidth, channels int) *dalalTriggsFeature {
	f := &dalalTriggsFeature{
		numBins:      o.NumBins,
		cellSize:     o.CellSize,
		blockSize:    o.BlockSize,
		signed:       o.SignedGradient,
		clip:         o.L2NormClip,
		windowHeight: windowHeight,
		windowWidth:  windowWidth,
		channels:     channels,
	}
	f.hist1 = 2 + int(math.Ceil(float64(windowHeight)/float64(o.CellSize)-0.5))
	f.hist2 = 2 + int(math.Ceil(float64(windowWidth)/float64(o.CellSize)-0.5))
	f.blocks = (f.hist1 - f.blockSize - 1) * (f.hist2 - f.blockSize - 1)
	f.hist = make([]float64, f.hist1*f.hist2*f.numBins)
	f.block = make([]float64, f.blockSize*f.blockSize*f.numBins)
	return f
}

func (f *dalalTriggsFeature) descriptorLength() int {
	return f.blocks * f.blockSize * f.blockSize * f.numBins
}

func (f *dalalTriggsFeature) histAt(y, x, b int) *float64 {
	return &f.hist[(y*f.hist2+x)*f.numBins+b]
}

func (f *dalalTriggsFeature) apply(window *ndarray.Array, out []float64) {
	for i := range f.hist {
		f.hist[i] = 0
	}

	binsSize := math.Pi / float64(f.numBins)
	if f.signed {
		binsSize *= 2
	}
	cell := float64(f.cellSize)

	for y := 0; y < f.windowHeight; y++ {
		for x := 0; x < f.windowWidth; x++ {
			// gradient of the channel with the strongest response
			var bestDx, bestDy, bestMag float64
			for z := 0; z < f.channels; z++ {
				var dx, dy float64
				switch {
				case f.windowWidth == 1:
					dx = 0
				case x == 0:
					dx = window.At3(y, x+1, z)
				case x == f.windowWidth-1:
					dx = -window.At3(y, x-1, z)
				default:
					dx = window.At3(y, x+1, z) - window.At3(y, x-1, z)
				}
				switch {
				case f.windowHeight == 1:
					dy = 0
				case y == 0:
					dy = -window.At3(y+1, x, z)
				case y == f.windowHeight-1:
					dy = window.At3(y-1, x, z)
				default:
					dy = window.At3(y-1, x, z) - window.At3(y+1, x, z)
				}
				mag := dx*dx + dy*dy
				if z == 0 || mag > bestMag {
					bestMag, bestDx, bestDy = mag, dx, dy
				}
			}
			magnitude := math.Sqrt(bestMag)
			orientation := math.Atan2(bestDy, bestDx)
			if orientation < 0 {
				orientation += math.Pi
				if f.signed {
					orientation += math.Pi
				}
			}

			// trilinear interpolation between the two nearest cells along
			// each spatial axis and the two nearest orientation bins
			bin1 := int(math.Floor(0.5+orientation/binsSize)) - 1
			bin2 := bin1 + 1
			x1 := int(math.Floor(0.5 + float64(x)/cell))
			x2 := x1 + 1
			y1 := int(math.Floor(0.5 + float64(y)/cell))
			y2 := y1 + 1

			xc := (float64(x1)-0.5)*cell + 0.5
			yc := (float64(y1)-0.5)*cell + 0.5
			oc := (float64(bin1) + 0.5) * binsSize

			if bin2 == f.numBins {
				bin2 = 0
			}
			if bin1 < 0 {
				bin1 = f.numBins - 1
			}

			wx2 := (float64(x) + 1 - xc) / cell
			wy2 := (float64(y) + 1 - yc) / cell
			wo2 := (orientation - oc) / binsSize

			*f.histAt(y1, x1, bin1) += magnitude * (1 - wx2) * (1 - wy2) * (1 - wo2)
			*f.histAt(y1, x1, bin2) += magnitude * (1 - wx2) * (1 - wy2) * wo2
			*f.histAt(y2, x1, bin1) += magnitude * (1 - wx2) * wy2 * (1 - wo2)
			*f.histAt(y2, x1, bin2) += magnitude * (1 - wx2) * wy2 * wo2
			*f.histAt(y1, x2, bin1) += magnitude * wx2 * (1 - wy2) * (1 - wo2)
			*f.histAt(y1, x2, bin2) += magnitude * wx2 * (1 - wy2) * wo2
			*f.histAt(y2, x2, bin1) += magnitude * wx2 * wy2 * (1 - wo2)
			*f.histAt(y2, x2, bin2) += magnitude * wx2 * wy2 * wo2
		}
	}

	// block normalization: L2 normalize, clip, renormalize
	idx := 0
	for x := 1; x < f.hist2-f.blockSize; x++ {
		for y := 1; y < f.hist1-f.blockSize; y++ {
			k := 0
			for i := 0; i < f.blockSize; i++ {
				for j := 0; j < f.blockSize; j++ {
					for b := 0; b < f.numBins; b++ {
						f.block[k] = *f.histAt(y+i, x+j, b)
						k++
					}
				}
			}

			norm := floats.Norm(f.block, 2)
			if norm > 0 {
				floats.Scale(1/norm, f.block)
				for i, v := range f.block {
					if v > f.clip {
						f.block[i] = f.clip
					}
				}
			} else {
				zero(f.block)
			}
			// renormalize, keeping the clip bound on the final values
			norm = floats.Norm(f.block, 2)
			if norm > 0 {
				floats.Scale(1/norm, f.block)
				for i, v := range f.block {
					if v > f.clip {
						f.block[i] = f.clip
					}
				}
			}

			copy(out[idx:idx+len(f.block)], f.block)
			idx += len(f.block)
		}
	}
}

func zero(s []float64) {
	for i := range s {
		s[i] = 0
	}
}
