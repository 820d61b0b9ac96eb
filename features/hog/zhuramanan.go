package hog

import (
	"math"

	"github.com/steliosploumpis/menpo/ndarray"
)

// Unit vectors of the 9 contrast-insensitive orientations; negating them
// gives the 18 contrast-sensitive ones.
var (
	zrUU = [9]float64{1.0000, 0.9397, 0.7660, 0.5000, 0.1736, -0.1736, -0.5000, -0.7660, -0.9397}
	zrVV = [9]float64{0.0000, 0.3420, 0.6428, 0.8660, 0.9848, 0.9848, 0.8660, 0.6428, 0.3420}
)

const (
	zrEps        = 0.0001
	zrTruncation = 0.2
	// 1/sqrt(18), projects the four texture-energy sums onto the
	// descriptor's scale
	zrTextureScale = 0.2357
	zrChannels     = 18 + 9 + 4
)

// zhuRamananFeature computes the 31-channel descriptor of Zhu and
// Ramanan: 18 contrast-sensitive orientation channels, 9
// contrast-insensitive ones, and 4 texture-energy channels, each cell
// normalized against its four neighbouring 2x2 cell blocks with
// truncation. Requires a 3-channel window.
type zhuRamananFeature struct {
	cellSize     int
	windowHeight int
	windowWidth  int

	// cell grid and output grid dimensions
	cells0 int
	cells1 int
	out0   int
	out1   int

	// scratch reused across windows
	hist []float64
	norm []float64
}

func newZhuRamananFeature(o *Options, windowHeight, windowWidth int) *zhuRamananFeature {
	f := &zhuRamananFeature{
		cellSize:     o.CellSize,
		windowHeight: windowHeight,
		windowWidth:  windowWidth,
	}
	f.cells0 = int(math.Round(float64(windowHeight) / float64(o.CellSize)))
	f.cells1 = int(math.Round(float64(windowWidth) / float64(o.CellSize)))
	f.out0 = max(f.cells0-2, 0)
	f.out1 = max(f.cells1-2, 0)
	f.hist = make([]float64, f.cells0*f.cells1*18)
	f.norm = make([]float64, f.cells0*f.cells1)
	return f
}

func (f *zhuRamananFeature) descriptorLength() int {
	return f.out0 * f.out1 * zrChannels
}

func (f *zhuRamananFeature) histAt(y, x, o int) *float64 {
	return &f.hist[(y*f.cells1+x)*18+o]
}

// blockEnergy sums the orientation energy of the 2x2 cell block anchored
// at (y, x).
func (f *zhuRamananFeature) blockEnergy(y, x int) float64 {
	return f.norm[y*f.cells1+x] + f.norm[y*f.cells1+x+1] +
		f.norm[(y+1)*f.cells1+x] + f.norm[(y+1)*f.cells1+x+1]
}

func (f *zhuRamananFeature) apply(window *ndarray.Array, out []float64) {
	zero(f.hist)
	zero(f.norm)

	cell := float64(f.cellSize)
	visible0 := f.cells0 * f.cellSize
	visible1 := f.cells1 * f.cellSize

	for y := 1; y < visible0-1; y++ {
		for x := 1; x < visible1-1; x++ {
			ys := min(y, f.windowHeight-2)
			xs := min(x, f.windowWidth-2)

			// pick the channel with the strongest gradient
			var bestDx, bestDy, bestV float64
			for z := 0; z < 3; z++ {
				dx := window.At3(ys, xs+1, z) - window.At3(ys, xs-1, z)
				dy := window.At3(ys+1, xs, z) - window.At3(ys-1, xs, z)
				v := dx*dx + dy*dy
				if z == 0 || v > bestV {
					bestV, bestDx, bestDy = v, dx, dy
				}
			}

			// snap to one of the 18 contrast-sensitive orientations
			bestDot := 0.0
			bestO := 0
			for o := 0; o < 9; o++ {
				dot := zrUU[o]*bestDx + zrVV[o]*bestDy
				if dot > bestDot {
					bestDot = dot
					bestO = o
				} else if -dot > bestDot {
					bestDot = -dot
					bestO = o + 9
				}
			}

			// bilinear vote into the four surrounding cells
			xp := (float64(x)+0.5)/cell - 0.5
			yp := (float64(y)+0.5)/cell - 0.5
			ixp := int(math.Floor(xp))
			iyp := int(math.Floor(yp))
			vx0 := xp - float64(ixp)
			vy0 := yp - float64(iyp)
			vx1 := 1 - vx0
			vy1 := 1 - vy0
			v := math.Sqrt(bestV)

			if ixp >= 0 && iyp >= 0 {
				*f.histAt(iyp, ixp, bestO) += vy1 * vx1 * v
			}
			if ixp+1 < f.cells1 && iyp >= 0 {
				*f.histAt(iyp, ixp+1, bestO) += vy1 * vx0 * v
			}
			if ixp >= 0 && iyp+1 < f.cells0 {
				*f.histAt(iyp+1, ixp, bestO) += vy0 * vx1 * v
			}
			if ixp+1 < f.cells1 && iyp+1 < f.cells0 {
				*f.histAt(iyp+1, ixp+1, bestO) += vy0 * vx0 * v
			}
		}
	}

	// orientation energy per cell over the 9 insensitive orientations
	for i := 0; i < f.cells0*f.cells1; i++ {
		for o := 0; o < 9; o++ {
			s := f.hist[i*18+o] + f.hist[i*18+o+9]
			f.norm[i] += s * s
		}
	}

	outAt := func(y, x, c int) *float64 {
		return &out[(y*f.out1+x)*zrChannels+c]
	}

	for y := 0; y < f.out0; y++ {
		for x := 0; x < f.out1; x++ {
			n1 := 1 / math.Sqrt(f.blockEnergy(y+1, x+1)+zrEps)
			n2 := 1 / math.Sqrt(f.blockEnergy(y, x+1)+zrEps)
			n3 := 1 / math.Sqrt(f.blockEnergy(y+1, x)+zrEps)
			n4 := 1 / math.Sqrt(f.blockEnergy(y, x)+zrEps)

			var t1, t2, t3, t4 float64

			// contrast-sensitive channels
			for o := 0; o < 18; o++ {
				h := *f.histAt(y+1, x+1, o)
				h1 := math.Min(h*n1, zrTruncation)
				h2 := math.Min(h*n2, zrTruncation)
				h3 := math.Min(h*n3, zrTruncation)
				h4 := math.Min(h*n4, zrTruncation)
				*outAt(y, x, o) = 0.5 * (h1 + h2 + h3 + h4)
				t1 += h1
				t2 += h2
				t3 += h3
				t4 += h4
			}

			// contrast-insensitive channels
			for o := 0; o < 9; o++ {
				h := *f.histAt(y+1, x+1, o) + *f.histAt(y+1, x+1, o+9)
				h1 := math.Min(h*n1, zrTruncation)
				h2 := math.Min(h*n2, zrTruncation)
				h3 := math.Min(h*n3, zrTruncation)
				h4 := math.Min(h*n4, zrTruncation)
				*outAt(y, x, 18+o) = 0.5 * (h1 + h2 + h3 + h4)
			}

			// texture-energy channels
			*outAt(y, x, 27) = zrTextureScale * t1
			*outAt(y, x, 28) = zrTextureScale * t2
			*outAt(y, x, 29) = zrTextureScale * t3
			*outAt(y, x, 30) = zrTextureScale * t4
		}
	}
}
