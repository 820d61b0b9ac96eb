package hog

import (
	"math"

	"github.com/steliosploumpis/menpo/ndarray"
)

// windowFeature computes a fixed-length descriptor from a window image.
type windowFeature interface {
	// descriptorLength returns the length of the per-window vector.
	descriptorLength() int

	// apply fills out (of descriptorLength) from the window image.
	apply(window *ndarray.Array, out []float64)
}

// windowIterator slides a rectangular window over a 2-D channels-last
// image. It is constructed per extraction call, used within it, and not
// retained. Out-of-boundary pixels read as zero when padding is enabled.
type windowIterator struct {
	image                  *ndarray.Array
	imageHeight            int
	imageWidth             int
	channels               int
	windowHeight           int
	windowWidth            int
	stepVertical           int
	stepHorizontal         int
	padding                bool
	numWindowsVertically   int
	numWindowsHorizontally int
}

func newWindowIterator(image *ndarray.Array, windowHeight, windowWidth, stepVertical, stepHorizontal int, padding bool) *windowIterator {
	it := &windowIterator{
		image:          image,
		imageHeight:    image.Dim(0),
		imageWidth:     image.Dim(1),
		channels:       image.Dim(2),
		windowHeight:   windowHeight,
		windowWidth:    windowWidth,
		stepVertical:   stepVertical,
		stepHorizontal: stepHorizontal,
		padding:        padding,
	}
	if padding {
		it.numWindowsVertically = ceilDiv(it.imageHeight, stepVertical)
		it.numWindowsHorizontally = ceilDiv(it.imageWidth, stepHorizontal)
	} else {
		it.numWindowsVertically = 1 + (it.imageHeight-windowHeight)/stepVertical
		it.numWindowsHorizontally = 1 + (it.imageWidth-windowWidth)/stepHorizontal
	}
	return it
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// windowBounds returns the pixel extent and center of window (i, j).
// Without padding windows tile from the origin; with padding they center
// on the step grid and may extend past the boundary.
func (it *windowIterator) windowBounds(i, j int) (rowFrom, colFrom, rowCenter, colCenter int) {
	halfHeight := int(math.Round(float64(it.windowHeight) / 2))
	halfWidth := int(math.Round(float64(it.windowWidth) / 2))
	if it.padding {
		rowCenter = i * it.stepVertical
		colCenter = j * it.stepHorizontal
		rowFrom = rowCenter - halfHeight + 1
		colFrom = colCenter - halfWidth + 1
	} else {
		rowFrom = i * it.stepVertical
		colFrom = j * it.stepHorizontal
		rowCenter = rowFrom + halfHeight - 1
		colCenter = colFrom + halfWidth - 1
	}
	return rowFrom, colFrom, rowCenter, colCenter
}

// apply computes feature over every window position and assembles the
// feature map and the window-center grid.
func (it *windowIterator) apply(feature windowFeature) (featureMap, centers *ndarray.Array) {
	length := feature.descriptorLength()
	featureMap = ndarray.New(it.numWindowsVertically, it.numWindowsHorizontally, length)
	centers = ndarray.New(it.numWindowsVertically, it.numWindowsHorizontally, 2)

	window := ndarray.New(it.windowHeight, it.windowWidth, it.channels)
	out := featureMap.Data()

	for i := 0; i < it.numWindowsVertically; i++ {
		for j := 0; j < it.numWindowsHorizontally; j++ {
			rowFrom, colFrom, rowCenter, colCenter := it.windowBounds(i, j)
			it.copyWindow(window, rowFrom, colFrom)

			offset := (i*it.numWindowsHorizontally + j) * length
			feature.apply(window, out[offset:offset+length])

			centers.Set3(float64(rowCenter), i, j, 0)
			centers.Set3(float64(colCenter), i, j, 1)
		}
	}
	return featureMap, centers
}

// copyWindow fills window with the image content starting at (rowFrom,
// colFrom), zeroing out-of-boundary samples.
func (it *windowIterator) copyWindow(window *ndarray.Array, rowFrom, colFrom int) {
	for r := 0; r < it.windowHeight; r++ {
		srcRow := rowFrom + r
		for c := 0; c < it.windowWidth; c++ {
			srcCol := colFrom + c
			inside := srcRow >= 0 && srcRow < it.imageHeight && srcCol >= 0 && srcCol < it.imageWidth
			for ch := 0; ch < it.channels; ch++ {
				if inside {
					window.Set3(it.image.At3(srcRow, srcCol, ch), r, c, ch)
				} else {
					window.Set3(0, r, c, ch)
				}
			}
		}
	}
}
