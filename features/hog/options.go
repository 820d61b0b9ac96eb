package hog

import (
	"fmt"

	"github.com/steliosploumpis/menpo/features"
)

// Mode selects how windows are placed over the image.
type Mode string

const (
	// ModeDense slides a caller-configured window over the image.
	ModeDense Mode = "dense"

	// ModeSparse uses the algorithm-canonical window and step sizes.
	ModeSparse Mode = "sparse"
)

// Algorithm selects the per-window descriptor.
type Algorithm string

const (
	// DalalTriggs is the cell/block histogram descriptor with L2 block
	// normalization and clipping.
	DalalTriggs Algorithm = "dalaltriggs"

	// ZhuRamanan is the 31-channel contrast-sensitive/insensitive
	// descriptor with texture-energy features.
	ZhuRamanan Algorithm = "zhuramanan"
)

// WindowUnit is the metric unit of WindowHeight and WindowWidth.
type WindowUnit string

const (
	UnitPixels WindowUnit = "pixels"
	UnitBlocks WindowUnit = "blocks"
)

// StepUnit is the metric unit of the window steps.
type StepUnit string

const (
	StepPixels StepUnit = "pixels"
	StepCells  StepUnit = "cells"
)

// Ensure Options implements features.Options
var _ features.Options = (*Options)(nil)

// Options contains parameters for HOG extraction.
type Options struct {
	// Mode selects dense or sparse window placement. Window geometry
	// fields below apply to dense mode only.
	Mode Mode

	// Algorithm selects the per-window descriptor.
	Algorithm Algorithm

	// NumBins is the number of orientation histogram bins (dalaltriggs).
	NumBins int

	// CellSize is the cell height and width in pixels.
	CellSize int

	// BlockSize is the block height and width in cells (dalaltriggs).
	BlockSize int

	// SignedGradient selects signed ([0, 2pi)) or unsigned ([0, pi))
	// gradient angles (dalaltriggs).
	SignedGradient bool

	// L2NormClip is the clipping value applied to block-normalized
	// descriptor components (dalaltriggs).
	L2NormClip float64

	// WindowHeight and WindowWidth give the window extent in WindowUnit.
	WindowHeight int
	WindowWidth  int
	WindowUnit   WindowUnit

	// WindowStepVertical and WindowStepHorizontal give the window step in
	// WindowStepUnit and control the feature density.
	WindowStepVertical   int
	WindowStepHorizontal int
	WindowStepUnit       StepUnit

	// Padding zero-pads windows that extend past the image boundary.
	Padding bool

	// Verbose logs a summary of the window geometry and output shape.
	Verbose bool
}

// NewOptions returns the default HOG options: dense placement of a
// 1x1-block window stepped by 1 pixel, dalaltriggs descriptor with 9
// signed orientation bins over 8-pixel cells and 2-cell blocks, clipped
// at 0.2.
func NewOptions() *Options {
	return &Options{
		Mode:                 ModeDense,
		Algorithm:            DalalTriggs,
		NumBins:              9,
		CellSize:             8,
		BlockSize:            2,
		SignedGradient:       true,
		L2NormClip:           0.2,
		WindowHeight:         1,
		WindowWidth:          1,
		WindowUnit:           UnitBlocks,
		WindowStepVertical:   1,
		WindowStepHorizontal: 1,
		WindowStepUnit:       StepPixels,
		Padding:              true,
	}
}

// Validate checks every image-independent parameter. Window extent checks
// need the image dimensions and happen in Extract, before any computation.
func (o *Options) Validate() error {
	switch o.Mode {
	case ModeDense, ModeSparse:
	default:
		return fmt.Errorf("hog: %w: HOG features mode must be either dense or sparse, got %q",
			features.ErrInvalidParameter, o.Mode)
	}
	switch o.Algorithm {
	case DalalTriggs, ZhuRamanan:
	default:
		return fmt.Errorf("hog: %w: algorithm must be either dalaltriggs or zhuramanan, got %q",
			features.ErrInvalidParameter, o.Algorithm)
	}
	if o.NumBins <= 0 {
		return fmt.Errorf("hog: %w: number of orientation bins must be > 0, got %d",
			features.ErrInvalidParameter, o.NumBins)
	}
	if o.CellSize <= 0 {
		return fmt.Errorf("hog: %w: cell size (in pixels) must be > 0, got %d",
			features.ErrInvalidParameter, o.CellSize)
	}
	if o.BlockSize <= 0 {
		return fmt.Errorf("hog: %w: block size (in cells) must be > 0, got %d",
			features.ErrInvalidParameter, o.BlockSize)
	}
	if o.L2NormClip <= 0 {
		return fmt.Errorf("hog: %w: value for L2-norm clipping must be > 0.0, got %g",
			features.ErrInvalidParameter, o.L2NormClip)
	}
	if o.Mode == ModeDense {
		switch o.WindowUnit {
		case UnitPixels, UnitBlocks:
		default:
			return fmt.Errorf("hog: %w: window unit must be either pixels or blocks, got %q",
				features.ErrInvalidParameter, o.WindowUnit)
		}
		if o.WindowStepHorizontal <= 0 {
			return fmt.Errorf("hog: %w: horizontal window step must be > 0, got %d",
				features.ErrInvalidParameter, o.WindowStepHorizontal)
		}
		if o.WindowStepVertical <= 0 {
			return fmt.Errorf("hog: %w: vertical window step must be > 0, got %d",
				features.ErrInvalidParameter, o.WindowStepVertical)
		}
		switch o.WindowStepUnit {
		case StepPixels, StepCells:
		default:
			return fmt.Errorf("hog: %w: window step unit must be either pixels or cells, got %q",
				features.ErrInvalidParameter, o.WindowStepUnit)
		}
	}
	return nil
}

// blockInPixels returns the block extent in pixels for the selected
// algorithm: blockSize*cellSize for dalaltriggs, 3*cellSize for
// zhuramanan.
func (o *Options) blockInPixels() int {
	if o.Algorithm == ZhuRamanan {
		return 3 * o.CellSize
	}
	return o.BlockSize * o.CellSize
}

// validateWindow checks the dense-mode window extent against the image
// dimensions.
func (o *Options) validateWindow(imageHeight, imageWidth int) error {
	if o.Mode != ModeDense {
		return nil
	}
	height, width := o.windowInPixels()
	block := o.blockInPixels()
	if height < block || height > imageHeight {
		return fmt.Errorf("hog: %w: window height must be >= block size and <= image height, got %d (block %d, image %d)",
			features.ErrInvalidParameter, height, block, imageHeight)
	}
	if width < block || width > imageWidth {
		return fmt.Errorf("hog: %w: window width must be >= block size and <= image width, got %d (block %d, image %d)",
			features.ErrInvalidParameter, width, block, imageWidth)
	}
	return nil
}

// windowInPixels resolves the dense-mode window extent to pixels.
func (o *Options) windowInPixels() (height, width int) {
	height, width = o.WindowHeight, o.WindowWidth
	if o.WindowUnit == UnitBlocks {
		block := o.blockInPixels()
		height *= block
		width *= block
	}
	return height, width
}

// stepsInPixels resolves the dense-mode window steps to pixels.
func (o *Options) stepsInPixels() (vertical, horizontal int) {
	vertical, horizontal = o.WindowStepVertical, o.WindowStepHorizontal
	if o.WindowStepUnit == StepCells {
		vertical *= o.CellSize
		horizontal *= o.CellSize
	}
	return vertical, horizontal
}
