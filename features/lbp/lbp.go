// Package lbp provides Local Binary Pattern mapping tables built from
// bit-rotation invariants, plus the parameter surface of the LBP
// descriptor.
package lbp

import (
	"fmt"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/ndarray"
)

const descriptorName = "lbp"

// Ensure the package descriptor implements features.Descriptor
var _ features.Descriptor = (*Descriptor)(nil)

// Mode selects the LBP output form.
type Mode string

const (
	// ModeImage produces a code image.
	ModeImage Mode = "image"

	// ModeHist produces a code histogram.
	ModeHist Mode = "hist"
)

// Options contains parameters for LBP extraction. Radius and Samples are
// parallel lists describing one or more neighbourhood scales.
type Options struct {
	Radius  []int
	Samples []int
	Mapping MappingType
	Mode    Mode

	// Verbose logs a summary of the input and output geometry.
	Verbose bool
}

// NewOptions returns the default LBP options: a single 8-sample,
// radius-1 neighbourhood with the riu2 mapping.
func NewOptions() *Options {
	return &Options{
		Radius:  []int{1},
		Samples: []int{8},
		Mapping: MappingRIU2,
		Mode:    ModeImage,
	}
}

// Validate validates the options.
func (o *Options) Validate() error {
	if len(o.Radius) == 0 {
		return fmt.Errorf("lbp: %w: LBP features radius list must not be empty", features.ErrInvalidParameter)
	}
	for _, r := range o.Radius {
		if r < 1 {
			return fmt.Errorf("lbp: %w: LBP features radius must be greater than 0, got %d",
				features.ErrInvalidParameter, r)
		}
	}
	if len(o.Samples) == 0 {
		return fmt.Errorf("lbp: %w: LBP features samples list must not be empty", features.ErrInvalidParameter)
	}
	for _, s := range o.Samples {
		if s < 1 {
			return fmt.Errorf("lbp: %w: LBP features samples must be greater than 0, got %d",
				features.ErrInvalidParameter, s)
		}
	}
	if len(o.Radius) != len(o.Samples) {
		return fmt.Errorf("lbp: %w: LBP features radius and samples lists must have equal length, got %d and %d",
			features.ErrInvalidParameter, len(o.Radius), len(o.Samples))
	}
	switch o.Mapping {
	case MappingU2, MappingRI, MappingRIU2, MappingNone:
	default:
		return fmt.Errorf("lbp: %w: LBP features mapping type must be u2, ri, riu2 or none, got %q",
			features.ErrInvalidParameter, o.Mapping)
	}
	switch o.Mode {
	case ModeImage, ModeHist:
	default:
		return fmt.Errorf("lbp: %w: LBP features mode must be either image or hist, got %q",
			features.ErrInvalidParameter, o.Mode)
	}
	return nil
}

// Descriptor implements the LBP feature extractor surface.
type Descriptor struct{}

// Name returns the registry name
func (Descriptor) Name() string { return descriptorName }

// Extract validates the LBP parameters. The code-image computation itself
// is not implemented; only the mapping tables (see MappingTable and
// TableCache) are settled design. The call fails with ErrNotImplemented
// after validation succeeds.
func (Descriptor) Extract(img *ndarray.Array, opts features.Options) (*features.Result, error) {
	o := NewOptions()
	if opts != nil {
		var ok bool
		if o, ok = opts.(*Options); !ok {
			return nil, fmt.Errorf("lbp: %w: options must be *lbp.Options", features.ErrInvalidParameter)
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if img.Rank() != 3 {
		return nil, fmt.Errorf("lbp: %w: LBP features only work on 2D images, expects 3 axes (shape + channels), got %d",
			features.ErrUnsupportedImage, img.Rank())
	}
	return nil, fmt.Errorf("lbp: code image computation: %w", features.ErrNotImplemented)
}

func init() {
	features.Register(Descriptor{})
}
