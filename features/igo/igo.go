// Package igo implements Image Gradient Orientation features: per-pixel
// cosine/sine channels of the gradient orientation, optionally with
// double-angle channels.
package igo

import (
	"fmt"
	"math"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/features/gradient"
	"github.com/steliosploumpis/menpo/internal/logger"
	"github.com/steliosploumpis/menpo/ndarray"
)

const descriptorName = "igo"

// Ensure the package descriptor implements features.Descriptor
var _ features.Descriptor = (*Descriptor)(nil)

// Options contains parameters for IGO extraction.
type Options struct {
	// DoubleAngles enables the cos(2phi), sin(2phi) channels, raising the
	// per-input-channel feature count from 2 to 4.
	DoubleAngles bool

	// Verbose logs a summary of the input and output geometry.
	Verbose bool
}

// NewOptions returns the default IGO options.
func NewOptions() *Options {
	return &Options{}
}

// Validate validates the options (all IGO option values are legal).
func (o *Options) Validate() error {
	return nil
}

// Descriptor implements the IGO feature extractor.
type Descriptor struct{}

// Name returns the registry name
func (Descriptor) Name() string { return descriptorName }

// Extract computes the IGO feature image
func (Descriptor) Extract(img *ndarray.Array, opts features.Options) (*features.Result, error) {
	o := NewOptions()
	if opts != nil {
		var ok bool
		if o, ok = opts.(*Options); !ok {
			return nil, fmt.Errorf("igo: %w: options must be *igo.Options", features.ErrInvalidParameter)
		}
	}
	out, err := Extract(img, o)
	if err != nil {
		return nil, err
	}
	return &features.Result{Features: out}, nil
}

// Extract computes the IGO feature image of a 2-D, channels-last image.
// The output holds, per input channel, cos(phi) and sin(phi) of the
// gradient orientation phi, plus cos(2phi) and sin(2phi) when
// DoubleAngles is set, interleaved so each input channel's feature block
// is contiguous.
func Extract(img *ndarray.Array, opts *Options) (*ndarray.Array, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img.Rank() != 3 {
		return nil, fmt.Errorf("igo: %w: IGOs only work on 2D images, expects 3 axes (shape + channels), got %d",
			features.ErrUnsupportedImage, img.Rank())
	}

	featChannels := 2
	if opts.DoubleAngles {
		featChannels = 4
	}

	grad, err := gradient.Field(img)
	if err != nil {
		return nil, err
	}

	rows, cols, channels := img.Dim(0), img.Dim(1), img.Dim(2)
	out := ndarray.New(rows, cols, channels*featChannels)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for ch := 0; ch < channels; ch++ {
				dx := grad.At3(r, c, 2*ch)
				dy := grad.At3(r, c, 2*ch+1)
				phi := math.Atan2(dy, dx)
				base := ch * featChannels
				out.Set3(math.Cos(phi), r, c, base)
				out.Set3(math.Sin(phi), r, c, base+1)
				if opts.DoubleAngles {
					out.Set3(math.Cos(2*phi), r, c, base+2)
					out.Set3(math.Sin(2*phi), r, c, base+3)
				}
			}
		}
	}

	if opts.Verbose {
		lg := logger.Std()
		lg.Info().
			Str("descriptor", descriptorName).
			Int("input_height", rows).
			Int("input_width", cols).
			Int("input_channels", channels).
			Bool("double_angles", opts.DoubleAngles).
			Int("output_channels", channels*featChannels).
			Msg("IGO features")
	}
	return out, nil
}

func init() {
	features.Register(Descriptor{})
}
