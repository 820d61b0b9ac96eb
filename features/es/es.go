// Package es implements Edge Structure features: per-pixel gradient
// direction vectors normalized by a median-biased gradient magnitude.
package es

import (
	"fmt"
	"math"
	"sort"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/features/gradient"
	"github.com/steliosploumpis/menpo/internal/logger"
	"github.com/steliosploumpis/menpo/ndarray"
)

const descriptorName = "es"

// Ensure the package descriptor implements features.Descriptor
var _ features.Descriptor = (*Descriptor)(nil)

// Options contains parameters for ES extraction.
type Options struct {
	// Verbose logs a summary of the input and output geometry.
	Verbose bool
}

// NewOptions returns the default ES options.
func NewOptions() *Options {
	return &Options{}
}

// Validate validates the options (all ES option values are legal).
func (o *Options) Validate() error {
	return nil
}

// Descriptor implements the ES feature extractor.
type Descriptor struct{}

// Name returns the registry name
func (Descriptor) Name() string { return descriptorName }

// Extract computes the ES feature image
func (Descriptor) Extract(img *ndarray.Array, opts features.Options) (*features.Result, error) {
	o := NewOptions()
	if opts != nil {
		var ok bool
		if o, ok = opts.(*Options); !ok {
			return nil, fmt.Errorf("es: %w: options must be *es.Options", features.ErrInvalidParameter)
		}
	}
	out, err := Extract(img, o)
	if err != nil {
		return nil, err
	}
	return &features.Result{Features: out}, nil
}

// Extract computes the ES feature image of a 2-D, channels-last image.
// Per input channel the output holds dx/m and dy/m, where m is the
// gradient magnitude plus the global median magnitude. The median bias
// keeps the division stable in near-flat regions.
func Extract(img *ndarray.Array, opts *Options) (*ndarray.Array, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img.Rank() != 3 {
		return nil, fmt.Errorf("es: %w: ES features only work on 2D images, expects 3 axes (shape + channels), got %d",
			features.ErrUnsupportedImage, img.Rank())
	}

	grad, err := gradient.Field(img)
	if err != nil {
		return nil, err
	}

	rows, cols, channels := img.Dim(0), img.Dim(1), img.Dim(2)
	magnitude := make([]float64, rows*cols*channels)
	i := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for ch := 0; ch < channels; ch++ {
				magnitude[i] = math.Hypot(grad.At3(r, c, 2*ch), grad.At3(r, c, 2*ch+1))
				i++
			}
		}
	}
	bias := median(append([]float64(nil), magnitude...))

	out := ndarray.New(rows, cols, channels*2)
	i = 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			for ch := 0; ch < channels; ch++ {
				m := magnitude[i] + bias
				i++
				out.Set3(grad.At3(r, c, 2*ch)/m, r, c, 2*ch)
				out.Set3(grad.At3(r, c, 2*ch+1)/m, r, c, 2*ch+1)
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
			Float64("magnitude_bias", bias).
			Int("output_channels", channels*2).
			Msg("ES features")
	}
	return out, nil
}

// median returns the median of values, averaging the two middle elements
// for even lengths. values is sorted in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func init() {
	features.Register(Descriptor{})
}
