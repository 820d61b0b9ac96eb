// Package hog implements Histogram of Oriented Gradients features
// computed over a sliding window, with the Dalal-Triggs and Zhu-Ramanan
// per-window descriptors.
package hog

import (
	"fmt"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/internal/logger"
	"github.com/steliosploumpis/menpo/ndarray"
)

const descriptorName = "hog"

// Ensure the package descriptor implements features.Descriptor
var _ features.Descriptor = (*Descriptor)(nil)

// Descriptor implements the HOG feature extractor.
type Descriptor struct{}

// Name returns the registry name
func (Descriptor) Name() string { return descriptorName }

// Extract computes the HOG feature image
func (Descriptor) Extract(img *ndarray.Array, opts features.Options) (*features.Result, error) {
	o := NewOptions()
	if opts != nil {
		var ok bool
		if o, ok = opts.(*Options); !ok {
			return nil, fmt.Errorf("hog: %w: options must be *hog.Options", features.ErrInvalidParameter)
		}
	}
	return Extract(img, o)
}

// Extract computes the HOG feature map of a 2-D, channels-last image and
// the window-center grid describing where every output position came
// from. In dense mode the window geometry comes from the options; in
// sparse mode it is canonical per algorithm (window = block extent,
// step = cell size, no padding).
func Extract(img *ndarray.Array, opts *Options) (*features.Result, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img.Rank() != 3 {
		return nil, fmt.Errorf("hog: %w: HOG features only work on 2D images, expects 3 axes (shape + channels), got %d",
			features.ErrUnsupportedImage, img.Rank())
	}

	imageHeight, imageWidth, channels := img.Dim(0), img.Dim(1), img.Dim(2)
	if opts.Algorithm == ZhuRamanan && channels != 1 && channels != 3 {
		return nil, fmt.Errorf("hog: %w: zhuramanan algorithm expects 1 or 3 channels, got %d",
			features.ErrUnsupportedImage, channels)
	}
	if err := opts.validateWindow(imageHeight, imageWidth); err != nil {
		return nil, err
	}

	// resolve the window geometry in pixels
	var windowHeight, windowWidth, stepVertical, stepHorizontal int
	var padding bool
	if opts.Mode == ModeDense {
		windowHeight, windowWidth = opts.windowInPixels()
		stepVertical, stepHorizontal = opts.stepsInPixels()
		padding = opts.Padding
	} else {
		block := opts.blockInPixels()
		windowHeight, windowWidth = block, block
		stepVertical, stepHorizontal = opts.CellSize, opts.CellSize
		padding = false
	}
	if !padding && (windowHeight > imageHeight || windowWidth > imageWidth) {
		return nil, fmt.Errorf("hog: %w: window %dx%d does not fit the %dx%d image without padding",
			features.ErrInvalidParameter, windowHeight, windowWidth, imageHeight, imageWidth)
	}

	// pre-normalize intensities on a private copy: 3-channel input is
	// assumed [0, 1] and rescaled to the 8-bit range; single-channel
	// input is replicated to 3 channels for zhuramanan, whose texture
	// kernel is defined on color images
	work := img
	switch {
	case channels == 3:
		work = img.Clone()
		work.Scale(255)
	case channels == 1 && opts.Algorithm == ZhuRamanan:
		work = replicateChannels(img, 3)
		work.Scale(255)
	}

	var feature windowFeature
	switch opts.Algorithm {
	case DalalTriggs:
		feature = newDalalTriggsFeature(opts, windowHeight, windowWidth, work.Dim(2))
	case ZhuRamanan:
		feature = newZhuRamananFeature(opts, windowHeight, windowWidth)
	}

	iterator := newWindowIterator(work, windowHeight, windowWidth, stepVertical, stepHorizontal, padding)
	featureMap, centers := iterator.apply(feature)

	if opts.Verbose {
		lg := logger.Std()
		lg.Info().
			Str("descriptor", descriptorName).
			Str("mode", string(opts.Mode)).
			Str("algorithm", string(opts.Algorithm)).
			Int("input_height", imageHeight).
			Int("input_width", imageWidth).
			Int("input_channels", channels).
			Int("window_height", windowHeight).
			Int("window_width", windowWidth).
			Int("window_step_vertical", stepVertical).
			Int("window_step_horizontal", stepHorizontal).
			Bool("padding", padding).
			Int("output_height", featureMap.Dim(0)).
			Int("output_width", featureMap.Dim(1)).
			Int("output_channels", featureMap.Dim(2)).
			Msg("HOG features")
	}

	return &features.Result{Features: featureMap, WindowCenters: centers}, nil
}

// replicateChannels copies a single-channel image into n identical
// channels.
func replicateChannels(img *ndarray.Array, n int) *ndarray.Array {
	rows, cols := img.Dim(0), img.Dim(1)
	out := ndarray.New(rows, cols, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := img.At3(r, c, 0)
			for ch := 0; ch < n; ch++ {
				out.Set3(v, r, c, ch)
			}
		}
	}
	return out
}

func init() {
	features.Register(Descriptor{})
}
