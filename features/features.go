// Package features defines the universal surface shared by all image
// feature descriptors: the Descriptor interface, the Options validation
// contract, and a registry for lookup by name.
//
// Images are ndarray.Array values with the channel axis last. A descriptor
// never mutates the caller's image; any in-place rescaling happens on a
// private working copy.
package features

import "github.com/steliosploumpis/menpo/ndarray"

// Descriptor is the universal interface for all feature extractors.
type Descriptor interface {
	// Extract computes the feature image for the given pixel data.
	// A nil opts selects the descriptor's defaults.
	Extract(img *ndarray.Array, opts Options) (*Result, error)

	// Name returns the descriptor's registry name.
	Name() string
}

// Options is an interface for descriptor-specific parameters.
type Options interface {
	// Validate checks if the options are valid.
	Validate() error
}

// Result contains the output of a feature extraction.
type Result struct {
	// Features holds the feature image. Its spatial shape matches the
	// input for per-pixel descriptors, or the window grid for windowed
	// descriptors; the trailing axis holds the feature channels.
	Features *ndarray.Array

	// WindowCenters holds, for windowed descriptors, the source window
	// center of every output position as (row, column) pixel coordinates
	// in an (outputHeight, outputWidth, 2) array. Nil for per-pixel
	// descriptors.
	WindowCenters *ndarray.Array
}
