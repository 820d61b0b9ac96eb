package features

import "errors"

var (
	// ErrInvalidParameter is returned when a feature parameter is out of
	// range, an enum value is unknown, or the input array has a bad shape.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedImage is returned when an image has a rank or channel
	// layout the descriptor cannot operate on.
	ErrUnsupportedImage = errors.New("unsupported image")

	// ErrDescriptorNotFound is returned when a descriptor is not found in
	// the registry.
	ErrDescriptorNotFound = errors.New("descriptor not found")

	// ErrNotImplemented is returned by operations whose design is not yet
	// settled.
	ErrNotImplemented = errors.New("not implemented")
)
