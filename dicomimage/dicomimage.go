// Package dicomimage bridges uncompressed DICOM pixel buffers into
// channels-last arrays ready for feature extraction.
package dicomimage

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/ndarray"
)

// ToArray converts one uncompressed, interleaved frame into a
// (height, width, channels) float64 array normalized to [0, 1].
// 16-bit samples are read little endian; bitsStored sets the
// normalization range.
func ToArray(frame []byte, width, height, channels, bitsAllocated, bitsStored int) (*ndarray.Array, error) {
	if width < 1 || height < 1 || channels < 1 {
		return nil, fmt.Errorf("dicomimage: %w: frame geometry must be positive, got %dx%dx%d",
			features.ErrInvalidParameter, width, height, channels)
	}
	if bitsStored < 1 || bitsStored > bitsAllocated {
		return nil, fmt.Errorf("dicomimage: %w: bits stored %d must be in [1, %d]",
			features.ErrInvalidParameter, bitsStored, bitsAllocated)
	}

	samples := width * height * channels
	maxValue := float64(uint32(1)<<uint(bitsStored) - 1)

	out := ndarray.New(height, width, channels)
	data := out.Data()
	switch bitsAllocated {
	case 8:
		if len(frame) < samples {
			return nil, fmt.Errorf("dicomimage: %w: frame has %d bytes, need %d",
				features.ErrInvalidParameter, len(frame), samples)
		}
		for i := 0; i < samples; i++ {
			data[i] = float64(frame[i]) / maxValue
		}
	case 16:
		if len(frame) < 2*samples {
			return nil, fmt.Errorf("dicomimage: %w: frame has %d bytes, need %d",
				features.ErrInvalidParameter, len(frame), 2*samples)
		}
		for i := 0; i < samples; i++ {
			data[i] = float64(binary.LittleEndian.Uint16(frame[2*i:2*i+2])) / maxValue
		}
	default:
		return nil, fmt.Errorf("dicomimage: %w: unsupported bits allocated %d (want 8 or 16)",
			features.ErrInvalidParameter, bitsAllocated)
	}
	return out, nil
}

// FrameToArray converts a frame described by DICOM frame metadata.
// Signed and planar pixel data are rejected.
func FrameToArray(frame []byte, info *imagetypes.FrameInfo) (*ndarray.Array, error) {
	if info == nil {
		return nil, fmt.Errorf("dicomimage: %w: frame info is nil", features.ErrInvalidParameter)
	}
	if info.PixelRepresentation != 0 {
		return nil, fmt.Errorf("dicomimage: %w: signed pixel data is not supported",
			features.ErrInvalidParameter)
	}
	if info.PlanarConfiguration != 0 {
		return nil, fmt.Errorf("dicomimage: %w: planar pixel data is not supported",
			features.ErrInvalidParameter)
	}
	return ToArray(frame, int(info.Width), int(info.Height), int(info.SamplesPerPixel),
		int(info.BitsAllocated), int(info.BitsStored))
}
