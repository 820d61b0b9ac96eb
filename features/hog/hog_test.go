package hog_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/steliosploumpis/menpo/features"
	"github.com/steliosploumpis/menpo/features/hog"
	"github.com/steliosploumpis/menpo/ndarray"
)

func randomImage(rows, cols, channels int, seed uint64) *ndarray.Array {
	rng := rand.New(rand.NewPCG(seed, 0))
	img := ndarray.New(rows, cols, channels)
	for i := range img.Data() {
		img.Data()[i] = rng.Float64()
	}
	return img
}

func TestSparseDalalTriggsZeroImage(t *testing.T) {
	img := ndarray.New(64, 64, 1)

	opts := hog.NewOptions()
	opts.Mode = hog.ModeSparse

	res, err := hog.Extract(img, opts)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	// window = 16, step = 8, no padding: a 7x7 grid of 36-value blocks
	fm := res.Features
	if fm.Dim(0) != 7 || fm.Dim(1) != 7 || fm.Dim(2) != 36 {
		t.Fatalf("feature map shape = (%d,%d,%d), want (7,7,36)", fm.Dim(0), fm.Dim(1), fm.Dim(2))
	}
	for i, v := range fm.Data() {
		if v != 0 {
			t.Fatalf("feature %d = %v on a zero image, want 0", i, v)
		}
	}

	centers := res.WindowCenters
	if centers.Dim(0) != 7 || centers.Dim(1) != 7 || centers.Dim(2) != 2 {
		t.Fatalf("centers shape = (%d,%d,%d), want (7,7,2)", centers.Dim(0), centers.Dim(1), centers.Dim(2))
	}
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			wantRow, wantCol := float64(i*8+7), float64(j*8+7)
			if centers.At3(i, j, 0) != wantRow || centers.At3(i, j, 1) != wantCol {
				t.Errorf("center (%d,%d) = (%v,%v), want (%v,%v)",
					i, j, centers.At3(i, j, 0), centers.At3(i, j, 1), wantRow, wantCol)
			}
		}
	}
}

func TestBlockNormalizationBounds(t *testing.T) {
	const eps = 1e-9

	img := randomImage(48, 48, 1, 11)
	opts := hog.NewOptions()
	opts.Mode = hog.ModeSparse

	res, err := hog.Extract(img, opts)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	fm := res.Features
	blockLen := fm.Dim(2)
	data := fm.Data()
	for off := 0; off+blockLen <= len(data); off += blockLen {
		block := data[off : off+blockLen]
		if norm := floats.Norm(block, 2); norm > 1+eps {
			t.Fatalf("block at offset %d has L2 norm %v, want <= 1", off, norm)
		}
		for i, v := range block {
			if v > opts.L2NormClip+eps {
				// renormalization may only shrink clipped components
				t.Fatalf("component %d = %v exceeds clip %v", off+i, v, opts.L2NormClip)
			}
		}
	}
}

func TestDenseWindowValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*hog.Options)
	}{
		{"Window height below block", func(o *hog.Options) {
			o.WindowHeight, o.WindowWidth = 8, 16
			o.WindowUnit = hog.UnitPixels
		}},
		{"Window width above image", func(o *hog.Options) {
			o.WindowHeight, o.WindowWidth = 16, 100
			o.WindowUnit = hog.UnitPixels
		}},
		{"Zero vertical step", func(o *hog.Options) {
			o.WindowStepVertical = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := hog.NewOptions()
			tt.mutate(opts)

			_, err := hog.Extract(ndarray.New(64, 64, 1), opts)
			if !errors.Is(err, features.ErrInvalidParameter) {
				t.Errorf("Extract() error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestRejectsNon2DImages(t *testing.T) {
	_, err := hog.Extract(ndarray.New(8, 8), nil)
	if !errors.Is(err, features.ErrUnsupportedImage) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedImage", err)
	}
}

func TestDenseOutputGeometry(t *testing.T) {
	img := randomImage(64, 64, 1, 3)

	opts := hog.NewOptions()
	opts.WindowStepVertical, opts.WindowStepHorizontal = 8, 8

	res, err := hog.Extract(img, opts)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	// padded dense mode: one window per step-grid position
	fm := res.Features
	if fm.Dim(0) != 8 || fm.Dim(1) != 8 {
		t.Errorf("feature map shape = (%d,%d), want (8,8)", fm.Dim(0), fm.Dim(1))
	}
	if fm.Dim(2) != 36 {
		t.Errorf("descriptor length = %d, want 36", fm.Dim(2))
	}

	// padded centers sit on the step grid
	centers := res.WindowCenters
	if centers.At3(0, 0, 0) != 0 || centers.At3(1, 2, 1) != 16 {
		t.Errorf("centers = (%v, %v), want (0, 16)",
			centers.At3(0, 0, 0), centers.At3(1, 2, 1))
	}
}

func TestSparseZhuRamananGeometry(t *testing.T) {
	tests := []struct {
		name     string
		channels int
	}{
		{"RGB input", 3},
		{"Grayscale input replicated", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := randomImage(64, 64, tt.channels, 7)

			opts := hog.NewOptions()
			opts.Mode = hog.ModeSparse
			opts.Algorithm = hog.ZhuRamanan

			res, err := hog.Extract(img, opts)
			if err != nil {
				t.Fatalf("Extract() unexpected error: %v", err)
			}

			// window = 3*8 = 24, step = 8, no padding: 6x6 windows; the
			// 3x3-cell window yields a single 31-channel cell
			fm := res.Features
			if fm.Dim(0) != 6 || fm.Dim(1) != 6 || fm.Dim(2) != 31 {
				t.Fatalf("feature map shape = (%d,%d,%d), want (6,6,31)", fm.Dim(0), fm.Dim(1), fm.Dim(2))
			}
		})
	}
}

func TestZhuRamananTruncation(t *testing.T) {
	img := randomImage(48, 48, 3, 21)

	opts := hog.NewOptions()
	opts.Mode = hog.ModeSparse
	opts.Algorithm = hog.ZhuRamanan

	res, err := hog.Extract(img, opts)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	// every orientation channel is an average of four values truncated at
	// 0.2; texture channels are bounded by 18 * 0.2 * 0.2357
	for i, v := range res.Features.Data() {
		if v < 0 || v > 18*0.2*0.2357+1e-9 {
			t.Fatalf("feature %d = %v outside the truncation bounds", i, v)
		}
	}
}

func TestZhuRamananRejectsTwoChannels(t *testing.T) {
	opts := hog.NewOptions()
	opts.Mode = hog.ModeSparse
	opts.Algorithm = hog.ZhuRamanan

	_, err := hog.Extract(ndarray.New(64, 64, 2), opts)
	if !errors.Is(err, features.ErrUnsupportedImage) {
		t.Errorf("Extract() error = %v, want ErrUnsupportedImage", err)
	}
}

func TestInputImageNotMutated(t *testing.T) {
	img := randomImage(32, 32, 3, 5)
	original := img.Clone()

	opts := hog.NewOptions()
	opts.Mode = hog.ModeSparse

	if _, err := hog.Extract(img, opts); err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}

	for i, v := range img.Data() {
		if v != original.Data()[i] {
			t.Fatalf("input sample %d changed from %v to %v", i, original.Data()[i], v)
		}
	}
}

func TestDescriptorInterface(t *testing.T) {
	d, err := features.Get("hog")
	if err != nil {
		t.Fatalf("Get(hog) unexpected error: %v", err)
	}

	res, err := d.Extract(ndarray.New(64, 64, 1), nil)
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if res.WindowCenters == nil {
		t.Error("windowed descriptor must report window centers")
	}
}
