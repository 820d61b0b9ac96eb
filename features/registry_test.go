package features_test

import (
	"errors"
	"testing"

	"github.com/steliosploumpis/menpo/features"
	_ "github.com/steliosploumpis/menpo/features/es"
	_ "github.com/steliosploumpis/menpo/features/hog"
	_ "github.com/steliosploumpis/menpo/features/igo"
	_ "github.com/steliosploumpis/menpo/features/lbp"
	"github.com/steliosploumpis/menpo/ndarray"
)

func TestDescriptorRegistry(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantFound bool
	}{
		{"Get igo", "igo", true},
		{"Get es", "es", true},
		{"Get hog", "hog", true},
		{"Get lbp", "lbp", true},
		{"Get non-existent descriptor", "sift", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := features.Get(tt.key)

			if tt.wantFound {
				if err != nil {
					t.Fatalf("Get(%q) unexpected error: %v", tt.key, err)
				}
				if d.Name() != tt.key {
					t.Errorf("Name() = %q, want %q", d.Name(), tt.key)
				}
			} else {
				if !errors.Is(err, features.ErrDescriptorNotFound) {
					t.Errorf("Get(%q) error = %v, want ErrDescriptorNotFound", tt.key, err)
				}
			}
		})
	}
}

func TestRegistryList(t *testing.T) {
	descriptors := features.List()
	if len(descriptors) < 4 {
		t.Fatalf("List() returned %d descriptors, want at least 4", len(descriptors))
	}

	seen := make(map[string]bool)
	for _, d := range descriptors {
		seen[d.Name()] = true
	}
	for _, name := range []string{"igo", "es", "hog", "lbp"} {
		if !seen[name] {
			t.Errorf("List() missing descriptor %q", name)
		}
	}
}

type stubDescriptor struct{ name string }

func (s stubDescriptor) Name() string { return s.name }

func (s stubDescriptor) Extract(img *ndarray.Array, opts features.Options) (*features.Result, error) {
	return &features.Result{}, nil
}

func TestRegistryRegisterCustom(t *testing.T) {
	features.Register(stubDescriptor{name: "custom-test"})

	d, err := features.Get("custom-test")
	if err != nil {
		t.Fatalf("Get(custom-test) unexpected error: %v", err)
	}
	if d.Name() != "custom-test" {
		t.Errorf("Name() = %q, want custom-test", d.Name())
	}
}
