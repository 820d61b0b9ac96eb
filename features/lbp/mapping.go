package lbp

import (
	"fmt"
	"math/bits"

	"github.com/steliosploumpis/menpo/features"
)

// MappingType selects the equivalence policy used to reduce raw LBP codes.
type MappingType string

const (
	// MappingU2 collapses all non-uniform patterns (more than 2 circular
	// bit transitions) into one class and keeps every uniform pattern
	// distinct.
	MappingU2 MappingType = "u2"

	// MappingRI collapses patterns related by circular bit rotation.
	MappingRI MappingType = "ri"

	// MappingRIU2 applies both policies: uniform patterns map to their
	// popcount, everything else to a single non-uniform class.
	MappingRIU2 MappingType = "riu2"

	// MappingNone applies no remapping.
	MappingNone MappingType = "none"
)

// Mapping is an immutable lookup table that maps each of the 2^NSamples
// raw neighbourhood codes to a reduced code index.
type Mapping struct {
	// NSamples is the number of neighbourhood sampling points (bits).
	NSamples int

	// Type is the equivalence policy the table was built under.
	Type MappingType

	// Table has length 2^NSamples with entries in [0, NewMax).
	// Nil for MappingNone.
	Table []int

	// NewMax is the number of distinct output codes (0 for MappingNone).
	NewMax int
}

// MappingTable builds the LBP code mapping table for a neighbourhood of
// nSamples sampling points under the given equivalence policy.
func MappingTable(nSamples int, mt MappingType) (*Mapping, error) {
	if nSamples < 1 {
		return nil, fmt.Errorf("lbp: %w: LBP features samples must be greater than 0, got %d",
			features.ErrInvalidParameter, nSamples)
	}

	m := &Mapping{NSamples: nSamples, Type: mt}
	switch mt {
	case MappingU2:
		buildUniform2(m)
	case MappingRI:
		buildRotationInvariant(m)
	case MappingRIU2:
		buildRotationInvariantUniform2(m)
	case MappingNone:
		// no remapping
	default:
		return nil, fmt.Errorf("lbp: %w: LBP features mapping type must be u2, ri, riu2 or none, got %q",
			features.ErrInvalidParameter, mt)
	}
	return m, nil
}

// transitions counts the circular 0->1 and 1->0 transitions of code c,
// equal to the number of 1-bits in XOR(c, rotate_left(c, 1)).
func transitions(c uint32, nSamples int) int {
	return bits.OnesCount32(c ^ RotateLeft(c, 1, uint32(nSamples)))
}

// buildUniform2 assigns sequential indices to uniform codes in ascending
// order and a shared sentinel newMax-1 to all non-uniform codes. The code
// count n*(n-1)+3 is a combinatorial identity for this neighbourhood
// structure, so the sentinel is known before the scan.
func buildUniform2(m *Mapping) {
	n := m.NSamples
	size := 1 << n
	m.NewMax = n*(n-1) + 3
	m.Table = make([]int, size)
	index := 0
	for c := 0; c < size; c++ {
		if transitions(uint32(c), n) <= 2 {
			m.Table[c] = index
			index++
		} else {
			m.Table[c] = m.NewMax - 1
		}
	}
}

// buildRotationInvariant assigns one index per rotation-equivalence class,
// in ascending order of the class's minimal rotation.
func buildRotationInvariant(m *Mapping) {
	n := m.NSamples
	size := 1 << n
	m.Table = make([]int, size)
	classOf := make([]int, size)
	for i := range classOf {
		classOf[i] = -1
	}
	for c := 0; c < size; c++ {
		rm := uint32(c)
		r := uint32(c)
		for j := 1; j < n; j++ {
			r = RotateLeft(r, 1, uint32(n))
			if r < rm {
				rm = r
			}
		}
		if classOf[rm] < 0 {
			classOf[rm] = m.NewMax
			m.NewMax++
		}
		m.Table[c] = classOf[rm]
	}
}

// buildRotationInvariantUniform2 maps uniform codes to their popcount and
// every non-uniform code to the shared class nSamples+1.
func buildRotationInvariantUniform2(m *Mapping) {
	n := m.NSamples
	size := 1 << n
	m.NewMax = n + 2
	m.Table = make([]int, size)
	for c := 0; c < size; c++ {
		if transitions(uint32(c), n) <= 2 {
			m.Table[c] = bits.OnesCount32(uint32(c))
		} else {
			m.Table[c] = n + 1
		}
	}
}
