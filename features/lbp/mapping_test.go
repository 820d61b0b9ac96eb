package lbp

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/steliosploumpis/menpo/features"
)

func TestMappingRIU2EightSamples(t *testing.T) {
	m, err := MappingTable(8, MappingRIU2)
	if err != nil {
		t.Fatalf("MappingTable() unexpected error: %v", err)
	}

	if m.NewMax != 10 {
		t.Errorf("NewMax = %d, want 10", m.NewMax)
	}
	if len(m.Table) != 256 {
		t.Fatalf("table length = %d, want 256", len(m.Table))
	}

	for c := 0; c < 256; c++ {
		uniform := transitions(uint32(c), 8) <= 2
		if uniform {
			if want := bits.OnesCount32(uint32(c)); m.Table[c] != want {
				t.Errorf("table[%#08b] = %d, want popcount %d", c, m.Table[c], want)
			}
		} else if m.Table[c] != 9 {
			t.Errorf("table[%#08b] = %d, want non-uniform class 9", c, m.Table[c])
		}
	}

	// all nine popcount classes appear among the uniform codes
	seen := make(map[int]bool)
	for c := 0; c < 256; c++ {
		if transitions(uint32(c), 8) <= 2 {
			seen[m.Table[c]] = true
		}
	}
	if len(seen) != 9 {
		t.Errorf("uniform codes span %d distinct values, want 9", len(seen))
	}
}

func TestMappingU2EightSamples(t *testing.T) {
	m, err := MappingTable(8, MappingU2)
	if err != nil {
		t.Fatalf("MappingTable() unexpected error: %v", err)
	}

	if m.NewMax != 59 {
		t.Errorf("NewMax = %d, want 59 (8*7+3)", m.NewMax)
	}

	// 0b10101010 has 8 circular transitions: non-uniform sentinel
	if m.Table[0b10101010] != 58 {
		t.Errorf("table[0b10101010] = %d, want sentinel 58", m.Table[0b10101010])
	}
	// all-zero and all-one codes are uniform; ascending assignment makes
	// code 0 the first index
	if m.Table[0] != 0 {
		t.Errorf("table[0] = %d, want 0", m.Table[0])
	}

	// uniform codes receive the indices 0..57 exactly once
	seen := make(map[int]int)
	uniformCount := 0
	for c := 0; c < 256; c++ {
		if transitions(uint32(c), 8) <= 2 {
			uniformCount++
			seen[m.Table[c]]++
		}
	}
	if uniformCount != 58 {
		t.Errorf("uniform code count = %d, want 58", uniformCount)
	}
	for idx, n := range seen {
		if n != 1 {
			t.Errorf("uniform index %d assigned %d times, want once", idx, n)
		}
		if idx < 0 || idx > 57 {
			t.Errorf("uniform index %d out of range [0, 57]", idx)
		}
	}
}

func TestMappingRIRotationClasses(t *testing.T) {
	m, err := MappingTable(4, MappingRI)
	if err != nil {
		t.Fatalf("MappingTable() unexpected error: %v", err)
	}

	// cyclic rotations of 0b0011 share one table entry
	rotations := []int{0b0011, 0b0110, 0b1100, 0b1001}
	want := m.Table[0b0011]
	for _, c := range rotations {
		if m.Table[c] != want {
			t.Errorf("table[%#04b] = %d, want %d (same rotation class)", c, m.Table[c], want)
		}
	}

	// 0b0101 is a different class
	if m.Table[0b0101] == want {
		t.Errorf("table[0b0101] = %d, should differ from the 0b0011 class", m.Table[0b0101])
	}

	// 4-bit necklace count
	if m.NewMax != 6 {
		t.Errorf("NewMax = %d, want 6", m.NewMax)
	}
}

func TestMappingRIEightSampleClassCount(t *testing.T) {
	m, err := MappingTable(8, MappingRI)
	if err != nil {
		t.Fatalf("MappingTable() unexpected error: %v", err)
	}
	// number of 8-bit binary necklaces
	if m.NewMax != 36 {
		t.Errorf("NewMax = %d, want 36", m.NewMax)
	}
	for c, v := range m.Table {
		if v < 0 || v >= m.NewMax {
			t.Fatalf("table[%d] = %d outside [0, %d)", c, v, m.NewMax)
		}
	}
}

func TestMappingNone(t *testing.T) {
	m, err := MappingTable(8, MappingNone)
	if err != nil {
		t.Fatalf("MappingTable() unexpected error: %v", err)
	}
	if m.Table != nil {
		t.Errorf("table = %v, want nil (no remapping)", m.Table)
	}
	if m.NewMax != 0 {
		t.Errorf("NewMax = %d, want 0", m.NewMax)
	}
}

func TestMappingTableInvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		nSamples int
		mt       MappingType
	}{
		{"Zero samples", 0, MappingRIU2},
		{"Negative samples", -3, MappingU2},
		{"Unknown mapping type", 8, MappingType("u3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MappingTable(tt.nSamples, tt.mt)
			if !errors.Is(err, features.ErrInvalidParameter) {
				t.Errorf("MappingTable(%d, %q) error = %v, want ErrInvalidParameter", tt.nSamples, tt.mt, err)
			}
		})
	}
}
