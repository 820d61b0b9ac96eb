package lbp

// RotateLeft applies a circular left shift of k bits to value, treated as
// an nBits-wide unsigned pattern. Bits in positions at or above nBits are
// dropped before the wraparound.
func RotateLeft(value, k, nBits uint32) uint32 {
	mask := uint32(1)<<nBits - 1
	k %= nBits
	return ((value << k) & mask) | ((value & mask) >> (nBits - k))
}

// RotateRight is the mirror of RotateLeft.
func RotateRight(value, k, nBits uint32) uint32 {
	mask := uint32(1)<<nBits - 1
	k %= nBits
	return ((value & mask) >> k) | ((value << (nBits - k)) & mask)
}
