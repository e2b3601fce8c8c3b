package simd

import "encoding/binary"

const dotByte = '.'

// bcastByte replicates b into every byte of a uint64, the standard SWAR
// broadcast used by branchless byte-search tricks.
func bcastByte(b byte) uint64 {
	return uint64(b) * 0x0101010101010101
}

// hasZeroByte reports whether any byte of x is zero, using the classic
// bit-twiddling trick: (x - 0x01..01) & ^x & 0x80..80 is nonzero iff some
// byte of x underflowed from 0x00, which only happens for zero bytes.
func hasZeroByte(x uint64) bool {
	const lo = uint64(0x0101010101010101)
	const hi = uint64(0x8080808080808080)
	return (x-lo)&^x&hi != 0
}

// lastIndexByte returns the index of the rightmost occurrence of c in b, or
// -1 if c does not occur. It scans backward in 8-byte SWAR chunks: a chunk
// is first tested as a whole via hasZeroByte(chunk^bcastByte(c)), and only a
// chunk that might contain c is walked byte-by-byte to pin down the exact
// position.
func lastIndexByte(b []byte, c byte) int {
	n := len(b)
	needle := bcastByte(c)

	i := n
	for i >= 8 {
		chunk := binary.LittleEndian.Uint64(b[i-8 : i])
		if hasZeroByte(chunk ^ needle) {
			for j := i - 1; j >= i-8; j-- {
				if b[j] == c {
					return j
				}
			}
		}
		i -= 8
	}

	for j := i - 1; j >= 0; j-- {
		if b[j] == c {
			return j
		}
	}

	return -1
}

// CutLastLabel is cut_last_label (spec §4.5): it returns the position just
// after the rightmost '.' in b[start:end], or start if b[start:end] contains
// no '.'.
//
// The reference implementation may perform vector loads into a left pad
// region below start, as long as any match whose address is below start is
// rejected; this portable implementation never reads outside b[start:end],
// which trivially satisfies that contract.
func CutLastLabel(b []byte, start, end int) int {
	idx := lastIndexByte(b[start:end], dotByte)
	if idx < 0 {
		return start
	}
	return start + idx + 1
}

// CutTwoLastLabels is cut_two_last_labels (spec §4.5): it returns the start
// of the last two-label window of b[start:end], or start if b[start:end]
// has fewer than two labels.
func CutTwoLastLabels(b []byte, start, end int) int {
	first := lastIndexByte(b[start:end], dotByte)
	if first < 0 {
		return start
	}
	second := lastIndexByte(b[start:start+first], dotByte)
	if second < 0 {
		return start
	}
	return start + second + 1
}
