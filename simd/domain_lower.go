package simd

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// wideChunk reports whether this CPU can be expected to run a 32-byte-wide
// loop no slower than four separate 8-byte ones — true on hardware with
// AVX2 or ASIMD, where a real vectorized build would issue one wide compare
// instead of this package's unrolled-scalar stand-in (see doc.go). There is
// no assembly behind this flag: it only chooses between two portable Go
// loops over the exact same bytes, so the result is identical either way.
var wideChunk = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// lowerTable maps every byte to its validated, lowercased form, or to 0 if
// the byte is not in [A-Za-z0-9._-]. None of the valid outputs are 0, so 0
// is an unambiguous "invalid" sentinel.
var lowerTable = buildLowerTable()

func buildLowerTable() [256]byte {
	var t [256]byte
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c
	}
	for c := byte('a'); c <= 'z'; c++ {
		t[c] = c
	}
	for c := byte('A'); c <= 'Z'; c++ {
		t[c] = c + ('a' - 'A')
	}
	t['.'] = '.'
	t['_'] = '_'
	t['-'] = '-'
	return t
}

// hasHighBit reports whether any byte in an 8-byte SWAR chunk has its high
// bit set, i.e. is outside the 7-bit ASCII range. Used as a cheap whole-chunk
// rejection before the table falls through to per-byte validation.
func hasHighBit(chunk uint64) bool {
	const hi8 = uint64(0x8080808080808080)
	return chunk&hi8 != 0
}

// ValidateLower is domain_to_lower (spec §4.1): it validates that every byte
// of src is in [A-Za-z0-9._-] and writes the lowercased form to dst.
//
// dst must have length >= len(src); ValidateLower never reads or writes past
// dst[:len(src)], so callers are free to reserve extra right-padding bytes
// (e.g. 32 bytes, for a later vectorized tail compare) in dst without those
// bytes constraining this call.
//
// Returns false, leaving dst partially written, if any byte is invalid.
func ValidateLower(dst, src []byte) bool {
	n := len(src)
	if len(dst) < n {
		panic("simd: ValidateLower: dst shorter than src")
	}

	i := 0
	if wideChunk {
		for ; i+32 <= n; i += 32 {
			c0 := binary.LittleEndian.Uint64(src[i : i+8])
			c1 := binary.LittleEndian.Uint64(src[i+8 : i+16])
			c2 := binary.LittleEndian.Uint64(src[i+16 : i+24])
			c3 := binary.LittleEndian.Uint64(src[i+24 : i+32])
			if hasHighBit(c0) || hasHighBit(c1) || hasHighBit(c2) || hasHighBit(c3) {
				return false
			}
			for j := i; j < i+32; j++ {
				v := lowerTable[src[j]]
				if v == 0 {
					return false
				}
				dst[j] = v
			}
		}
	}

	// Fast whole-chunk rejection: any non-ASCII byte (high bit set) can
	// never be valid, so bail before touching the per-byte table.
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(src[i : i+8])
		if hasHighBit(chunk) {
			return false
		}
		for j := i; j < i+8; j++ {
			v := lowerTable[src[j]]
			if v == 0 {
				return false
			}
			dst[j] = v
		}
	}

	for ; i < n; i++ {
		if src[i] >= 0x80 {
			return false
		}
		v := lowerTable[src[i]]
		if v == 0 {
			return false
		}
		dst[i] = v
	}

	return true
}
