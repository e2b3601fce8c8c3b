package simd

// BucketCapacity is D from spec §3/§4.4: the fixed number of tag/offset
// slots a single 64-byte record holds.
const BucketCapacity = 16

// TagMatches compares all 16 lanes of tags against target in one pass and
// returns a bitmask with bit i set iff tags[i] == target, masked down to the
// first used lanes.
//
// This is the bucket pre-filter described in spec §4.5 step 7: "SIMD 16×16-bit
// compare collapsed to a bitmask". A real vector build would do this with one
// packed compare instruction; here it is 16 scalar compares, which produce
// the identical bitmask a vector compare would.
func TagMatches(tags *[BucketCapacity]uint16, used int, target uint16) uint16 {
	if used > BucketCapacity {
		panic("simd: TagMatches: used exceeds bucket capacity")
	}

	var mask uint16
	for i := 0; i < BucketCapacity; i++ {
		if tags[i] == target {
			mask |= 1 << uint(i)
		}
	}
	return mask & (uint16(1)<<uint(used) - 1)
}

// EqualPattern reports whether candidate (the suffix of a query being
// matched against a stored pattern) is byte-equal to stored, where stored is
// the pattern slice found in the domains blob up to but not including its
// terminating NUL.
//
// Both slices are compared with their lengths checked first, so a
// prefix-equal pattern of different length can never produce a false match —
// this is the same guard the domains blob's trailing NUL provides in the
// on-disk format (spec §3, "Domains blob").
func EqualPattern(candidate, stored []byte) bool {
	if len(candidate) != len(stored) {
		return false
	}
	for i := range candidate {
		if candidate[i] != stored[i] {
			return false
		}
	}
	return true
}
