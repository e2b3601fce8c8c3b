// Package hashing provides the seeded hash and fast-modulus primitives that
// bucket calibration (internal/calib) and the query engine both route
// through, so that build time and query time compute the exact same chained
// hash for the exact same byte spans.
package hashing

import "github.com/zeebo/xxh3"

// Hash64 is hash64_span_ci: a seeded 64-bit hash over an arbitrary byte span.
//
// It performs no case folding itself — callers are expected to have already
// lowercased the span (domain labels are validated+lowercased once, up
// front, by the simd package). The seed lets callers chain hashes across
// label boundaries: Hash64(label, Hash64(nextLabel, seed)) folds two labels
// right-to-left without ever concatenating them into a scratch buffer.
func Hash64(span []byte, seed uint64) uint64 {
	return xxh3.HashSeed(span, seed)
}

// Low32 returns the low 32 bits of h, used to select a bucket via fast
// modulus (see FastModU32).
func Low32(h uint64) uint32 {
	return uint32(h)
}

// HighTag returns the upper 16 bits of h, used as a cheap SIMD pre-filter
// tag inside a bucket (spec: "Tag").
func HighTag(h uint64) uint16 {
	return uint16(h >> 48)
}

// FastModMagic precomputes the magic number M for fast modulus reduction by
// d: M = floor((2^64-1) / d) + 1, i.e. ceil(2^64 / d). For d = 1 this wraps
// to 0, which still gives a mod 1 = 0 in FastModU32.
//
// d must be > 0. The returned M is only valid for divisors in [1, 2^32]; the
// buckets count this module uses never exceeds that range.
func FastModMagic(d uint32) uint64 {
	if d == 0 {
		panic("hashing: FastModMagic: divisor is zero")
	}
	return (^uint64(0))/uint64(d) + 1
}

// FastModU32 computes a mod d given a precomputed magic number M, without
// integer division: a mod d = high64(M*a*d).
//
// This is the hot-path bucket-selection reduction described in spec §4.1;
// it is used identically at build time (calibration/placement) and at query
// time (bucket selection).
func FastModU32(a uint32, m uint64, d uint32) uint32 {
	lowbits := m * uint64(a) // low 64 bits of the 96-bit product M*a
	_, hi := mul64(lowbits, uint64(d))
	return uint32(hi)
}

// mul64 returns the low and high 64 bits of the 128-bit product x*y.
func mul64(x, y uint64) (lo, hi uint64) {
	const mask32 = 1<<32 - 1
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	w0 := x0 * y0
	t := x1*y0 + w0>>32
	w1 := t & mask32
	w2 := t >> 32
	w1 += x0 * y1
	hi = x1*y1 + w2 + w1>>32
	lo = x * y
	return lo, hi
}
