// Package simd provides the vectorizable primitives the Static Domain Set
// leans on at compile and query time: ASCII validate+lowercase, right-to-left
// label cutting, and a 16-lane bucket tag scan.
//
// Every exported function here has a single, portable, word-parallel (SWAR —
// SIMD Within A Register) implementation whose observable results are
// bit-identical to a naive byte-at-a-time loop. Per spec §9, "SIMD is an
// optimization, not a contract": a real deployment would additionally
// dispatch to hand-written AVX2/NEON assembly on capable CPUs the way the
// teacher package this module is descended from (github.com/coregx/coregex's
// simd package) dispatches ascii/memchr through golang.org/x/sys/cpu feature
// flags. That assembly is deliberately not fabricated here; see DESIGN.md.
// ValidateLower does use golang.org/x/sys/cpu the same way the teacher does —
// as a capability hint, not a link to hidden .s files — to pick a 32-byte
// unrolled loop over the 8-byte one on CPUs wide enough to benefit; both
// loops are ordinary Go and produce byte-identical output. The rest of this
// package is exactly the scalar/SWAR fallback a real dispatcher would call
// into, and it is what every correctness property in spec §8 is actually
// checked against.
package simd
