package calib

import (
	"github.com/starius/hipermap/internal/hashing"
	"github.com/starius/hipermap/internal/labels"
)

// placed is one pattern's outcome of a placement attempt: which bucket it
// landed in, the tag the query engine will compare, and how many scan
// iterations the query engine needs before it can conclude a match (spec
// §4.4 step 6).
type placed struct {
	pattern string
	tag     uint16
	scans   int
}

// attempt is the result of trying one (seed, bucketCount) pair over the
// whole pattern list: every pattern placed into its bucket, or ok=false if
// some bucket overflowed Capacity slots partway through.
type attempt struct {
	buckets [][]placed
	ok      bool
}

// place runs spec §4.4 steps 1-7 for one (seed, bucketCount) candidate. popularSet
// holds the exact popular-suffix strings discovered by the popular package;
// place only needs string membership, never the tag-based lookup the query
// engine uses, because at build time the real pattern text is in hand.
func place(patterns []string, popularSet map[string]struct{}, seed uint64, bucketCount uint32, cfg Config) attempt {
	m := hashing.FastModMagic(bucketCount)
	buckets := make([][]placed, bucketCount)

	for _, p := range patterns {
		lbls := labels.Split(p)
		state := startChain(lbls, seed)

		for state.idx > 0 {
			if _, ok := popularSet[state.suffixString(lbls)]; !ok {
				break
			}
			state = state.extendLeft(lbls)
		}

		bucket := hashing.FastModU32(hashing.Low32(state.h), m, bucketCount)
		if len(buckets[bucket]) >= cfg.Capacity {
			return attempt{ok: false}
		}

		tag := hashing.HighTag(state.chainToStart(lbls))
		buckets[bucket] = append(buckets[bucket], placed{
			pattern: p,
			tag:     tag,
			scans:   state.idx + 1,
		})
	}

	return attempt{buckets: buckets, ok: true}
}
