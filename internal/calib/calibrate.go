package calib

import (
	"github.com/starius/hipermap/internal/labels"
)

// Result is everything Materialize needs: the winning seed and bucket count,
// every pattern's bucket/tag/scan assignment, and the popular-suffix list
// each popular record will hold.
type Result struct {
	Seed     uint32
	Buckets  uint32
	Table    [][]placed
	MaxScans []uint16
	Popular  []string
}

// Calibrate runs spec §4.4's grid search: starting from a bucket count sized
// to the input, it tries cfg.SeedTrials seeds per step; if every seed
// overflows some bucket it grows the bucket count by the 21/20 factor and
// tries again, up to cfg.MaxGrowthSteps times.
//
// patterns must already be preprocessed and pruned (internal/preprocess) and
// popularSuffixes already discovered (internal/popular). Calibrate returns
// ErrNoPatterns if patterns is empty and ErrFailedToCalibrate if the growth
// schedule is exhausted.
//
// Seeds are drawn from a monotonically increasing counter rather than a
// time- or entropy-seeded RNG, so that calibrating the same input twice
// always tries the same seeds in the same order and, on success, reaches the
// same (seed, bucketCount) pair (spec §8, "Determinism under fixed seed").
func Calibrate(patterns []string, popularSuffixes []string, cfg Config) (Result, error) {
	if len(patterns) == 0 {
		return Result{}, ErrNoPatterns
	}

	popularSet := make(map[string]struct{}, len(popularSuffixes))
	for _, s := range popularSuffixes {
		popularSet[s] = struct{}{}
	}

	bucketCount := uint32((len(patterns)+cfg.Capacity-1)/cfg.Capacity) + 1
	var seedCounter uint32 = 1

	for step := 0; step < cfg.MaxGrowthSteps; step++ {
		for trial := 0; trial < cfg.SeedTrials; trial++ {
			seed := seedCounter
			seedCounter++

			a := place(patterns, popularSet, uint64(seed), bucketCount, cfg)
			if !a.ok {
				continue
			}

			maxScans := make([]uint16, bucketCount)
			for b, slots := range a.buckets {
				for _, s := range slots {
					scans := scanCount(s.scans)
					if scans > maxScans[b] {
						maxScans[b] = scans
					}
				}
			}

			return Result{
				Seed:     seed,
				Buckets:  bucketCount,
				Table:    a.buckets,
				MaxScans: maxScans,
				Popular:  popularSuffixes,
			}, nil
		}
		bucketCount = cfg.GrowBuckets(bucketCount)
	}

	return Result{}, ErrFailedToCalibrate
}

// popularTag computes the tag stored for a popular suffix's own slot: the
// chained hash reached by consuming the suffix's labels in full, under the
// winning seed (spec §4.4, popular records "share the same record layout").
func popularTag(suffix string, seed uint32) uint16 {
	lbls := labels.Split(suffix)
	return uint16(fullChainHash(lbls, uint64(seed)) >> 48)
}

// maxPopularPerRecord mirrors the main table: a popular record holds up to
// cfg.Capacity suffixes, per spec §4.4 ("popular records share the same
// record layout").
func maxPopularPerRecord(cfg Config) int { return cfg.Capacity }
