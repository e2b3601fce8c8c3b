package calib

import (
	"github.com/starius/hipermap/internal/domaindb"
	"github.com/starius/hipermap/internal/popular"
	"github.com/starius/hipermap/internal/preprocess"
	"github.com/starius/hipermap/internal/record"
)

// PlaceSize returns an upper bound, in bytes, on the buffer Materialize will
// need for raw (un-preprocessed) patterns, without running preprocessing,
// popular-suffix discovery, or calibration. Spec §4.4: replay the same
// growth schedule against the input size, then add padding.
//
// Over-allocation is fine and expected: PlaceSize assumes the worst case at
// every step (no pruning, the maximum number of growth steps, every pattern
// at the maximum length) so the real compile, whatever seed and bucket count
// it lands on, always fits.
func PlaceSize(raw []string) int {
	cfg := DefaultConfig()
	n := len(raw)
	if n == 0 {
		return domaindb.TableStart + domaindb.MinBlobTailPad
	}

	buckets := uint32((n+cfg.Capacity-1)/cfg.Capacity) + 1
	for step := 0; step < cfg.MaxGrowthSteps-1; step++ {
		buckets = cfg.GrowBuckets(buckets)
	}

	popularUpperBound := n
	if popularUpperBound > popular.MaxPopular {
		popularUpperBound = popular.MaxPopular
	}
	popularRecords := (popularUpperBound + cfg.Capacity - 1) / cfg.Capacity

	maxUnit := roundUp16(preprocess.MaxPatternLen + 1)
	blobSize := n*maxUnit + popularUpperBound*maxUnit + domaindb.MinBlobTailPad

	total := domaindb.TableStart + popularRecords*record.Size + int(buckets)*record.Size + blobSize
	return total + domaindb.Alignment
}
