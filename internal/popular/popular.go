// Package popular implements popular-suffix discovery (spec §4.3): finding
// the k-label suffixes shared by more than D patterns, so the query engine
// can skip past them before selecting a bucket and bound probe depth even
// under an adversarial input like "a.b.c....example.com".
package popular

import (
	"sort"

	"github.com/starius/hipermap/internal/labels"
)

// Discover runs the iterative refinement algorithm of spec §4.3 over
// patterns (already preprocessed, pruned, lowercased) and returns the sorted,
// deduplicated list of popular suffixes. capacity is D, the per-bucket slot
// count.
//
// Discover returns ErrTooManyPopular, with a nil suffix list, if the
// discovered set exceeds MaxPopular; per spec §8 no partial result is
// produced in that case, so the caller must treat a non-nil error as having
// discarded any work in progress.
func Discover(patterns []string, capacity int) ([]string, error) {
	frontier := patterns
	popularSet := make(map[string]struct{})

	for k := 2; len(frontier) > 0; k++ {
		groups := make(map[string][]string)
		for _, p := range frontier {
			key := labels.LastK(p, k)
			groups[key] = append(groups[key], p)
		}

		var next []string
		for key, members := range groups {
			if len(members) > capacity {
				popularSet[key] = struct{}{}
				next = append(next, members...)
			}
		}
		frontier = next
	}

	popular := make([]string, 0, len(popularSet))
	for key := range popularSet {
		popular = append(popular, key)
	}
	sort.Strings(popular)

	if len(popular) > MaxPopular {
		return nil, ErrTooManyPopular
	}
	return popular, nil
}
