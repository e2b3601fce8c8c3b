// Package preprocess implements the pattern preprocessor described in spec
// §4.2: trimming trailing dots, validating+lowercasing, rejecting top-level
// patterns, and pruning proper subdomains whose base is already present.
package preprocess

import (
	"sort"
	"strings"

	"github.com/starius/hipermap/simd"
)

// MaxPatternLen is the longest a pattern may be after trailing dots are
// stripped (spec §3, "Pattern").
const MaxPatternLen = 253

// Run preprocesses raw into a pruned, lowercased, validated list of
// patterns, in the order spec §4.2 specifies: per-pattern validation, then a
// reversed-lexicographic sort, then subdomain pruning.
//
// Run does not reject an empty raw slice; the caller (the calibrator, per
// spec §6's NoPatterns) is responsible for that check, since "no patterns"
// is a property of the whole input set, not of any one pattern.
func Run(raw []string) ([]string, error) {
	cleaned := make([]string, 0, len(raw))
	for _, p := range raw {
		trimmed := strings.TrimRight(p, ".")
		if len(trimmed) == 0 || len(trimmed) > MaxPatternLen {
			return nil, &PatternError{Pattern: p, Err: ErrBadValue}
		}

		buf := make([]byte, len(trimmed))
		if !simd.ValidateLower(buf, []byte(trimmed)) {
			return nil, &PatternError{Pattern: p, Err: ErrBadValue}
		}

		if !strings.Contains(trimmed, ".") {
			return nil, &PatternError{Pattern: p, Err: ErrTopLevelDomain}
		}

		cleaned = append(cleaned, string(buf))
	}

	sort.Slice(cleaned, func(i, j int) bool {
		return reversedLess(cleaned[i], cleaned[j])
	})

	return prune(cleaned), nil
}

// reversedLess compares a and b character-by-character from the right, the
// order spec §4.2 step 3 requires: in this order a base suffix sorts before
// any of its own subdomains.
func reversedLess(a, b string) bool {
	ai, bi := len(a)-1, len(b)-1
	for ai >= 0 && bi >= 0 {
		ca, cb := a[ai], b[bi]
		if ca != cb {
			return ca < cb
		}
		ai--
		bi--
	}
	// The shorter string is the prefix (from the right) of the longer one;
	// it sorts first, which places a base domain before its subdomains.
	return ai < bi
}

// prune walks sorted (already in reversed-lexicographic order) and drops any
// pattern that equals, or is a whole-label subdomain of, the last pattern it
// kept (spec §4.2 step 4).
func prune(sorted []string) []string {
	kept := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if len(kept) > 0 && isSuffixOrEqual(p, kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// isSuffixOrEqual reports whether p equals base or is a whole-label
// subdomain of base, i.e. p == base or p ends with "."+base.
func isSuffixOrEqual(p, base string) bool {
	if p == base {
		return true
	}
	if len(p) <= len(base) {
		return false
	}
	suffixStart := len(p) - len(base)
	return p[suffixStart-1] == '.' && p[suffixStart:] == base
}
