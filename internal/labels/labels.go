// Package labels provides small, shared helpers for reasoning about
// dot-separated domain labels at build time (popular-suffix discovery and
// bucket placement both need to walk a pattern from the right, one label at
// a time). The hot query path does not use this package — it works directly
// on byte spans via the simd package instead, per spec §4.5.
package labels

import "strings"

// LastK returns the last k labels of p joined by '.', or p itself if p has
// fewer than k labels.
func LastK(p string, k int) string {
	parts := Split(p)
	if len(parts) <= k {
		return p
	}
	return strings.Join(parts[len(parts)-k:], ".")
}

// Split splits p into its labels. Labels may be empty (spec §3, "a..b" is
// permitted), so this is strings.Split, not strings.FieldsFunc.
func Split(p string) []string {
	return strings.Split(p, ".")
}

// Count returns the number of labels in p.
func Count(p string) int {
	return strings.Count(p, ".") + 1
}
