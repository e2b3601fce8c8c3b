// Package engine implements the query engine of spec §4.5: given a compiled
// internal/domaindb.Database and a candidate domain, it decides Found,
// NotFound, or InvalidInput using exactly the hashing, cutting, and
// tag-scanning primitives the calibrator used to place every pattern, so a
// pattern placed at build time is always found at query time.
package engine

import (
	"math/bits"

	"github.com/starius/hipermap/internal/domaindb"
	"github.com/starius/hipermap/internal/hashing"
	"github.com/starius/hipermap/internal/preprocess"
	"github.com/starius/hipermap/simd"
)

// Result is the outcome of a Find call.
type Result int

const (
	// NotFound means query is a well-formed domain absent from the set.
	NotFound Result = iota
	// Found means query matches a registered pattern, or a subdomain of one.
	Found
	// InvalidInput means query is empty (after trimming trailing dots), too
	// long, or contains a byte outside [A-Za-z0-9._-].
	InvalidInput
)

func (r Result) String() string {
	switch r {
	case NotFound:
		return "NotFound"
	case Found:
		return "Found"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Result(?)"
	}
}

// MaxQueryLen is the longest a query may be, after trailing dots are
// trimmed, before Find reports InvalidInput (spec §4.5 step 2: "if n > 253
// -> InvalidInput"; spec §8 scopes valid queries to ASCII length 1..253). It
// is exactly preprocess.MaxPatternLen: nothing longer could ever match,
// since no stored pattern is longer than that either.
const MaxQueryLen = preprocess.MaxPatternLen

// Find reports whether query, or a base suffix of it, was registered in db
// (spec §4.5). query is never mutated or retained.
func Find(db *domaindb.Database, query []byte) Result {
	end := len(query)
	for end > 0 && query[end-1] == '.' {
		end--
	}
	if end == 0 || end > MaxQueryLen {
		return InvalidInput
	}

	// 256 content bytes is enough for any query Find accepts (MaxQueryLen
	// is 253), per spec §4.5's query buffer sizing.
	var stack [256]byte
	buf := stack[:end]
	if !simd.ValidateLower(buf, query[:end]) {
		return InvalidInput
	}

	suffixStart := simd.CutTwoLastLabels(buf, 0, end)
	h := hashing.Hash64(buf[suffixStart:end], uint64(db.HashSeed()))

	for suffixStart > 0 {
		if !popularContains(db, h, buf[suffixStart:end]) {
			break
		}
		newStart := simd.CutLastLabel(buf, 0, suffixStart-1)
		h = hashing.Hash64(buf[newStart:suffixStart-1], h)
		suffixStart = newStart
	}

	bucket := hashing.FastModU32(hashing.Low32(h), db.FastModM(), db.Buckets())
	rec := db.BucketRecord(bucket)

	for scan := uint16(1); ; scan++ {
		tag := hashing.HighTag(h)
		mask := simd.TagMatches(&rec.Tags, int(rec.Used), tag)
		for mask != 0 {
			i := bits.TrailingZeros16(mask)
			mask &^= 1 << uint(i)
			if simd.EqualPattern(buf[suffixStart:end], blobString(db.Blob(), rec.SlotByteOffset(i))) {
				return Found
			}
		}

		if scan >= rec.MaxScans || suffixStart == 0 {
			return NotFound
		}

		newStart := simd.CutLastLabel(buf, 0, suffixStart-1)
		h = hashing.Hash64(buf[newStart:suffixStart-1], h)
		suffixStart = newStart
	}
}

// popularContains reports whether some popular record holds a slot tagged
// high16(h) whose stored bytes equal suffix. Popular records are not bucket
// selected: with at most 256 suffixes (16 records), scanning every one of
// them is cheap and bounded, unlike the adversarial-depth main table scan
// popular suffixes exist to shortcut.
func popularContains(db *domaindb.Database, h uint64, suffix []byte) bool {
	tag := hashing.HighTag(h)
	for i := uint32(0); i < db.PopularRecordCount(); i++ {
		rec := db.PopularRecord(i)
		mask := simd.TagMatches(&rec.Tags, int(rec.Used), tag)
		for mask != 0 {
			j := bits.TrailingZeros16(mask)
			mask &^= 1 << uint(j)
			if simd.EqualPattern(suffix, blobString(db.Blob(), rec.SlotByteOffset(j))) {
				return true
			}
		}
	}
	return false
}

// blobString returns the NUL-terminated string stored at byte offset start
// in blob, excluding the NUL. The caller (Find, popularContains) only ever
// calls this with an offset domaindb.New already validated as pointing at a
// properly terminated slot.
func blobString(blob []byte, start uint32) []byte {
	i := start
	for blob[i] != 0 {
		i++
	}
	return blob[start:i]
}
