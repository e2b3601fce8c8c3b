package calib

import (
	"unsafe"

	"github.com/starius/hipermap/internal/domaindb"
	"github.com/starius/hipermap/internal/hashing"
	"github.com/starius/hipermap/internal/record"
)

// roundUp16 rounds n up to the next multiple of domaindb.BlobAlign.
func roundUp16(n int) int {
	const a = domaindb.BlobAlign
	return (n + a - 1) &^ (a - 1)
}

// Materialize lays out a calibrated Result into dest (spec §4.6): header,
// popular-record table, main bucket table, then the domains blob, each
// record's strings written contiguously right after the previous record's so
// every slot offset stays a small, positive multiple of record.OffsetUnit
// away from its own record's base_off.
//
// dest must be at least as large as the layout computed for res (PlaceSize
// bounds it from above) and 64-byte aligned; Materialize
// returns ErrSmallPlace or ErrBadAlignment (domaindb) otherwise. On success it
// returns the Database view over dest[:n], n being the number of bytes
// actually used.
func Materialize(res Result, dest []byte) (*domaindb.Database, int, error) {
	cfg := DefaultConfig()

	popularGroups := chunk(res.Popular, maxPopularPerRecord(cfg))
	popularRecords := len(popularGroups)

	popularOff := domaindb.TableStart
	tableOff := popularOff + popularRecords*record.Size
	blobOff := tableOff + int(res.Buckets)*record.Size

	blobSize := blobLayoutSize(popularGroups, res, cfg)
	total := blobOff + blobSize

	if len(dest) < total {
		return nil, 0, domaindb.ErrSmallPlace
	}
	if !isAligned(dest) {
		return nil, 0, domaindb.ErrBadAlignment
	}

	for i := range dest[:total] {
		dest[i] = 0
	}

	hdr := domaindb.Header{
		FastModM:       hashing.FastModMagic(res.Buckets),
		Buckets:        res.Buckets,
		HashSeed:       res.Seed,
		PopularRecords: uint32(popularRecords),
		PopularCount:   uint32(len(res.Popular)),
		BlobSize:       uint64(blobSize),
	}
	domaindb.WriteMagicAndHeader(dest, hdr)

	cursor := blobOff

	for i, group := range popularGroups {
		items := make([]placed, len(group))
		for j, suffix := range group {
			items[j] = placed{pattern: suffix, tag: popularTag(suffix, res.Seed), scans: 1}
		}
		writeRecord(dest[popularOff+i*record.Size:], items, dest, blobOff, &cursor, 0)
	}

	for i := uint32(0); i < res.Buckets; i++ {
		maxScans := uint16(0)
		if int(i) < len(res.MaxScans) {
			maxScans = res.MaxScans[i]
		}
		writeRecord(dest[tableOff+int(i)*record.Size:], res.Table[i], dest, blobOff, &cursor, maxScans)
	}

	db, err := domaindb.New(dest[:total])
	if err != nil {
		// A mismatch here means Materialize's own layout computation is
		// inconsistent with domaindb.New's validation; it is a bug in this
		// package, not a caller error.
		panic("calib: Materialize produced a database domaindb.New rejects: " + err.Error())
	}
	return db, total, nil
}

// chunk splits items into groups of at most size, in order.
func chunk(items []string, size int) [][]string {
	if len(items) == 0 {
		return nil
	}
	var groups [][]string
	for len(items) > 0 {
		n := size
		if n > len(items) {
			n = len(items)
		}
		groups = append(groups, items[:n])
		items = items[n:]
	}
	return groups
}

// blobLayoutSize computes the exact domains-blob size Materialize will write:
// every record's strings padded to BlobAlign, plus the tail pad.
func blobLayoutSize(popularGroups [][]string, res Result, cfg Config) int {
	size := 0
	for _, group := range popularGroups {
		for _, s := range group {
			size += roundUp16(len(s) + 1)
		}
	}
	for _, slots := range res.Table {
		for _, p := range slots {
			size += roundUp16(len(p.pattern) + 1)
		}
	}
	size += domaindb.MinBlobTailPad
	return size
}

// writeRecord writes one record's descriptors into dst[0:record.Size] and
// its strings into blob (the full blob region of the destination buffer),
// advancing *cursor. blobOff is blob's offset from the start of dest, needed
// to compute each slot's base_off-relative offset.
func writeRecord(dst []byte, items []placed, dest []byte, blobOff int, cursor *int, maxScans uint16) {
	var r record.Record
	r.Used = recordUsed(len(items))
	r.MaxScans = maxScans
	if len(items) == 0 {
		r.Encode(dst)
		return
	}

	r.BaseOff = recordBaseOff(*cursor - blobOff)
	for i, it := range items {
		start := *cursor
		n := copy(dest[start:], it.pattern)
		dest[start+n] = 0
		written := roundUp16(n + 1)
		*cursor = start + written

		rel := (start - blobOff - int(r.BaseOff)) / record.OffsetUnit
		if rel > 255 {
			// Unreachable for any input preprocess/popular accepted: a
			// record holds at most record.Capacity patterns of at most
			// preprocess.MaxPatternLen bytes each (256 blob bytes apiece), so
			// the last slot starts at most 15*256/OffsetUnit = 240 units in.
			panic("calib: slot offset overflows 8 bits")
		}
		r.Tags[i] = it.tag
		r.Offsets[i] = uint8(rel)
	}
	r.Encode(dst)
}

// isAligned reports whether buf's backing array starts on a
// domaindb.Alignment-byte boundary. An empty buffer is trivially aligned.
func isAligned(buf []byte) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&buf[0]))%domaindb.Alignment == 0
}
