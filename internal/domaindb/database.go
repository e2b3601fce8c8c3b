package domaindb

import "github.com/starius/hipermap/internal/record"

// BlobAlign is the byte boundary every stored pattern's (string + NUL) is
// padded to within the domains blob (spec §3, "Domains blob").
const BlobAlign = 16

// MinBlobTailPad is the minimum number of zero bytes appended after the
// last pattern in the blob, so that an aligned 32- or 64-byte vector load
// issued at any valid slot offset never reads past the buffer (spec §3).
const MinBlobTailPad = 256

// Database is a read-only view over a single contiguous, caller-owned
// buffer holding a compiled Static Domain Set: magic, header, popular-record
// table, main bucket table, and domains blob, exactly as laid out in spec
// §4.6. Two Database values over byte-identical buffers are indistinguishable
// by any public method.
type Database struct {
	buf        []byte
	hdr        Header
	popularOff int
	tableOff   int
	blobOff    int
	blobEnd    int
}

// New parses buf as a serialized database, validating the magic number and
// bounds-checking every used slot of every record against the declared blob
// size (spec §4.6, "Deserialize ... bounds-checks every slot's computed byte
// range against domains_blob_size"). The pointer fields in the header are
// never trusted; every offset returned by New's accessors is recomputed from
// sizes alone.
func New(buf []byte) (*Database, error) {
	if len(buf) < TableStart {
		return nil, ErrSmallPlace
	}
	if binaryLE32(buf) != Magic {
		return nil, ErrBadValue
	}
	hdr := DecodeHeader(buf[MagicSize:])

	popularOff := TableStart
	tableOff := popularOff + int(hdr.PopularRecords)*record.Size
	blobOff := tableOff + int(hdr.Buckets)*record.Size
	blobEnd := blobOff + int(hdr.BlobSize)

	if tableOff < popularOff || blobOff < tableOff || blobEnd < blobOff {
		return nil, ErrBadValue // overflow in an attacker-controlled size field
	}
	if len(buf) < blobEnd {
		return nil, ErrSmallPlace
	}
	if hdr.BlobSize%BlobAlign != 0 || hdr.BlobSize < MinBlobTailPad {
		return nil, ErrBadValue
	}
	if hdr.PopularCount > uint32((int(hdr.PopularRecords)*record.Capacity)) {
		return nil, ErrBadValue
	}

	db := &Database{
		buf:        buf,
		hdr:        hdr,
		popularOff: popularOff,
		tableOff:   tableOff,
		blobOff:    blobOff,
		blobEnd:    blobEnd,
	}

	if err := db.validateTable(popularOff, int(hdr.PopularRecords)); err != nil {
		return nil, err
	}
	if err := db.validateTable(tableOff, int(hdr.Buckets)); err != nil {
		return nil, err
	}

	return db, nil
}

func binaryLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// validateTable decodes every record in a table of n records starting at
// byteOff and checks that each used slot's computed byte range
// (base_off + offset*D .. +len(pattern)+1) lies entirely inside the blob and
// is properly NUL-terminated.
func (db *Database) validateTable(byteOff int, n int) error {
	blob := db.buf[db.blobOff:db.blobEnd]
	for i := 0; i < n; i++ {
		r := record.Decode(db.buf[byteOff+i*record.Size:])
		if r.Used > record.Capacity {
			return ErrBadValue
		}
		for s := 0; s < int(r.Used); s++ {
			start := int(r.SlotByteOffset(s))
			if start < 0 || start >= len(blob) {
				return ErrBadValue
			}
			nul := indexNUL(blob[start:])
			if nul < 0 {
				return ErrBadValue
			}
		}
	}
	return nil
}

// indexNUL returns the index of the first 0x00 byte in b, or -1 if there is
// none.
func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

// FastModM returns the precomputed fast-modulus magic number.
func (db *Database) FastModM() uint64 { return db.hdr.FastModM }

// Buckets returns the number of main-table buckets.
func (db *Database) Buckets() uint32 { return db.hdr.Buckets }

// HashSeed returns the seed the database was calibrated with.
func (db *Database) HashSeed() uint32 { return db.hdr.HashSeed }

// PopularRecordCount returns the number of 64-byte popular records
// (ceil(popular_count / D)).
func (db *Database) PopularRecordCount() uint32 { return db.hdr.PopularRecords }

// PopularCount returns the number of distinct popular suffixes stored.
func (db *Database) PopularCount() uint32 { return db.hdr.PopularCount }

// BucketRecord decodes and returns main-table record i.
func (db *Database) BucketRecord(i uint32) record.Record {
	return record.Decode(db.buf[db.tableOff+int(i)*record.Size:])
}

// PopularRecord decodes and returns popular-table record i.
func (db *Database) PopularRecord(i uint32) record.Record {
	return record.Decode(db.buf[db.popularOff+int(i)*record.Size:])
}

// Blob returns the domains blob.
func (db *Database) Blob() []byte {
	return db.buf[db.blobOff:db.blobEnd]
}

// UsedTotal returns the total number of occupied slots across the main
// table (spec §8, "Pruning": used_total == 1 after pruning a subdomain).
func (db *Database) UsedTotal() uint32 {
	var total uint32
	for i := uint32(0); i < db.hdr.Buckets; i++ {
		total += uint32(db.BucketRecord(i).Used)
	}
	return total
}

// HeaderBytes returns the fixed size, in bytes, of the magic + header
// region at the start of every database.
func HeaderBytes() int { return TableStart }

// TableBytes returns the size, in bytes, of the main bucket table.
func (db *Database) TableBytes() int { return int(db.hdr.Buckets) * record.Size }

// PopularBytes returns the size, in bytes, of the popular-record table.
func (db *Database) PopularBytes() int { return int(db.hdr.PopularRecords) * record.Size }

// BlobBytes returns the size, in bytes, of the domains blob.
func (db *Database) BlobBytes() int { return db.blobEnd - db.blobOff }

// Raw returns the full backing buffer, header included. Serialize uses this
// to copy the database verbatim; callers must not mutate it.
func (db *Database) Raw() []byte { return db.buf }
