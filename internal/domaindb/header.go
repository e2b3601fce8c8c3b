// Package domaindb defines the on-disk and in-memory layout of a compiled
// Static Domain Set database (spec §3, §4.6): the 4-byte magic, the 64-byte
// header, the popular-record table, the main bucket table, and the domains
// blob, all inside one contiguous caller-owned buffer.
package domaindb

import "encoding/binary"

// Magic is the 4-byte magic value at offset 0 of a serialized database
// (spec §4.6).
const Magic uint32 = 0x53444D48

// MagicSize is the size, in bytes, of the magic field.
const MagicSize = 4

// HeaderSize is the size, in bytes, of the header that follows the magic.
// Its fields need 56 bytes; the size is rounded up to a 64-byte cache line,
// and the unused 8-byte tail is reserved: zero on write, ignored on read.
const HeaderSize = 64

// TableStart is the byte offset, from the start of the buffer, at which the
// popular-record table begins (spec §4.6, "offset 68").
const TableStart = MagicSize + HeaderSize

// Header is the decoded form of the 64-byte header. The *_ptr fields in the
// wire format are pointer fields reserved for a C-style in-process layout;
// per spec §4.6 and §9 this Go implementation never trusts them on read and
// always writes zero, recomputing every offset from the sizes that follow.
type Header struct {
	FastModM       uint64
	Buckets        uint32
	HashSeed       uint32
	PopularRecords uint32
	PopularCount   uint32
	BlobSize       uint64
}

// Encode writes h into dst[0:HeaderSize], little-endian. It panics if dst is
// shorter than HeaderSize.
func (h *Header) Encode(dst []byte) {
	if len(dst) < HeaderSize {
		panic("domaindb: Header.Encode: dst shorter than HeaderSize")
	}
	binary.LittleEndian.PutUint64(dst[0:], h.FastModM)
	binary.LittleEndian.PutUint32(dst[8:], h.Buckets)
	binary.LittleEndian.PutUint32(dst[12:], h.HashSeed)
	binary.LittleEndian.PutUint64(dst[16:], 0) // domains_table_ptr: reserved
	binary.LittleEndian.PutUint64(dst[24:], 0) // popular_table_ptr: reserved
	binary.LittleEndian.PutUint32(dst[32:], h.PopularRecords)
	binary.LittleEndian.PutUint32(dst[36:], h.PopularCount)
	binary.LittleEndian.PutUint64(dst[40:], 0) // domains_blob_ptr: reserved
	binary.LittleEndian.PutUint64(dst[48:], h.BlobSize)
	for i := 56; i < HeaderSize; i++ {
		dst[i] = 0
	}
}

// WriteMagicAndHeader writes the magic number followed by the encoded
// header into buf[0 : MagicSize+HeaderSize].
func WriteMagicAndHeader(buf []byte, h Header) {
	if len(buf) < TableStart {
		panic("domaindb: WriteMagicAndHeader: buf shorter than TableStart")
	}
	binary.LittleEndian.PutUint32(buf[0:], Magic)
	h.Encode(buf[MagicSize:])
}

// DecodeHeader reads src[0:HeaderSize] into a Header, ignoring the reserved
// pointer fields.
func DecodeHeader(src []byte) Header {
	if len(src) < HeaderSize {
		panic("domaindb: DecodeHeader: src shorter than HeaderSize")
	}
	return Header{
		FastModM:       binary.LittleEndian.Uint64(src[0:]),
		Buckets:        binary.LittleEndian.Uint32(src[8:]),
		HashSeed:       binary.LittleEndian.Uint32(src[12:]),
		PopularRecords: binary.LittleEndian.Uint32(src[32:]),
		PopularCount:   binary.LittleEndian.Uint32(src[36:]),
		BlobSize:       binary.LittleEndian.Uint64(src[48:]),
	}
}
