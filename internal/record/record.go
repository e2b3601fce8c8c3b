// Package record implements the 64-byte bucket/popular record described in
// spec §3 and §4.4/§4.6: a cache-line-sized slot array shared, byte-for-byte,
// by both the main hash table and the popular-suffix table (spec §9,
// "Variant types without inheritance" — one record kind, two tables).
package record

import "encoding/binary"

// Capacity is D: the maximum number of pattern descriptors a record holds.
const Capacity = 16

// Size is the on-disk and in-memory size of one record, in bytes.
const Size = 64

// OffsetUnit is the unit (in bytes) that a slot offset is measured in,
// relative to the record's BaseOff. Slot offsets are 8-bit, so storing them
// in units of Capacity bytes extends their reach to Capacity*255 bytes past
// BaseOff.
const OffsetUnit = Capacity

// Record is the decoded, in-memory form of one 64-byte record: Capacity
// 16-bit tags, Capacity 8-bit slot offsets, a 32-bit base offset into the
// domains blob, a used-slot count, and the max_scans probe-depth bound.
type Record struct {
	Tags     [Capacity]uint16
	Offsets  [Capacity]uint8
	BaseOff  uint32
	Used     uint16
	MaxScans uint16
}

// Encode writes r into dst[0:Size], little-endian, matching spec §4.6's
// single-endian wire layout. It panics if dst is shorter than Size.
func (r *Record) Encode(dst []byte) {
	if len(dst) < Size {
		panic("record: Encode: dst shorter than Size")
	}
	for i := 0; i < Capacity; i++ {
		binary.LittleEndian.PutUint16(dst[i*2:], r.Tags[i])
	}
	off := Capacity * 2
	copy(dst[off:off+Capacity], r.Offsets[:])
	off += Capacity
	binary.LittleEndian.PutUint32(dst[off:], r.BaseOff)
	off += 4
	binary.LittleEndian.PutUint16(dst[off:], r.Used)
	off += 2
	binary.LittleEndian.PutUint16(dst[off:], r.MaxScans)
	off += 2
	// Remaining bytes up to Size are reserved padding; Encode never needs to
	// touch them because a freshly materialized buffer is zeroed already,
	// but Decode must never trust them either.
}

// Decode reads src[0:Size] into a Record. It panics if src is shorter than
// Size.
func Decode(src []byte) Record {
	if len(src) < Size {
		panic("record: Decode: src shorter than Size")
	}
	var r Record
	for i := 0; i < Capacity; i++ {
		r.Tags[i] = binary.LittleEndian.Uint16(src[i*2:])
	}
	off := Capacity * 2
	copy(r.Offsets[:], src[off:off+Capacity])
	off += Capacity
	r.BaseOff = binary.LittleEndian.Uint32(src[off:])
	off += 4
	r.Used = binary.LittleEndian.Uint16(src[off:])
	off += 2
	r.MaxScans = binary.LittleEndian.Uint16(src[off:])
	return r
}

// SlotByteOffset returns the byte offset into the domains blob of slot i,
// i.e. BaseOff + Offsets[i]*OffsetUnit.
func (r *Record) SlotByteOffset(i int) uint32 {
	return r.BaseOff + uint32(r.Offsets[i])*OffsetUnit
}
