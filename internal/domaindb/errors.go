package domaindb

import "errors"

// Storage and format errors (spec §6/§7): BadAlignment and SmallPlace cover
// the caller-owned buffer itself; BadValue covers magic/size/bounds
// violations discovered while parsing a serialized buffer.
var (
	// ErrBadAlignment is returned when a caller-supplied buffer is not
	// 64-byte aligned, required for the cache-line-sized record layout.
	ErrBadAlignment = errors.New("hipermap: buffer is not 64-byte aligned")

	// ErrSmallPlace is returned when a caller-supplied buffer is smaller
	// than the compiled layout needs, or than a serialized database's header
	// declares.
	ErrSmallPlace = errors.New("hipermap: buffer too small")

	// ErrBadValue covers a bad magic number, an inconsistent declared size,
	// or a record whose slots reference bytes outside the domains blob.
	ErrBadValue = errors.New("hipermap: corrupt database")
)

// Alignment is the required alignment, in bytes, of a caller-owned compile
// or deserialize destination buffer, matching the 64-byte record size so
// every record starts on a cache line.
const Alignment = 64
