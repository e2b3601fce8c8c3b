package hipermap

import (
	"github.com/starius/hipermap/internal/calib"
	"github.com/starius/hipermap/internal/domaindb"
	"github.com/starius/hipermap/internal/popular"
	"github.com/starius/hipermap/internal/preprocess"
)

// PatternError wraps a preprocessing failure with the offending pattern; use
// errors.As to recover one from a Compile/CompileInto error.
type PatternError = preprocess.PatternError

// Errors Compile, CompileInto, and Deserialize can return (spec §6/§7).
// Every sentinel is re-exported here, rather than requiring callers to
// import an internal package, the same way the teacher re-exports its own
// compile-time error values at the package root.
var (
	// ErrNoPatterns means patterns was empty after preprocessing.
	ErrNoPatterns = calib.ErrNoPatterns

	// ErrFailedToCalibrate means the calibrator exhausted its growth
	// schedule without finding a placement that fit every pattern.
	ErrFailedToCalibrate = calib.ErrFailedToCalibrate

	// ErrTooManyPopular means popular-suffix discovery found more than 256
	// distinct popular suffixes.
	ErrTooManyPopular = popular.ErrTooManyPopular

	// ErrBadAlignment means a caller-supplied buffer was not 64-byte
	// aligned.
	ErrBadAlignment = domaindb.ErrBadAlignment

	// ErrSmallPlace means a caller-supplied buffer was smaller than
	// PlaceSize computed, or than a serialized database declares itself to
	// be.
	ErrSmallPlace = domaindb.ErrSmallPlace

	// ErrBadValue means Deserialize was given a buffer that is not a valid
	// serialized DomainSet: bad magic, an inconsistent size field, or a slot
	// referencing bytes outside the domains blob.
	ErrBadValue = domaindb.ErrBadValue

	// ErrInvalidPattern means a pattern passed to Compile/CompileInto was
	// empty (after trimming trailing dots), longer than 253 bytes, or
	// contained a byte outside [A-Za-z0-9._-]. Check via errors.Is, or
	// errors.As into a *PatternError to recover the offending pattern.
	ErrInvalidPattern = preprocess.ErrBadValue

	// ErrTopLevelDomain means a pattern passed to Compile/CompileInto had no
	// '.' at all.
	ErrTopLevelDomain = preprocess.ErrTopLevelDomain
)
