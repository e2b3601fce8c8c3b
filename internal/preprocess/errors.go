package preprocess

import (
	"errors"
	"strconv"
)

// Sentinel errors for pattern preprocessing (spec §6/§7). Compile-time
// input-shape errors: returned straight to the caller, never retried.
var (
	// ErrBadValue covers an empty pattern (after trimming trailing dots), a
	// pattern longer than 253 bytes, or a pattern containing a byte outside
	// [A-Za-z0-9._-].
	ErrBadValue = errors.New("hipermap: invalid pattern")

	// ErrTopLevelDomain is returned for a pattern with no '.' at all.
	ErrTopLevelDomain = errors.New("hipermap: top-level pattern has no '.'")
)

// PatternError wraps a preprocessing error with the offending pattern,
// mirroring the teacher's CompileError/BuildError shape: a small struct that
// implements error and Unwrap so callers can errors.Is against the sentinel
// while still seeing which input pattern failed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "hipermap: pattern " + strconv.Quote(e.Pattern) + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
