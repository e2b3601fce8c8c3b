package popular

import "errors"

// MaxPopular is the hard cap on the number of popular suffixes (spec §4.3
// and §3 invariant "popular_count <= 256").
const MaxPopular = 256

// ErrTooManyPopular is returned when popular-suffix discovery finds more
// than MaxPopular distinct popular suffixes; no partial database is ever
// produced in that case (spec §8, "Popular cap").
var ErrTooManyPopular = errors.New("hipermap: too many popular suffixes")
