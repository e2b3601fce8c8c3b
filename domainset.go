// Package hipermap provides a compiled, read-only domain-suffix matcher.
//
// A DomainSet answers one question very fast: is this domain, or some base
// suffix of it, in a fixed list of registered domains? It is built once from
// a list of patterns and is safe for concurrent, read-only use afterward —
// there is no mutation path once Compile returns.
//
// Basic usage:
//
//	ds, err := hipermap.Compile([]string{"example.com", "images.google.com"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds.Find([]byte("a.example.com")) // hipermap.Found
//	ds.Find([]byte("example.org"))   // hipermap.NotFound
//
// A DomainSet's compiled form is a single contiguous byte buffer (see
// Serialize/Deserialize): it can be memory-mapped or embedded and queried
// without any deserialization step beyond validating its header and the
// bounds of every stored slot.
package hipermap

import (
	"strconv"

	"github.com/starius/hipermap/engine"
	"github.com/starius/hipermap/internal/calib"
	"github.com/starius/hipermap/internal/domaindb"
	"github.com/starius/hipermap/internal/hashing"
	"github.com/starius/hipermap/internal/popular"
	"github.com/starius/hipermap/internal/preprocess"
)

// Result is the outcome of a Find call: Found, NotFound, or InvalidInput.
type Result = engine.Result

const (
	NotFound     = engine.NotFound
	Found        = engine.Found
	InvalidInput = engine.InvalidInput
)

// DomainSet is a compiled, read-only set of domain suffixes.
//
// A DomainSet is safe for concurrent use by multiple goroutines: Find never
// mutates it.
type DomainSet struct {
	db *domaindb.Database
}

// Compile builds a DomainSet from patterns, allocating its own backing
// buffer sized by PlaceSize.
//
// Each pattern is a domain name with at least one '.' (spec §3): matching a
// pattern also matches every subdomain of it, so "example.com" matches
// "a.example.com" and "a.b.example.com" too, but a pattern itself must not
// be a bare top-level label like "com".
func Compile(patterns []string) (*DomainSet, error) {
	place := make([]byte, PlaceSize(patterns))
	return CompileInto(patterns, place)
}

// MustCompile is like Compile but panics if patterns fails to compile. It is
// intended for use in package-level variable initialization.
func MustCompile(patterns []string) *DomainSet {
	ds, err := Compile(patterns)
	if err != nil {
		panic(`hipermap: Compile(` + joinForPanic(patterns) + `): ` + err.Error())
	}
	return ds
}

// PlaceSize returns an upper bound, in bytes, on the buffer CompileInto needs
// for patterns. It does no validation of patterns itself; it is meant to be
// called before CompileInto to size a caller-owned buffer (e.g. one backed
// by mmap), so it deliberately never fails.
func PlaceSize(patterns []string) int {
	return calib.PlaceSize(patterns)
}

// CompileInto builds a DomainSet from patterns into place, a caller-owned
// buffer of at least PlaceSize(patterns) bytes. place is used directly,
// never copied, as the DomainSet's storage: the DomainSet is only valid for
// as long as place is not reused or mutated by the caller.
//
// CompileInto returns an error without touching place if patterns is empty,
// a pattern is invalid, or calibration cannot place every pattern within the
// configured number of growth steps (spec §6).
func CompileInto(patterns []string, place []byte) (*DomainSet, error) {
	cleaned, err := preprocess.Run(patterns)
	if err != nil {
		return nil, err
	}
	if len(cleaned) == 0 {
		return nil, calib.ErrNoPatterns
	}

	cfg := calib.DefaultConfig()
	pop, err := popular.Discover(cleaned, cfg.Capacity)
	if err != nil {
		return nil, err
	}

	res, err := calib.Calibrate(cleaned, pop, cfg)
	if err != nil {
		return nil, err
	}

	db, _, err := calib.Materialize(res, place)
	if err != nil {
		return nil, err
	}

	return &DomainSet{db: db}, nil
}

// Find reports whether query, or a base suffix of it, was registered with
// Compile/CompileInto.
func (ds *DomainSet) Find(query []byte) Result {
	return engine.Find(ds.db, query)
}

// Serialize returns the DomainSet's compiled form as a byte slice suitable
// for writing to disk or over the network; Deserialize reads it back without
// recompiling.
//
// The returned slice aliases the DomainSet's backing buffer; callers that
// need an independent copy must clone it themselves.
func (ds *DomainSet) Serialize() []byte {
	return ds.db.Raw()
}

// Deserialize validates buf as a previously Serialized DomainSet and returns
// a DomainSet backed directly by buf, with no copy. buf must not be modified
// while the returned DomainSet is in use.
func Deserialize(buf []byte) (*DomainSet, error) {
	db, err := domaindb.New(buf)
	if err != nil {
		return nil, err
	}
	return &DomainSet{db: db}, nil
}

// Buckets returns the number of main-table buckets the calibrator settled on.
func (ds *DomainSet) Buckets() uint32 { return ds.db.Buckets() }

// PopularCount returns the number of popular suffixes folded into the
// popular-record table.
func (ds *DomainSet) PopularCount() uint32 { return ds.db.PopularCount() }

// UsedTotal returns the total number of occupied main-table slots, i.e. the
// number of distinct patterns actually stored (after subdomain pruning).
func (ds *DomainSet) UsedTotal() uint32 { return ds.db.UsedTotal() }

// HashSeed returns the seed the calibrator settled on.
func (ds *DomainSet) HashSeed() uint32 { return ds.db.HashSeed() }

// HeaderBytes, TableBytes, PopularBytes and BlobBytes report the size, in
// bytes, of each section of the serialized form, for callers that want to
// report or budget memory usage.
func (ds *DomainSet) HeaderBytes() int  { return domaindb.HeaderBytes() }
func (ds *DomainSet) TableBytes() int   { return ds.db.TableBytes() }
func (ds *DomainSet) PopularBytes() int { return ds.db.PopularBytes() }
func (ds *DomainSet) BlobBytes() int    { return ds.db.BlobBytes() }

// String returns a short human-readable summary of the compiled set, for
// debugging and logging; its exact format is not part of the API contract.
func (ds *DomainSet) String() string {
	return "DomainSet{buckets:" + strconv.Itoa(int(ds.Buckets())) +
		" popular:" + strconv.Itoa(int(ds.PopularCount())) +
		" used:" + strconv.Itoa(int(ds.UsedTotal())) + "}"
}

// Hash64SpanCI is hash64_span_ci (spec §6, "Helpers exposed only for tests
// and bindings"): the seeded 64-bit hash every stage of compilation and
// querying chains label spans through. It is re-exported here, rather than
// left reachable only from internal/hashing, for the same reason every
// sentinel error is re-exported in errors.go: a binding or test outside this
// module tree can't import an internal package.
//
// span must already be validated and lowercased (see simd.ValidateLower);
// Hash64SpanCI performs no case folding itself.
func Hash64SpanCI(span []byte, seed uint64) uint64 {
	return hashing.Hash64(span, seed)
}

func joinForPanic(patterns []string) string {
	if len(patterns) == 0 {
		return "<no patterns>"
	}
	if len(patterns) == 1 {
		return patterns[0]
	}
	return patterns[0] + ", ... (" + strconv.Itoa(len(patterns)) + " patterns)"
}
