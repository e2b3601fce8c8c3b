package calib

import (
	"fmt"
	"testing"

	"github.com/starius/hipermap/internal/preprocess"
)

func mustPreprocess(t *testing.T, raw []string) []string {
	t.Helper()
	out, err := preprocess.Run(raw)
	if err != nil {
		t.Fatalf("preprocess.Run: %v", err)
	}
	return out
}

func TestGrowBuckets(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.GrowBuckets(100)
	want := uint32(105) // ceil(100*21/20) = 105
	if got != want {
		t.Errorf("GrowBuckets(100) = %d, want %d", got, want)
	}
	if got := cfg.GrowBuckets(1); got != 2 {
		t.Errorf("GrowBuckets(1) = %d, want 2 (ceil(1*21/20)=2)", got)
	}
}

func TestCalibrateSmallSet(t *testing.T) {
	patterns := mustPreprocess(t, []string{"example.com", "images.google.com", "go.dev"})
	res, err := Calibrate(patterns, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if res.Buckets == 0 {
		t.Fatal("Calibrate: Buckets == 0")
	}

	total := 0
	for _, slots := range res.Table {
		total += len(slots)
	}
	if total != len(patterns) {
		t.Fatalf("placed %d patterns, want %d", total, len(patterns))
	}
}

func TestCalibrateNoPatterns(t *testing.T) {
	_, err := Calibrate(nil, nil, DefaultConfig())
	if err != ErrNoPatterns {
		t.Fatalf("Calibrate() err = %v, want ErrNoPatterns", err)
	}
}

func TestCalibrateDeterministic(t *testing.T) {
	patterns := mustPreprocess(t, []string{"a.b.c", "x.y.z", "example.com", "foo.bar"})
	r1, err := Calibrate(patterns, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	r2, err := Calibrate(patterns, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if r1.Seed != r2.Seed || r1.Buckets != r2.Buckets {
		t.Fatalf("Calibrate not deterministic: (%d,%d) != (%d,%d)", r1.Seed, r1.Buckets, r2.Seed, r2.Buckets)
	}
}

func TestPlacementRespectsPopularSkip(t *testing.T) {
	var raw []string
	for i := 0; i < 20; i++ {
		raw = append(raw, fmt.Sprintf("x%d.a.b.c", i))
		raw = append(raw, fmt.Sprintf("y%d.a.b.c", i))
	}
	patterns := mustPreprocess(t, raw)

	// Real discovery marks both "b.c" (k=2, all 40 patterns share it) and
	// "a.b.c" (k=3, same 40) as popular, since every group still exceeds
	// capacity at k=3.
	popularSet := map[string]struct{}{"b.c": {}, "a.b.c": {}}
	a := place(patterns, popularSet, 1, 64, DefaultConfig())
	if !a.ok {
		t.Fatal("place: overflowed with 64 buckets for 40 patterns")
	}

	var maxScans int
	for _, slots := range a.buckets {
		for _, s := range slots {
			if s.scans > maxScans {
				maxScans = s.scans
			}
		}
	}
	// Popular-skip walks straight from "b.c" through "a.b.c" to the start of
	// each pattern before bucket selection even happens, so the bucket's own
	// hash state already reflects the whole pattern: one scan finds it.
	if maxScans != 1 {
		t.Fatalf("maxScans = %d, want 1", maxScans)
	}
}

func TestMaterializeRoundTrip(t *testing.T) {
	patterns := mustPreprocess(t, []string{"example.com", "images.google.com", "a.b.c.d.e"})
	res, err := Calibrate(patterns, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	buf := make([]byte, PlaceSize([]string{"example.com", "images.google.com", "a.b.c.d.e"}))
	db, n, err := Materialize(res, buf)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if n == 0 || n > len(buf) {
		t.Fatalf("Materialize returned n=%d, len(buf)=%d", n, len(buf))
	}
	if db.Buckets() != res.Buckets {
		t.Fatalf("db.Buckets() = %d, want %d", db.Buckets(), res.Buckets)
	}
	if db.UsedTotal() != uint32(len(patterns)) {
		t.Fatalf("db.UsedTotal() = %d, want %d", db.UsedTotal(), len(patterns))
	}

	// Every stored slot's bytes, read back out of the blob, must be one of
	// the original patterns (domaindb.New already checked NUL-termination).
	found := make(map[string]bool)
	for i := uint32(0); i < db.Buckets(); i++ {
		r := db.BucketRecord(i)
		for s := 0; s < int(r.Used); s++ {
			start := r.SlotByteOffset(s)
			blob := db.Blob()
			end := start
			for blob[end] != 0 {
				end++
			}
			found[string(blob[start:end])] = true
		}
	}
	for _, p := range patterns {
		if !found[p] {
			t.Errorf("pattern %q not found in materialized blob", p)
		}
	}
}

func TestMaterializeSmallBufferRejected(t *testing.T) {
	patterns := mustPreprocess(t, []string{"example.com"})
	res, err := Calibrate(patterns, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	_, _, err = Materialize(res, make([]byte, 4))
	if err == nil {
		t.Fatal("Materialize: want error for undersized buffer")
	}
}

func TestPlaceSizeMonotonic(t *testing.T) {
	small := PlaceSize([]string{"a.com"})
	var many []string
	for i := 0; i < 1000; i++ {
		many = append(many, fmt.Sprintf("host%d.example.com", i))
	}
	big := PlaceSize(many)
	if big <= small {
		t.Fatalf("PlaceSize(1000 patterns) = %d, want > PlaceSize(1 pattern) = %d", big, small)
	}
}
