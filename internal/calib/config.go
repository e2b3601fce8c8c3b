// Package calib implements the calibrator and builder described in spec
// §4.4: the (seed, bucket-count) grid search that finds a placement where no
// bucket overflows D slots, and the materialization of that placement into a
// caller-owned contiguous buffer.
package calib

// Config controls calibration search and bucket geometry. Every numeric
// knob spec §4.4 names has a field here with the spec's own default, the
// same way the teacher's meta.Config documents and defaults every tunable
// of its own search (DFA cache size, determinization limit, ...).
type Config struct {
	// Capacity is D, the number of slots a single record holds. Spec §3
	// fixes this at 16; it is a Config field rather than a bare constant so
	// tests can exercise small buckets without generating thousands of
	// patterns, but production callers should use DefaultConfig's value.
	Capacity int

	// SeedTrials is the number of distinct seeds tried per bucket-count
	// growth step before giving up and growing the table. Spec §4.4: 100.
	SeedTrials int

	// MaxGrowthSteps is the number of times the bucket count is grown
	// before calibration fails with ErrFailedToCalibrate. Spec §4.4: 60.
	MaxGrowthSteps int

	// GrowthNumerator/GrowthDenominator express the growth factor 21/20
	// applied to the bucket count between steps (spec §4.4).
	GrowthNumerator   int
	GrowthDenominator int
}

// DefaultConfig returns the configuration spec §4.4 specifies.
func DefaultConfig() Config {
	return Config{
		Capacity:          16,
		SeedTrials:        100,
		MaxGrowthSteps:    60,
		GrowthNumerator:   21,
		GrowthDenominator: 20,
	}
}

// GrowBuckets applies one calibration growth step to buckets, per spec
// §4.4: buckets <- max(ceil(buckets*21/20), buckets+1).
func (c Config) GrowBuckets(buckets uint32) uint32 {
	grown := ceilDiv(buckets*uint32(c.GrowthNumerator), uint32(c.GrowthDenominator))
	if grown <= buckets {
		return buckets + 1
	}
	return grown
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		panic("calib: ceilDiv: division by zero")
	}
	return (a + b - 1) / b
}
