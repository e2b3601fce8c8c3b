package calib

import "errors"

// ErrNoPatterns is returned when Calibrate is given an empty pattern list
// (spec §6, "no patterns supplied to the compiler").
var ErrNoPatterns = errors.New("hipermap: no patterns")

// ErrFailedToCalibrate is returned when no (seed, bucket-count) pair found
// within MaxGrowthSteps growth steps places every pattern without
// overflowing a bucket (spec §6, "calibration exhausted its growth
// schedule"). This is expected to be exceedingly rare for real domain lists;
// spec §8 treats it as a property to test, not a normal outcome.
var ErrFailedToCalibrate = errors.New("hipermap: failed to calibrate")
