package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats_MeanAndVariance(t *testing.T) {
	var s Stats
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	for _, v := range samples {
		s.Update(v)
	}

	require.InDelta(t, 5.0, s.Mean(), 1e-9)
	require.InDelta(t, 4.0, s.Variance(), 1e-9)
	require.InDelta(t, 2.0, s.StdDev(), 1e-9)
}

func TestStats_SingleSampleHasZeroVariance(t *testing.T) {
	var s Stats
	s.Update(42)
	require.Equal(t, 42.0, s.Mean())
	require.Equal(t, 0.0, s.Variance())
}

func TestStats_EmptyHasNoNaN(t *testing.T) {
	var s Stats
	require.False(t, math.IsNaN(s.Mean()))
	require.Equal(t, 0.0, s.Variance())
}

func TestStats_StringFormat(t *testing.T) {
	var s Stats
	s.Update(0.01)
	s.Update(0.02)
	str := s.String()
	require.Contains(t, str, "μ =")
	require.Contains(t, str, "±")
}
