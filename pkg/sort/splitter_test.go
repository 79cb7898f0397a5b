package sort

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMidpoint(t *testing.T) {
	require.Equal(t, int32(5), midpoint(4, 6))
	require.Equal(t, int32(4), midpoint(4, 5), "Should round toward zero")
	require.Equal(t, int32(-4), midpoint(-4, -5), "Should round toward zero")
	require.Equal(t, int32(math.MaxInt32-1), midpoint(math.MaxInt32-2, math.MaxInt32), "Overflowed")
	require.Equal(t, int32(math.MinInt32+1), midpoint(math.MinInt32, math.MinInt32+2), "Overflowed")
}

func TestSplitterFor(t *testing.T) {
	sorted := []int32{1, 3, 5, 8, 10, 20}

	require.Equal(t, SplitterSentinel, splitterFor(sorted, 0, 2))
	require.Equal(t, int32(4), splitterFor(sorted, 1, 2))
	require.Equal(t, int32(9), splitterFor(sorted, 2, 2))
}
