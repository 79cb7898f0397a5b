package sort

import (
	"testing"

	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/stretchr/testify/require"
)

func TestSampleChunk(t *testing.T) {
	chunk := data.GenerateInputs(1024, 0, 1<<20)

	t.Run("Distinct", func(t *testing.T) {
		out := make([]int32, 64)
		err := sampleChunk(rankSource(0, 0), chunk, out, defaultMaxSampleAttempts)
		require.Nil(t, err, "Sampling failed")

		seen := make(map[int32]bool)
		for i, s := range out {
			require.Falsef(t, seen[s], "Key %v sampled twice (slot %v)", s, i)
			seen[s] = true
			require.Containsf(t, chunk, s, "Key %v not from the chunk", s)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		for rank := 0; rank < 4; rank++ {
			a := make([]int32, 16)
			b := make([]int32, 16)
			require.Nil(t, sampleChunk(rankSource(7, rank), chunk, a, defaultMaxSampleAttempts))
			require.Nil(t, sampleChunk(rankSource(7, rank), chunk, b, defaultMaxSampleAttempts))
			require.Equalf(t, a, b, "Rank %v sampled differently on the same chunk", rank)
		}
	})

	// Every key has to be taken, rejection sampling still gets there
	t.Run("WholeChunk", func(t *testing.T) {
		small := []int32{4, 1, 3, 2}
		out := make([]int32, len(small))
		require.Nil(t, sampleChunk(rankSource(0, 0), small, out, defaultMaxSampleAttempts))
		require.ElementsMatch(t, small, out)
	})
}

func TestSampleChunkExhausted(t *testing.T) {
	t.Run("SingleValue", func(t *testing.T) {
		chunk := []int32{7, 7, 7, 7}
		out := make([]int32, 2)
		err := sampleChunk(rankSource(0, 0), chunk, out, 100)
		require.ErrorIs(t, err, ErrSampleExhausted)
		require.Contains(t, err.Error(), "Collected 1 of 2")
	})

	t.Run("FewDistinct", func(t *testing.T) {
		chunk := []int32{1, 2, 1, 2, 1, 2, 1, 2}
		out := make([]int32, 3)
		err := sampleChunk(rankSource(0, 0), chunk, out, 100)
		require.ErrorIs(t, err, ErrSampleExhausted)
	})

	t.Run("TooManySamples", func(t *testing.T) {
		out := make([]int32, 5)
		err := sampleChunk(rankSource(0, 0), []int32{1, 2, 3, 4}, out, 100)
		require.ErrorIs(t, err, ErrSampleExhausted)
	})
}
