package sort

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestSampleSortSmall(t *testing.T) {
	list := []int32{5, 3, 8, 1, 9, 2, 7, 4}
	orig := slices.Clone(list)

	res := sampleSortTest(t, list, WithThreads(2), WithSampleSize(4))

	require.Equal(t, orig, list, "Sort modified its input")

	// Each rank took 2 distinct keys from its own chunk
	require.Subset(t, []int32{5, 3, 8, 1}, res.Samples[:2])
	require.Subset(t, []int32{9, 2, 7, 4}, res.Samples[2:])

	ref := slices.Clone(res.Samples)
	slices.Sort(ref)
	require.Equal(t, ref, res.SortedSamples, "Sorted samples aren't the merge of the samples")

	require.Equal(t, SplitterSentinel, res.Splitters[0])
	require.Equal(t, midpoint(res.SortedSamples[1], res.SortedSamples[2]), res.Splitters[1])

	require.Equal(t, int64(4), res.Table.RowSum(0))
	require.Equal(t, int64(4), res.Table.RowSum(1))
}

func TestSampleSortRandom(t *testing.T) {
	tests := []struct {
		name       string
		threads    int
		sampleSize int
		listSize   int
		max        int32
	}{
		{"SingleThread", 1, 8, 64, 1000},
		{"TwoThreads", 2, 16, 1024, 1 << 30},
		{"EightThreads", 8, 64, 8 * 1021, 1 << 30},
		{"Duplicates", 4, 16, 4096, 64},
		{"SixteenThreads", 16, 256, 16 * 512, 1 << 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := data.GenerateInputs(tc.listSize, 0, tc.max)
			res := sampleSortTest(t, list, WithThreads(tc.threads), WithSampleSize(tc.sampleSize))

			require.True(t, isNonDecreasing(res.SortedSamples), "Sorted samples out of order")
			require.True(t, isNonDecreasing(res.Splitters), "Splitters out of order")
			require.Equal(t, int64(tc.listSize), res.Table.Total())
		})
	}
}

func TestSampleSortNegative(t *testing.T) {
	list := make([]int32, 256)
	for i, v := range data.GenerateInputs(len(list), 5, 1<<20) {
		list[i] = v - (1 << 19)
	}
	list[3] = SplitterSentinel
	list[200] = 1<<31 - 1

	sampleSortTest(t, list, WithThreads(4), WithSampleSize(32))
}

func TestSampleSortDeterministic(t *testing.T) {
	list := data.GenerateInputs(4096, 11, 1<<24)
	opts := []Option{WithThreads(4), WithSampleSize(64), WithSeed(3)}

	a := sampleSortTest(t, list, opts...)
	b := sampleSortTest(t, list, opts...)

	require.Equal(t, a.Samples, b.Samples, "Samples differ between runs")
	require.Equal(t, a.Fingerprint(), b.Fingerprint(), "Fingerprints differ between runs")
}

func TestSampleSortConfigErrors(t *testing.T) {
	list := data.GenerateInputs(8, 0, 100)

	tests := []struct {
		name   string
		list   []int32
		opts   []Option
		expect error
	}{
		{"ZeroThreads", list, []Option{WithThreads(0), WithSampleSize(4)}, ErrInvalidThreads},
		{"EmptyList", nil, []Option{WithThreads(2), WithSampleSize(4)}, ErrEmptyList},
		{"IndivisibleList", list, []Option{WithThreads(3), WithSampleSize(3)}, ErrIndivisibleList},
		{"IndivisibleSample", list, []Option{WithThreads(2), WithSampleSize(5)}, ErrIndivisibleSample},
		{"SampleTooLarge", list, []Option{WithThreads(2), WithSampleSize(10)}, ErrSampleTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := SampleSort(context.Background(), tc.list, tc.opts...)
			require.Nil(t, res)
			require.ErrorIs(t, err, tc.expect)
		})
	}
}

// A rank whose chunk has a single distinct value can't produce 2 distinct
// samples. The sort must fail rather than hang, and the other rank (which is
// waiting at the barrier) must be released.
func TestSampleSortExhausted(t *testing.T) {
	list := []int32{7, 7, 7, 7, 1, 2, 3, 4}

	sorter := NewSorter(NewConfig(WithThreads(2), WithSampleSize(4), WithMaxSampleAttempts(64)))

	errChan := make(chan error, 1)
	go func() {
		_, err := sorter.Sort(context.Background(), list)
		errChan <- err
	}()

	var err error
	select {
	case err = <-errChan:
	case <-time.After(5 * time.Second):
		t.Fatalf("Timeout")
	}

	require.ErrorIs(t, err, ErrSampleExhausted)

	var phaseErr *PhaseError
	require.True(t, errors.As(err, &phaseErr), "Expected a PhaseError, got %T", err)
	require.Equal(t, 0, phaseErr.Rank)
	require.Equal(t, PhaseSample, phaseErr.Phase)
	require.Equal(t, ErrSampleExhausted, errors.Cause(err))

	require.Equal(t, PhaseSample, sorter.Phase(), "Run advanced past the failed phase")
}

func TestSampleSortCancelled(t *testing.T) {
	list := data.GenerateInputs(1024, 0, 1<<20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleSort(ctx, list, WithThreads(4), WithSampleSize(16))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSorterPhases(t *testing.T) {
	list := data.GenerateInputs(2048, 0, 1<<20)

	sorter := NewSorter(NewConfig(WithThreads(4), WithSampleSize(32)))
	require.Equal(t, PhaseInit, sorter.Phase())

	res, err := sorter.Sort(context.Background(), list)
	require.Nil(t, err)
	require.Nil(t, CheckResult(list, res))
	require.Equal(t, PhaseDone, sorter.Phase())

	t.Run("Reuse", func(t *testing.T) {
		res2, err := sorter.Sort(context.Background(), list)
		require.Nil(t, err)
		require.Equal(t, res.Fingerprint(), res2.Fingerprint())
		require.Equal(t, PhaseDone, sorter.Phase())
	})

	t.Run("Names", func(t *testing.T) {
		require.Equal(t, "Sample", PhaseSample.String())
		require.Equal(t, "LocalSortCount", PhaseLocalSortCount.String())
		require.Equal(t, "Phase(42)", Phase(42).String())
		require.Equal(t, PhaseDone, PhaseDone.Next())
		require.Equal(t, PhaseHistogramSort, PhaseSample.Next())
	})
}

func TestSampleSortLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	list := data.GenerateInputs(64, 0, 1000)
	sampleSortTest(t, list, WithThreads(2), WithSampleSize(4), WithLogger(logger))

	// One entry per rank per phase
	phaseStarts := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Starting phase" {
			require.Contains(t, entry.Data, "rank")
			require.Contains(t, entry.Data, "phase")
			phaseStarts++
		}
	}
	require.Equal(t, 2*len(phaseSteps), phaseStarts)
	require.Equal(t, "Sample sort finished", hook.LastEntry().Message)
}
