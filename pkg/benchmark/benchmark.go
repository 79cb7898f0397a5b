package benchmark

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/karuto/Parallel-Sample-Sort/pkg/sort"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Parameters of a benchmark run
type BenchConfig struct {
	Threads    int
	SampleSize int
	ListSize   int
	Repeat     int
	Seed       int64
	MaxKey     int32

	Logger *logrus.Logger
}

// Sort arr once, recording the total time in stats["TTotal"] and the time
// reported by the sorter in stats["TSort"]. The result is checked against
// arr.
func BenchSampleSort(ctx context.Context, arr []int32, sorter *sort.Sorter, stats SortStats) (*sort.Result, error) {
	TTotal := stats.Timer("TTotal")

	TTotal.Start()
	res, err := sorter.Sort(ctx, arr)
	TTotal.Record()

	if err != nil {
		return nil, err
	}
	stats.Timer("TSort").Add(res.Elapsed)

	if err := sort.CheckResult(arr, res); err != nil {
		return nil, errors.Wrap(err, "Sorted Wrong")
	}
	return res, nil
}

// This runs manual benchmarks (not managed by Go's benchmarking tool) and
// prints timing and bucket balance to w. Even if an error is returned, the
// returned stats may be non-nil and contain valid results up until the error.
func RunBenchmarks(ctx context.Context, cfg BenchConfig, w io.Writer) (SortStats, error) {
	stats := make(SortStats)

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxKey <= 0 {
		return stats, errors.Errorf("Invalid max key %v", cfg.MaxKey)
	}

	sorter := sort.NewSorter(sort.NewConfig(
		sort.WithThreads(cfg.Threads),
		sort.WithSampleSize(cfg.SampleSize),
		sort.WithSeed(cfg.Seed),
		sort.WithLogger(cfg.Logger),
	))
	if err := sorter.Config().Validate(cfg.ListSize); err != nil {
		return stats, errors.Wrap(err, "Invalid benchmark configuration")
	}

	arr := data.GenerateInputs(cfg.ListSize, cfg.Seed, cfg.MaxKey)

	var last *sort.Result
	for i := 0; i < cfg.Repeat; i++ {
		res, err := BenchSampleSort(ctx, arr, sorter, stats)
		if err != nil {
			return stats, errors.Wrapf(err, "Failed to benchmark iteration %v", i)
		}
		last = res
		runtime.GC()
	}

	fmt.Fprintf(w, "Threads: %v, Sample size: %v, List size: %v, Repeat: %v\n",
		cfg.Threads, cfg.SampleSize, cfg.ListSize, cfg.Repeat)
	ReportStats(stats, w)
	if last != nil {
		bal := BucketBalance(last.Table)
		fmt.Fprintf(w, "Bucket size (std):\t%.2f\n", bal.StdDev)
		fmt.Fprintf(w, "Imbalance:\t%.3f\n", bal.Imbalance)
	}

	return stats, nil
}
