package benchmark

import (
	"fmt"
	"io"
	"math"

	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/karuto/Parallel-Sample-Sort/pkg/sort"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// How evenly the keys were spread over the buckets
type Balance struct {
	Sizes  []int64 // Global number of keys per bucket
	Mean   float64
	StdDev float64
	Min    int64
	Max    int64

	// Largest bucket relative to a perfectly even split (1.0 is ideal)
	Imbalance float64
}

func BucketBalance(table *data.Table) Balance {
	sizes := table.ColSums()
	vals := lo.Map(sizes, func(v int64, _ int) float64 { return (float64)(v) })

	mean, stdev := stat.MeanStdDev(vals, nil)
	if math.IsNaN(stdev) {
		// One bucket
		stdev = 0
	}

	bal := Balance{
		Sizes:  sizes,
		Mean:   mean,
		StdDev: stdev,
		Min:    lo.Min(sizes),
		Max:    lo.Max(sizes),
	}
	if mean > 0 {
		bal.Imbalance = (float64)(bal.Max) / mean
	}
	return bal
}

// Print list in formatted fashion
func PrintList(w io.Writer, name string, list []int32) {
	fmt.Fprintf(w, "\n======= %s ======= \n", name)
	for _, v := range list {
		fmt.Fprintf(w, "%d ", v)
	}
	fmt.Fprintf(w, "\n\n")
}

func PrintTable(w io.Writer, name string, table *data.Table) {
	fmt.Fprintf(w, "\n======= %s ======= \n", name)
	for r := 0; r < table.Rows(); r++ {
		fmt.Fprintf(w, "T%d:", r)
		for _, v := range table.Row(r) {
			fmt.Fprintf(w, " %d", v)
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, "\n")
}

// Print the outputs of a sort. With quiet set only the summary (timing,
// bucket balance and fingerprint) is printed.
func Report(w io.Writer, res *sort.Result, quiet bool) {
	if !quiet {
		PrintList(w, "sample keys (unsorted)", res.Samples)
		PrintList(w, "sample keys (sorted)", res.SortedSamples)
		PrintList(w, "splitters", res.Splitters)
		PrintTable(w, "distribution", res.Table)
	}

	bal := BucketBalance(res.Table)
	fmt.Fprintf(w, "Bucket sizes:\t%v\n", bal.Sizes)
	fmt.Fprintf(w, "Bucket size (mean):\t%.2f\n", bal.Mean)
	fmt.Fprintf(w, "Bucket size (std):\t%.2f\n", bal.StdDev)
	fmt.Fprintf(w, "Imbalance:\t%.3f\n", bal.Imbalance)
	fmt.Fprintf(w, "Fingerprint:\t%016x\n", res.Fingerprint())
	fmt.Fprintf(w, "Elapsed time = %e seconds\n", res.Elapsed.Seconds())
}
