package sort

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Hash of the sorted samples, splitters and distribution table. Two runs with
// the same input and configuration produce the same fingerprint.
func (self *Result) Fingerprint() uint64 {
	h := xxhash.New()

	// Writes to a Digest never fail
	binary.Write(h, binary.LittleEndian, self.SortedSamples)
	binary.Write(h, binary.LittleEndian, self.Splitters)
	for r := 0; r < self.Table.Rows(); r++ {
		binary.Write(h, binary.LittleEndian, self.Table.Row(r))
	}
	return h.Sum64()
}

// Verify res against the list it was computed from. Checks the sample,
// splitter and distribution invariants and recomputes every rank's row
// directly from its chunk.
func CheckResult(list []int32, res *Result) error {
	if res.Threads*res.ChunkSize != len(list) {
		return fmt.Errorf("Result covers %v keys, list has %v", res.Threads*res.ChunkSize, len(list))
	}

	// Samples
	for r := 0; r < res.Threads; r++ {
		chunk := list[r*res.ChunkSize : (r+1)*res.ChunkSize]
		seen := make(map[int32]bool)
		for _, s := range res.Samples[r*res.LocalSampleSize : (r+1)*res.LocalSampleSize] {
			if seen[s] {
				return fmt.Errorf("Rank %v sampled %v twice", r, s)
			}
			seen[s] = true
			if !slices.Contains(chunk, s) {
				return fmt.Errorf("Rank %v sampled %v which is not in its chunk", r, s)
			}
		}
	}

	if len(res.SortedSamples) != len(res.Samples) {
		return fmt.Errorf("Lengths do not match: %v samples, %v sorted samples", len(res.Samples), len(res.SortedSamples))
	}
	ref := slices.Clone(res.Samples)
	slices.Sort(ref)
	for i := range ref {
		if ref[i] != res.SortedSamples[i] {
			return fmt.Errorf("Sorted samples don't match reference at %v: Expected %v, Got %v", i, ref[i], res.SortedSamples[i])
		}
	}

	// Splitters
	if len(res.Splitters) != res.Threads {
		return fmt.Errorf("Expected %v splitters, Got %v", res.Threads, len(res.Splitters))
	}
	if res.Splitters[0] != SplitterSentinel {
		return fmt.Errorf("First splitter is %v, not the sentinel", res.Splitters[0])
	}
	for i := 1; i < len(res.Splitters); i++ {
		if res.Splitters[i] < res.Splitters[i-1] {
			return fmt.Errorf("Splitters out of order at %v: %v < %v", i, res.Splitters[i], res.Splitters[i-1])
		}
	}

	// Distribution
	for r := 0; r < res.Threads; r++ {
		if sum := res.Table.RowSum(r); sum != (int64)(res.ChunkSize) {
			return fmt.Errorf("Row %v sums to %v, chunk size is %v", r, sum, res.ChunkSize)
		}

		expect := make([]int64, res.Threads)
		for _, key := range list[r*res.ChunkSize : (r+1)*res.ChunkSize] {
			expect[Bucket(res.Splitters, key)]++
		}
		for b := 0; b < res.Threads; b++ {
			if expect[b] != res.Table.Get(r, b) {
				return fmt.Errorf("Wrong count for rank %v bucket %v: Expected %v, Got %v", r, b, expect[b], res.Table.Get(r, b))
			}
		}
	}
	if total := res.Table.Total(); total != (int64)(len(list)) {
		return fmt.Errorf("Table total is %v, list size is %v", total, len(list))
	}

	return nil
}

func (self *Result) Check(list []int32) error {
	return CheckResult(list, self)
}
