package sort

import (
	"math"
)

// Lower bound of bucket 0. No int32 key is smaller.
const SplitterSentinel int32 = math.MinInt32

// Midpoint of a and b rounded toward zero. Computed in 64 bits so it can't
// overflow.
func midpoint(a, b int32) int32 {
	return (int32)(((int64)(a) + (int64)(b)) / 2)
}

// Lower bound of bucket rank: the midpoint between the last sample before
// rank's sample range and the first one in it (sorted order).
func splitterFor(sorted []int32, rank int, localSampleSize int) int32 {
	if rank == 0 {
		return SplitterSentinel
	}
	offset := rank * localSampleSize
	return midpoint(sorted[offset-1], sorted[offset])
}

func (self *worker) generateSplitter() error {
	self.splitters[self.rank] = splitterFor(self.sorted, self.rank, self.cfg.LocalSampleSize())
	return nil
}
