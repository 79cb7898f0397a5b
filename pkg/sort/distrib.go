package sort

// Count how many keys of sorted fall in every bucket, adding the counts to
// row rank of the table. Because sorted is ascending the bucket index only
// ever moves forward; it stops at the last bucket, which takes everything
// >= the last splitter.
func (self *worker) countBuckets(sorted []int32) {
	last := len(self.splitters) - 1

	bkt := 0
	for _, key := range sorted {
		for bkt < last && key >= self.splitters[bkt+1] {
			bkt++
		}
		self.table.Inc(self.rank, bkt)
	}
}

// Sort a private copy of this rank's chunk and tabulate its bucket
// distribution.
func (self *worker) localSortCount() error {
	local := make([]int32, len(self.chunk))
	copy(local, self.chunk)
	localSort(local)

	self.countBuckets(local)

	self.log.WithField("counts", self.table.Row(self.rank)).Debug("Counted local distribution")
	return nil
}
