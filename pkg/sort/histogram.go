package sort

// Final position of keys[i] in the ascending order of keys. Equal keys are
// ordered by their index, which makes this a bijection onto [0, len(keys)).
func keyRank(keys []int32, i int) int {
	key := keys[i]
	pos := 0
	for j, other := range keys {
		if other < key || (other == key && j < i) {
			pos++
		}
	}
	return pos
}

// Parallel counting sort: every worker places its own samples into sorted.
// No two samples share a rank so workers never write the same slot.
func (self *worker) histogramSort() error {
	for i := self.sampleOffset; i < self.sampleOffset+len(self.samples); i++ {
		self.sorted[keyRank(self.allSamples, i)] = self.allSamples[i]
	}
	return nil
}
