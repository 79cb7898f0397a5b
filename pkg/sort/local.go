package sort

import (
	"slices"
	"sort"
)

// Sort in in-place using only worker-local resources.
func localSort(in []int32) {
	slices.Sort(in)
}

// Index of the bucket x belongs to: the last b with splitters[b] <= x.
// Keys below splitters[0] (impossible with the sentinel) land in bucket 0.
func Bucket(splitters []int32, x int32) int {
	return sort.Search(len(splitters)-1, func(i int) bool {
		return splitters[i+1] > x
	})
}
