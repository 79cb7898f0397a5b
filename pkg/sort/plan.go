package sort

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// JSON serializable description of where every rank's keys go in the
// bucket-ordered output. This is the hand-off to a global rearrangement stage,
// which is not part of this package.
type Plan struct {
	Threads   int       `json:"threads"`
	ChunkSize int       `json:"chunkSize"`
	Splitters []int32   `json:"splitters"`
	Counts    [][]int64 `json:"counts"` // Counts[r][b], copied from the distribution table

	// Offsets[r][b] is the index in the final output where rank r's keys
	// for bucket b start. Buckets are laid out in order, and within a bucket
	// ranks are laid out in order.
	Offsets [][]int64 `json:"offsets"`

	// BucketStarts[b] is the index where bucket b starts, with a trailing
	// entry equal to the list size.
	BucketStarts []int64 `json:"bucketStarts"`
}

func NewPlan(res *Result) *Plan {
	nbucket := len(res.Splitters)

	plan := &Plan{
		Threads:      res.Threads,
		ChunkSize:    res.ChunkSize,
		Splitters:    append([]int32(nil), res.Splitters...),
		Counts:       make([][]int64, res.Threads),
		Offsets:      make([][]int64, res.Threads),
		BucketStarts: make([]int64, nbucket+1),
	}

	for r := 0; r < res.Threads; r++ {
		plan.Counts[r] = append([]int64(nil), res.Table.Row(r)...)
		plan.Offsets[r] = make([]int64, nbucket)
	}

	pos := int64(0)
	for b := 0; b < nbucket; b++ {
		plan.BucketStarts[b] = pos
		for r := 0; r < res.Threads; r++ {
			plan.Offsets[r][b] = pos
			pos += plan.Counts[r][b]
		}
	}
	plan.BucketStarts[nbucket] = pos

	return plan
}

func (self *Plan) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(self), "Failed to encode partition plan")
}

func ReadPlan(r io.Reader) (*Plan, error) {
	var plan Plan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return nil, errors.Wrap(err, "Couldn't parse partition plan")
	}
	return &plan, nil
}
