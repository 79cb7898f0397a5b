package sort

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Random source for a rank. Only depends on the seed and the rank so a rank
// draws the same sample from the same chunk on every run.
func rankSource(seed int64, rank int) *rand.Rand {
	return rand.New(rand.NewSource(seed + (int64)(rank) + 1))
}

// Fill out with distinct keys drawn uniformly at random from chunk. A draw
// whose key was already taken is rejected and retried, at most maxAttempts
// times per key.
//
// Distinctness is per call only. Two ranks may well sample the same key.
func sampleChunk(rng *rand.Rand, chunk []int32, out []int32, maxAttempts int) error {
	if len(out) > len(chunk) {
		return errors.Wrapf(ErrSampleExhausted, "Can't take %v distinct keys from %v", len(out), len(chunk))
	}

	taken := make(map[int32]struct{}, len(out))
	for i := range out {
		found := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			key := chunk[rng.Intn(len(chunk))]
			if _, ok := taken[key]; ok {
				continue
			}
			taken[key] = struct{}{}
			out[i] = key
			found = true
			break
		}

		if !found {
			return errors.Wrapf(ErrSampleExhausted, "Collected %v of %v keys, gave up after %v draws",
				i, len(out), maxAttempts)
		}
	}
	return nil
}

func (self *worker) sample() error {
	rng := rankSource(self.cfg.Seed, self.rank)
	if err := sampleChunk(rng, self.chunk, self.samples, self.cfg.MaxSampleAttempts); err != nil {
		return err
	}

	self.log.WithField("samples", self.samples).Debug("Sampled chunk")
	return nil
}
