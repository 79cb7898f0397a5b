package sort

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/karuto/Parallel-Sample-Sort/pkg/barrier"
	"github.com/karuto/Parallel-Sample-Sort/pkg/data"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Output of a sample sort. Everything is written by the workers and only read
// after all of them have joined.
type Result struct {
	Threads         int
	ChunkSize       int
	LocalSampleSize int

	Samples       []int32     // Per-rank samples, rank r owns [r*LocalSampleSize, (r+1)*LocalSampleSize)
	SortedSamples []int32     // Samples in ascending order
	Splitters     []int32     // Bucket b is [Splitters[b], Splitters[b+1]), Splitters[0] is SplitterSentinel
	Table         *data.Table // Table[r][b] = number of keys in rank r's chunk that fall in bucket b

	Elapsed time.Duration
}

func newResult(cfg *Config, listSize int) (*Result, error) {
	table, err := data.NewTable(cfg.Threads, cfg.Threads)
	if err != nil {
		return nil, errors.Wrap(err, "Couldn't allocate distribution table")
	}

	return &Result{
		Threads:         cfg.Threads,
		ChunkSize:       cfg.ChunkSize(listSize),
		LocalSampleSize: cfg.LocalSampleSize(),
		Samples:         make([]int32, cfg.SampleSize),
		SortedSamples:   make([]int32, cfg.SampleSize),
		Splitters:       make([]int32, cfg.Threads),
		Table:           table,
	}, nil
}

// Per-rank view of a run. Slices named after the rank are owned by this
// worker, the rest are shared and may only be read once the phase that
// writes them has passed its barrier.
type worker struct {
	rank   int
	cfg    *Config
	ctx    context.Context
	log    *logrus.Entry
	sorter *Sorter

	chunk        []int32 // This rank's chunk of the input (read-only)
	samples      []int32 // This rank's sample sub-range
	sampleOffset int     // Global index of samples[0]

	allSamples []int32
	sorted     []int32
	splitters  []int32
	table      *data.Table
}

func (self *worker) run(bar *barrier.Barrier) error {
	for _, step := range phaseSteps {
		if err := self.ctx.Err(); err != nil {
			return &PhaseError{Phase: step.phase, Rank: self.rank, Err: err}
		}

		if cur := self.sorter.Phase(); cur != step.phase {
			return &PhaseError{Phase: step.phase, Rank: self.rank,
				Err: errors.Errorf("Entered phase %v while the run is in %v", step.phase, cur)}
		}

		self.log.WithField("phase", step.phase).Debug("Starting phase")
		if err := step.run(self); err != nil {
			return &PhaseError{Phase: step.phase, Rank: self.rank, Err: err}
		}

		if err := bar.Wait(); err != nil {
			return &PhaseError{Phase: step.phase, Rank: self.rank,
				Err: errors.Wrap(err, "Failed waiting for other workers")}
		}
	}
	return nil
}

// Runs sample sorts for one configuration. A Sorter may be reused for many
// lists but runs one sort at a time.
type Sorter struct {
	cfg   *Config
	phase atomic.Int32
}

func NewSorter(cfg *Config) *Sorter {
	if cfg.Logger == nil {
		cfg.Logger = DefaultConfig().Logger
	}
	return &Sorter{cfg: cfg}
}

func (self *Sorter) Config() *Config {
	return self.cfg
}

// The phase the current (or last) run is in. Advances only when every worker
// has finished the previous phase. A failed run stays at the phase that
// failed.
func (self *Sorter) Phase() Phase {
	return (Phase)(self.phase.Load())
}

// Called by the last worker to reach a barrier, before anyone is released
func (self *Sorter) advance() {
	self.phase.Store((int32)(self.Phase().Next()))
}

// Sort list. list is only read, it is neither reordered nor retained.
func (self *Sorter) Sort(ctx context.Context, list []int32) (*Result, error) {
	cfg := self.cfg
	log := cfg.Logger

	self.phase.Store((int32)(PhaseInit))

	if err := cfg.Validate(len(list)); err != nil {
		return nil, errors.Wrap(err, "Invalid configuration")
	}

	res, err := newResult(cfg, len(list))
	if err != nil {
		return nil, err
	}

	bar, err := barrier.NewWithAction(cfg.Threads, self.advance)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create phase barrier")
	}
	if bar.Parties() != cfg.Threads {
		return nil, errors.Wrapf(ErrBarrierMismatch, "%v parties, %v threads", bar.Parties(), cfg.Threads)
	}

	log.WithFields(logrus.Fields{
		"threads":    cfg.Threads,
		"sampleSize": cfg.SampleSize,
		"listSize":   len(list),
	}).Info("Starting sample sort")

	g, gctx := errgroup.WithContext(ctx)

	// A worker that fails (or a cancelled caller) never reaches the next
	// barrier, release everyone else. gctx is always cancelled once
	// g.Wait() returns so this goroutine can't leak.
	go func() {
		<-gctx.Done()
		bar.Break()
	}()

	start := time.Now()
	self.phase.Store((int32)(PhaseSample))
	for rank := 0; rank < cfg.Threads; rank++ {
		w := self.newWorker(gctx, rank, list, res)
		g.Go(func() error {
			return w.run(bar)
		})
	}

	err = g.Wait()
	res.Elapsed = time.Since(start)

	if ctx.Err() != nil {
		return nil, errors.Wrapf(ctx.Err(), "Sort interrupted in phase %v", self.Phase())
	}
	if err != nil {
		return nil, err
	}

	log.WithField("elapsed", res.Elapsed).Info("Sample sort finished")
	return res, nil
}

func (self *Sorter) newWorker(ctx context.Context, rank int, list []int32, res *Result) *worker {
	chunkStart := rank * res.ChunkSize
	sampleOffset := rank * res.LocalSampleSize

	return &worker{
		rank:   rank,
		cfg:    self.cfg,
		ctx:    ctx,
		log:    self.cfg.Logger.WithField("rank", rank),
		sorter: self,

		chunk:        list[chunkStart : chunkStart+res.ChunkSize : chunkStart+res.ChunkSize],
		samples:      res.Samples[sampleOffset : sampleOffset+res.LocalSampleSize],
		sampleOffset: sampleOffset,

		allSamples: res.Samples,
		sorted:     res.SortedSamples,
		splitters:  res.Splitters,
		table:      res.Table,
	}
}

// Run a single sample sort of list with the given options.
func SampleSort(ctx context.Context, list []int32, opts ...Option) (*Result, error) {
	return NewSorter(NewConfig(opts...)).Sort(ctx, list)
}
