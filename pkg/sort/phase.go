package sort

import (
	"fmt"
)

// Phases of a sample sort, in execution order. Every worker runs the same
// phase at the same time; a barrier separates consecutive phases.
type Phase int32

const (
	PhaseInit Phase = iota
	PhaseSample
	PhaseHistogramSort
	PhaseSplitterGenerate
	PhaseLocalSortCount
	PhaseDone
)

var phaseNames = [...]string{
	PhaseInit:             "Init",
	PhaseSample:           "Sample",
	PhaseHistogramSort:    "HistogramSort",
	PhaseSplitterGenerate: "SplitterGenerate",
	PhaseLocalSortCount:   "LocalSortCount",
	PhaseDone:             "Done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
	return phaseNames[p]
}

// The phase that follows p. PhaseDone is terminal.
func (p Phase) Next() Phase {
	if p >= PhaseDone {
		return PhaseDone
	}
	return p + 1
}

// A step of the algorithm executed by one worker
type phaseFunc func(w *worker) error

type phaseStep struct {
	phase Phase
	run   phaseFunc
}

// The worker routine. Each entry is followed by a full barrier.
var phaseSteps = []phaseStep{
	{PhaseSample, (*worker).sample},
	{PhaseHistogramSort, (*worker).histogramSort},
	{PhaseSplitterGenerate, (*worker).generateSplitter},
	{PhaseLocalSortCount, (*worker).localSortCount},
}
