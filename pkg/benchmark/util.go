package benchmark

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// A helper object for timing events, the timer can be reused multiple times in
// order to derive averages or other statistics (Record() saves the current
// measurement and begins a new measurement).
type PerfTimer struct {
	Vals  []float64 // the stats module wants float64
	cur   time.Duration
	start time.Time
}

// Begin (or resume) the timer
func (self *PerfTimer) Start() {
	self.start = time.Now()
}

// Stop (or pause) the timer
func (self *PerfTimer) Stop() {
	self.cur += time.Since(self.start)
}

// Finalize the timer, adding it as a new datapoint and resetting the timer to
// 0.
func (self *PerfTimer) Record() {
	self.Stop()
	self.Vals = append(self.Vals, (float64)(self.cur))
	self.cur = 0
}

// Add an externally measured datapoint
func (self *PerfTimer) Add(d time.Duration) {
	self.Vals = append(self.Vals, (float64)(d))
}

// Add the recorded values from new to the current object. Does not modify new.
func (self *PerfTimer) Update(new *PerfTimer) {
	self.Vals = append(self.Vals, new.Vals...)
}

// Collects timing statistics about a sort, one timer per measured stage.
type SortStats map[string]*PerfTimer

// Get the named timer, creating it if needed
func (self SortStats) Timer(name string) *PerfTimer {
	timer, ok := self[name]
	if !ok {
		timer = &PerfTimer{}
		self[name] = timer
	}
	return timer
}

// Print mean and standard deviation (in seconds) of every timer, sorted by
// name.
func ReportStats(stats SortStats, writer io.Writer) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		timer := stats[name]
		mean, stdev := stat.MeanStdDev(timer.Vals, nil)
		fmt.Fprintf(writer, "%v (mean):\t%vs\n", name, mean/1e9)
		fmt.Fprintf(writer, "%v (std):\t%vs\n", name, stdev/1e9)
	}
}
