package data

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// A rows x cols matrix of counts stored row-major in a single slice. In the
// sample sort, row r is owned by rank r and column b is bucket b.
//
// Table does no locking. Concurrent writers must touch disjoint rows.
type Table struct {
	rows  int
	cols  int
	cells []int64
}

func NewTable(rows, cols int) (*Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Errorf("Invalid table shape %vx%v", rows, cols)
	}
	return &Table{rows: rows, cols: cols, cells: make([]int64, rows*cols)}, nil
}

func (self *Table) Rows() int {
	return self.rows
}

func (self *Table) Cols() int {
	return self.cols
}

func (self *Table) index(r, c int) int {
	if r < 0 || r >= self.rows || c < 0 || c >= self.cols {
		panic(errors.Errorf("Table index (%v, %v) out of range for %vx%v table", r, c, self.rows, self.cols))
	}
	return r*self.cols + c
}

func (self *Table) Get(r, c int) int64 {
	return self.cells[self.index(r, c)]
}

func (self *Table) Set(r, c int, v int64) {
	self.cells[self.index(r, c)] = v
}

func (self *Table) Inc(r, c int) {
	self.cells[self.index(r, c)]++
}

// Row returns the backing storage for row r (not a copy).
func (self *Table) Row(r int) []int64 {
	start := self.index(r, 0)
	return self.cells[start : start+self.cols]
}

func (self *Table) RowSum(r int) int64 {
	return lo.Sum(self.Row(r))
}

func (self *Table) ColSum(c int) int64 {
	sum := int64(0)
	for r := 0; r < self.rows; r++ {
		sum += self.cells[self.index(r, c)]
	}
	return sum
}

// Per-column totals, i.e. the global size of every bucket
func (self *Table) ColSums() []int64 {
	return lo.Map(lo.Range(self.cols), func(c int, _ int) int64 {
		return self.ColSum(c)
	})
}

func (self *Table) Total() int64 {
	return lo.Sum(self.cells)
}
