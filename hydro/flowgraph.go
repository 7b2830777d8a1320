package hydro

import (
	"fmt"

	"github.com/rmascarenhas/suijin/grid"
)

// FlowGraph is the directed graph induced by a direction grid: every
// routed cell holds exactly one edge to its receiver. The inverse adjacency
// (upslope contributors) is built in a single pass at construction and is
// read-only thereafter.
type FlowGraph struct {
	gd   *grid.Definition
	dirs []Direction
	ds   []int         // receiver cell id; -1 for Sink and NoData cells
	us   map[int][]int // upslope contributor ids per receiver
}

// NewFlowGraph indexes the direction grid. Directions must cover the full
// raster; a short or oversized grid is a structural error.
func NewFlowGraph(gd *grid.Definition, dirs []Direction) (*FlowGraph, error) {
	if len(dirs) != gd.Ncells() {
		return nil, fmt.Errorf("NewFlowGraph: %w: %d directions over %d cells", ErrDimensionMismatch, len(dirs), gd.Ncells())
	}
	fg := &FlowGraph{
		gd:   gd,
		dirs: dirs,
		ds:   make([]int, len(dirs)),
		us:   make(map[int][]int),
	}
	for cid, d := range dirs {
		fg.ds[cid] = -1
		if d == Sink || d == NoData {
			continue
		}
		row, col := gd.RowCol(cid)
		rcv, ok := receiver(gd, row, col, d)
		if !ok {
			continue
		}
		fg.ds[cid] = rcv
		fg.us[rcv] = append(fg.us[rcv], cid)
	}
	return fg, nil
}

// Receiver returns the cell id that cid drains to; ok is false at Sink and
// NoData cells.
func (fg *FlowGraph) Receiver(cid int) (int, bool) {
	ds := fg.ds[cid]
	return ds, ds >= 0
}

// Contributors returns the cell ids draining directly into cid
func (fg *FlowGraph) Contributors(cid int) []int {
	return fg.us[cid]
}

// InDegree returns the number of cells draining directly into cid
func (fg *FlowGraph) InDegree(cid int) int {
	return len(fg.us[cid])
}

// Dir returns the direction code at cid
func (fg *FlowGraph) Dir(cid int) Direction {
	return fg.dirs[cid]
}

// Terminals returns the ids of all Sink cells, the roots of the drainage
// forest. The resolver never routes off-grid, so these are the only
// terminal nodes.
func (fg *FlowGraph) Terminals() []int {
	var t []int
	for cid, d := range fg.dirs {
		if d == Sink {
			t = append(t, cid)
		}
	}
	return t
}
