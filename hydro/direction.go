package hydro

import (
	"math"
	"runtime"
	"sync"

	"github.com/rmascarenhas/suijin/grid"
)

// Direction is a D8 flow direction code. The eight downslope codes follow
// the ESRI power-of-two convention; Sink marks a cell with no downslope
// receiver and NoData a cell excluded from routing.
type Direction uint8

const (
	Sink   Direction = 0
	E      Direction = 1
	SE     Direction = 2
	S      Direction = 4
	SW     Direction = 8
	W      Direction = 16
	NW     Direction = 32
	N      Direction = 64
	NE     Direction = 128
	NoData Direction = 255
)

func (d Direction) String() string {
	switch d {
	case E:
		return "E"
	case SE:
		return "SE"
	case S:
		return "S"
	case SW:
		return "SW"
	case W:
		return "W"
	case NW:
		return "NW"
	case N:
		return "N"
	case NE:
		return "NE"
	case Sink:
		return "SINK"
	}
	return "NODATA"
}

// neighbor scan order N, NE, E, SE, S, SW, W, NW. This order is fixed: it
// breaks every slope tie and therefore pins down reproducibility.
var nbr = [8]struct {
	dr, dc int
	dir    Direction
	dist   float64
}{
	{-1, 0, N, 1},
	{-1, 1, NE, math.Sqrt2},
	{0, 1, E, 1},
	{1, 1, SE, math.Sqrt2},
	{1, 0, S, 1},
	{1, -1, SW, math.Sqrt2},
	{0, -1, W, 1},
	{-1, -1, NW, math.Sqrt2},
}

const minValidCells = 9 // anything smaller than a full 3x3 neighborhood cannot be routed

// Directions resolves a D8 flow direction for every cell of the elevation
// model: steepest descent first, then the two-sweep flat resolution of
// resolveFlats. Cells with no resolvable receiver are set to Sink, NoData
// cells to NoData. The returned diagnostics record unresolved flats and,
// for an empty input, AllNoData.
func Directions(dem *grid.Real) ([]Direction, []Diagnostic) {
	gd := dem.GD
	dirs := make([]Direction, gd.Ncells())
	for i := range dirs {
		dirs[i] = NoData
	}

	nv := dem.Nvalid()
	if nv == 0 {
		return dirs, []Diagnostic{{Kind: AllNoData}}
	}
	if nv < minValidCells {
		return dirs, nil
	}

	// steepest-descent pass, fanned out over row bands; each cell reads
	// only the immutable elevation raster
	var wg sync.WaitGroup
	nb := runtime.NumCPU()
	if nb > gd.Nrow {
		nb = gd.Nrow
	}
	per := (gd.Nrow + nb - 1) / nb
	for r0 := 0; r0 < gd.Nrow; r0 += per {
		r1 := r0 + per
		if r1 > gd.Nrow {
			r1 = gd.Nrow
		}
		wg.Add(1)
		go func(r0, r1 int) {
			defer wg.Done()
			for row := r0; row < r1; row++ {
				for col := 0; col < gd.Ncol; col++ {
					cid := gd.CellID(row, col)
					if dem.IsNoData(cid) {
						continue
					}
					dirs[cid] = steepest(dem, row, col)
				}
			}
		}(r0, r1)
	}
	wg.Wait()

	diags := resolveFlats(dem, dirs)
	return dirs, diags
}

// steepest returns the direction of maximum positive slope from (row,col),
// or Sink when no valid neighbor lies strictly lower. Ties go to the first
// neighbor in scan order.
func steepest(dem *grid.Real, row, col int) Direction {
	z := dem.A[dem.GD.CellID(row, col)]
	best, bdir := 0., Sink
	for _, n := range nbr {
		zn, ok := dem.Value(row+n.dr, col+n.dc)
		if !ok {
			continue
		}
		if s := (z - zn) / n.dist; s > best {
			best, bdir = s, n.dir
		}
	}
	return bdir
}

// receiver returns the cell id the direction at (row,col) points to,
// and false for Sink/NoData or an out-of-bounds target
func receiver(gd *grid.Definition, row, col int, d Direction) (int, bool) {
	for _, n := range nbr {
		if n.dir == d {
			if !gd.InBounds(row+n.dr, col+n.dc) {
				return -1, false
			}
			return gd.CellID(row+n.dr, col+n.dc), true
		}
	}
	return -1, false
}
