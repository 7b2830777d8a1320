package hydro

import (
	"math"

	"github.com/rmascarenhas/suijin/grid"
)

// Flat resolution. A flat is a maximal 8-connected region of equal-elevation
// cells left without a receiver by the steepest-descent pass. Each flat is
// resolved by two fixed breadth-first sweeps — distance to lower ground and
// distance from higher ground — never by iterate-to-fixpoint relaxation, so
// termination and determinism hold by construction. A flat cell then points
// to the neighbor minimizing distance-to-lower, ties broken by maximizing
// distance-from-higher, then by scan order; distance-to-lower strictly
// decreases along every assigned edge, which keeps the receiver graph
// acyclic. Flats with no draining border are left as Sinks and reported.
func resolveFlats(dem *grid.Real, dirs []Direction) []Diagnostic {
	gd := dem.GD
	var diags []Diagnostic

	visited := make([]bool, gd.Ncells())
	for cid := range dirs {
		if dirs[cid] != Sink || visited[cid] {
			continue
		}
		flat := collectFlat(dem, dirs, visited, cid)
		if !resolveFlat(dem, dirs, flat) && len(flat) > 1 {
			// enclosed plateau: no lower border anywhere, cells stay Sink
			diags = append(diags, Diagnostic{Kind: UnresolvedFlat, Cells: flat})
		}
	}
	return diags
}

// collectFlat gathers the maximal 8-connected equal-elevation component of
// unresolved cells containing seed, in breadth-first cell-id order
func collectFlat(dem *grid.Real, dirs []Direction, visited []bool, seed int) []int {
	gd := dem.GD
	z := dem.A[seed]
	visited[seed] = true
	flat := []int{seed}
	for qi := 0; qi < len(flat); qi++ {
		row, col := gd.RowCol(flat[qi])
		for _, n := range nbr {
			r, c := row+n.dr, col+n.dc
			if !gd.InBounds(r, c) {
				continue
			}
			ncid := gd.CellID(r, c)
			if visited[ncid] || dirs[ncid] != Sink || dem.A[ncid] != z {
				continue
			}
			visited[ncid] = true
			flat = append(flat, ncid)
		}
	}
	return flat
}

// resolveFlat assigns directions inside one flat; reports false when the
// flat has no draining border (cells keep Sink)
func resolveFlat(dem *grid.Real, dirs []Direction, flat []int) bool {
	gd := dem.GD
	z := dem.A[flat[0]]
	in := make(map[int]bool, len(flat))
	for _, cid := range flat {
		in[cid] = true
	}

	// a bordering cell drains the flat when it sits at the same elevation,
	// already has a receiver, and lies just outside the component
	drains := func(row, col int) bool {
		if !gd.InBounds(row, col) {
			return false
		}
		ncid := gd.CellID(row, col)
		return !in[ncid] && !dem.IsNoData(ncid) && dem.A[ncid] == z &&
			dirs[ncid] != Sink && dirs[ncid] != NoData
	}

	// sweep 1: distance to lower ground, seeded at the draining border
	dtl := bfs(gd, flat, in, func(row, col int) bool { return drains(row, col) })
	if len(dtl) == 0 {
		return false
	}

	// sweep 2: distance from higher ground, seeded against the higher border
	dfh := bfs(gd, flat, in, func(row, col int) bool {
		zn, ok := dem.Value(row, col)
		return ok && zn > z
	})

	far := func(m map[int]int, cid int) int { // unreached cells count as infinitely far
		if d, ok := m[cid]; ok {
			return d
		}
		return math.MaxInt
	}

	for _, cid := range flat {
		dc, ok := dtl[cid]
		if !ok {
			continue // unreachable only when the whole flat is, handled above
		}
		row, col := gd.RowCol(cid)
		bestTL, bestFH, bdir := math.MaxInt, -1, Sink
		for _, n := range nbr {
			r, c := row+n.dr, col+n.dc
			var tl, fh int
			switch {
			case drains(r, c):
				tl, fh = 0, math.MaxInt
			case gd.InBounds(r, c) && in[gd.CellID(r, c)]:
				ncid := gd.CellID(r, c)
				t, ok := dtl[ncid]
				if !ok {
					continue
				}
				tl, fh = t, far(dfh, ncid)
			default:
				continue
			}
			if tl < bestTL || (tl == bestTL && fh > bestFH) {
				bestTL, bestFH, bdir = tl, fh, n.dir
			}
		}
		if bestTL < dc { // strict descent in distance-to-lower; always holds for reached cells
			dirs[cid] = bdir
		}
	}
	return true
}

// bfs labels flat cells with their breadth-first distance from any cell
// bordering a seed position, distance 1 at the border
func bfs(gd *grid.Definition, flat []int, in map[int]bool, seed func(row, col int) bool) map[int]int {
	dist := make(map[int]int, len(flat))
	var q []int
	for _, cid := range flat {
		row, col := gd.RowCol(cid)
		for _, n := range nbr {
			if seed(row+n.dr, col+n.dc) {
				dist[cid] = 1
				q = append(q, cid)
				break
			}
		}
	}
	for qi := 0; qi < len(q); qi++ {
		cid := q[qi]
		row, col := gd.RowCol(cid)
		for _, n := range nbr {
			r, c := row+n.dr, col+n.dc
			if !gd.InBounds(r, c) {
				continue
			}
			ncid := gd.CellID(r, c)
			if !in[ncid] {
				continue
			}
			if _, ok := dist[ncid]; ok {
				continue
			}
			dist[ncid] = dist[cid] + 1
			q = append(q, ncid)
		}
	}
	return dist
}
