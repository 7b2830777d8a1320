package hydro

import (
	"fmt"

	"github.com/rmascarenhas/suijin/grid"
)

// Accumulate computes per-cell flow accumulation over the drainage graph:
// every valid cell starts at its own weight and passes its finalized total
// to its receiver in topological order (Kahn), so each cell is finalized
// exactly once, after all of its contributors, in time linear in cells and
// edges. weights may be nil, in which case every valid cell weighs 1.
// Sink and boundary terminals end up holding the total weight of their
// catchment; the sum over terminals equals the sum of weights.
//
// Cells left with residual in-degree after the queue drains sit on a cycle
// (possible only through pathological flat geometry); they are reset to
// their own weight and reported as a CycleDetected diagnostic rather than
// aborting the run.
func Accumulate(fg *FlowGraph, weights *grid.Real) ([]float64, []Diagnostic, error) {
	gd := fg.gd
	nc := gd.Ncells()
	if weights != nil && (weights.GD.Ncol != gd.Ncol || weights.GD.Nrow != gd.Nrow) {
		return nil, nil, fmt.Errorf("Accumulate: %w: weights %dx%d over %dx%d cells",
			ErrDimensionMismatch, weights.GD.Nrow, weights.GD.Ncol, gd.Nrow, gd.Ncol)
	}

	w := func(cid int) float64 {
		if weights == nil {
			return 1.
		}
		if weights.IsNoData(cid) {
			return 0.
		}
		return weights.A[cid]
	}

	acc := make([]float64, nc)
	indeg := make([]int, nc)
	valid := make([]bool, nc)
	nv := 0
	for cid := 0; cid < nc; cid++ {
		if fg.Dir(cid) == NoData {
			continue
		}
		valid[cid] = true
		nv++
		acc[cid] = w(cid)
		indeg[cid] = fg.InDegree(cid)
	}
	if nv == 0 {
		return acc, []Diagnostic{{Kind: AllNoData}}, nil
	}

	// seed with ridge cells then drain downslope
	q := make([]int, 0, nv)
	for cid := 0; cid < nc; cid++ {
		if valid[cid] && indeg[cid] == 0 {
			q = append(q, cid)
		}
	}
	done := 0
	for qi := 0; qi < len(q); qi++ {
		cid := q[qi]
		done++
		ds, ok := fg.Receiver(cid)
		if !ok {
			continue
		}
		acc[ds] += acc[cid]
		if indeg[ds]--; indeg[ds] == 0 {
			q = append(q, ds)
		}
	}

	var diags []Diagnostic
	if done < nv {
		// residual in-degree: a cycle slipped past the resolver. Break it
		// here: affected cells keep only their own weight.
		var res []int
		for cid := 0; cid < nc; cid++ {
			if valid[cid] && indeg[cid] > 0 {
				res = append(res, cid)
				acc[cid] = w(cid)
			}
		}
		diags = append(diags, Diagnostic{Kind: CycleDetected, Cells: res})
	}
	return acc, diags, nil
}
