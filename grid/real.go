package grid

// Real is a real-valued raster: a flat row-major array over a Definition.
// Once built it is treated as read-only; elevation models, weight grids and
// accumulation outputs are all carried as Reals.
type Real struct {
	GD *Definition
	A  []float64
}

// NewReal builds a raster over gd with every cell set to the NoData sentinel
func NewReal(gd *Definition) *Real {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = gd.NoData
	}
	return &Real{GD: gd, A: a}
}

// IsNoData reports whether cell cid holds the NoData sentinel
func (r *Real) IsNoData(cid int) bool {
	return r.A[cid] == r.GD.NoData
}

// Nvalid counts cells holding data
func (r *Real) Nvalid() (n int) {
	for i := range r.A {
		if r.A[i] != r.GD.NoData {
			n++
		}
	}
	return n
}

// Value returns the value at (row,col) and whether it holds data
func (r *Real) Value(row, col int) (float64, bool) {
	if !r.GD.InBounds(row, col) {
		return r.GD.NoData, false
	}
	v := r.A[r.GD.CellID(row, col)]
	return v, v != r.GD.NoData
}
