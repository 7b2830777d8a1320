package grid

// Definition describes a uniform rectangular raster: dimensions, the
// coordinate of its lower-left corner, cell size and the sentinel used to
// mark cells holding no data. It is passed explicitly into every component
// that needs grid geometry.
type Definition struct {
	Ncol, Nrow           int
	Xllcorner, Yllcorner float64
	Cellsize             float64
	NoData               float64
}

// Ncells total number of cells (valid or not) in the raster
func (gd *Definition) Ncells() int {
	return gd.Ncol * gd.Nrow
}

// CellID converts a (row,col) address to a row-major cell id
func (gd *Definition) CellID(row, col int) int {
	return row*gd.Ncol + col
}

// RowCol converts a row-major cell id back to its (row,col) address
func (gd *Definition) RowCol(cid int) (row, col int) {
	return cid / gd.Ncol, cid % gd.Ncol
}

// InBounds reports whether (row,col) addresses a cell of the raster
func (gd *Definition) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < gd.Nrow && col < gd.Ncol
}
