package hydro

import "github.com/rmascarenhas/suijin/grid"

// Output rasters always carry -9999 as their NODATA_value: a Sink encodes
// as 0, which an input sentinel of 0 (legal in ASC headers) would shadow.
const outNoData = -9999.

func outputDef(gd *grid.Definition) *grid.Definition {
	o := *gd
	o.NoData = outNoData
	return &o
}

// DirectionRaster externalizes a direction grid as a raster: routed cells
// carry their ESRI code, sinks 0, NoData cells the output sentinel.
func DirectionRaster(gd *grid.Definition, dirs []Direction) *grid.Real {
	r := grid.NewReal(outputDef(gd))
	for cid, d := range dirs {
		if d == NoData {
			continue
		}
		r.A[cid] = float64(d)
	}
	return r
}

// AccumulationRaster externalizes accumulation values, masking NoData cells
// with the output sentinel
func AccumulationRaster(gd *grid.Definition, dirs []Direction, acc []float64) *grid.Real {
	r := grid.NewReal(outputDef(gd))
	for cid, d := range dirs {
		if d == NoData {
			continue
		}
		r.A[cid] = acc[cid]
	}
	return r
}
