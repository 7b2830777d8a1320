package grid

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// ASCII Grid interchange format: a 6-line header (ncols, nrows, xllcorner,
// yllcorner, cellsize, NODATA_value) followed by nrow space-delimited rows.

const nHeader = 6

// ReadASC imports an ASCII Grid raster
func ReadASC(fp string) (*Real, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("ReadASC: file not found: %s", fp)
	}

	a, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, fmt.Errorf("ReadASC: %s: %v", fp, err)
	}
	stErr := make([]string, 0)
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("     failed to read '%v': %v", v, err))
	}
	if len(a) < nHeader {
		return nil, fmt.Errorf("ReadASC: %s: truncated header", fp)
	}

	hval := func(ln, name string) float64 {
		f := strings.Fields(ln)
		if len(f) != 2 || !strings.EqualFold(f[0], name) {
			errfunc(name, fmt.Errorf("malformed header line %q", ln))
			return 0.
		}
		v, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			errfunc(name, err)
		}
		return v
	}

	nc := int(hval(a[0], "ncols"))
	nr := int(hval(a[1], "nrows"))
	xll := hval(a[2], "xllcorner")
	yll := hval(a[3], "yllcorner")
	cs := hval(a[4], "cellsize")
	nd := hval(a[5], "NODATA_value")
	if len(stErr) > 0 {
		return nil, fmt.Errorf("ReadASC: %s:\n%s", fp, strings.Join(stErr, "\n"))
	}
	if nc <= 0 || nr <= 0 {
		return nil, fmt.Errorf("ReadASC: %s: invalid dimensions %dx%d", fp, nr, nc)
	}

	gd := &Definition{Ncol: nc, Nrow: nr, Xllcorner: xll, Yllcorner: yll, Cellsize: cs, NoData: nd}
	r := &Real{GD: gd, A: make([]float64, gd.Ncells())}

	cid := 0
	for _, ln := range a[nHeader:] {
		for _, s := range strings.Fields(ln) {
			if cid >= len(r.A) {
				return nil, fmt.Errorf("ReadASC: %s: more than %d values", fp, len(r.A))
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("ReadASC: %s: cell %d: %v", fp, cid, err)
			}
			r.A[cid] = v
			cid++
		}
	}
	if cid != len(r.A) {
		return nil, fmt.Errorf("ReadASC: %s: read %d of %d values", fp, cid, len(r.A))
	}
	return r, nil
}

// WriteASC exports the raster as an ASCII Grid
func (r *Real) WriteASC(fp string) error {
	gd := r.GD
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "ncols       %d\n", gd.Ncol)
	fmt.Fprintf(buf, "nrows       %d\n", gd.Nrow)
	fmt.Fprintf(buf, "xllcorner   %v\n", gd.Xllcorner)
	fmt.Fprintf(buf, "yllcorner   %v\n", gd.Yllcorner)
	fmt.Fprintf(buf, "cellsize    %v\n", gd.Cellsize)
	fmt.Fprintf(buf, "NODATA_value %v\n", gd.NoData)
	for row := 0; row < gd.Nrow; row++ {
		for col := 0; col < gd.Ncol; col++ {
			if col > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%v", r.A[gd.CellID(row, col)])
		}
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("WriteASC failed: %v", err)
	}
	return nil
}
