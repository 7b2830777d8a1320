package hydro

import "errors"

// ErrDimensionMismatch is returned when an auxiliary raster does not share
// the elevation model's dimensions; computation never starts.
var ErrDimensionMismatch = errors.New("raster dimensions do not match elevation grid")

// DiagKind classifies a data-quality condition recovered during a run
type DiagKind int

const (
	// UnresolvedFlat marks an equal-elevation region with no lower border;
	// its cells were set to Sink.
	UnresolvedFlat DiagKind = iota
	// CycleDetected marks cells left with residual in-degree after
	// topological propagation; their accumulation was reset to own weight.
	CycleDetected
	// AllNoData marks a run whose input held no valid cells
	AllNoData
)

func (k DiagKind) String() string {
	switch k {
	case UnresolvedFlat:
		return "unresolved flat"
	case CycleDetected:
		return "cycle detected"
	case AllNoData:
		return "all nodata"
	}
	return "unknown"
}

// Diagnostic records a recovered condition and the cell ids affected.
// Diagnostics are surfaced to the caller; the core never prints them.
type Diagnostic struct {
	Kind  DiagKind
	Cells []int
}
