package hydro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatDrainsTowardLowerSide(t *testing.T) {
	// flat 2x2 interior, higher ground west and on the rim, a draining
	// valley east
	dem := testDEM(t, 4, 4, []float64{
		3, 3, 3, 0,
		3, 1, 1, -1,
		3, 1, 1, -2,
		3, 3, 3, -3,
	})
	dirs, diags := Directions(dem)
	assert.Empty(t, diags)

	gd := dem.GD
	east := map[Direction]bool{NE: true, E: true, SE: true}
	for _, row := range []int{1, 2} {
		for _, col := range []int{1, 2} {
			d := dirs[gd.CellID(row, col)]
			assert.True(t, east[d], "flat cell (%d,%d) points %s, not toward the lower side", row, col, d)
		}
	}

	fg, err := NewFlowGraph(gd, dirs)
	require.NoError(t, err)
	acc, adiags, err := Accumulate(fg, nil)
	require.NoError(t, err)
	assert.Empty(t, adiags, "flat resolution must not introduce cycles")
	assert.Equal(t, 16., acc[gd.CellID(3, 3)], "everything drains through the valley outlet")
}

func TestTerminalFlatBandReported(t *testing.T) {
	// the lowest band is itself a multi-cell flat with no lower border:
	// its cells become Sinks and the flat is reported, while the rest of
	// the grid still routes toward it
	dem := testDEM(t, 4, 4, []float64{
		2, 1, 1, 0,
		2, 1, 1, 0,
		2, 1, 1, 0,
		2, 1, 1, 0,
	})
	dirs, diags := Directions(dem)
	gd := dem.GD

	require.Len(t, diags, 1)
	assert.Equal(t, UnresolvedFlat, diags[0].Kind)
	assert.ElementsMatch(t, []int{
		gd.CellID(0, 3), gd.CellID(1, 3), gd.CellID(2, 3), gd.CellID(3, 3),
	}, diags[0].Cells)
	for _, cid := range diags[0].Cells {
		assert.Equal(t, Sink, dirs[cid])
	}

	// mass still conserves over the band's sinks
	fg, err := NewFlowGraph(gd, dirs)
	require.NoError(t, err)
	acc, adiags, err := Accumulate(fg, nil)
	require.NoError(t, err)
	assert.Empty(t, adiags)
	sum := 0.
	for _, cid := range fg.Terminals() {
		sum += acc[cid]
	}
	assert.Equal(t, 16., sum)
}

func TestEnclosedPlateauReported(t *testing.T) {
	dem := testDEM(t, 4, 4, []float64{
		5, 5, 5, 5,
		5, 1, 1, 5,
		5, 1, 1, 5,
		5, 5, 5, 5,
	})
	dirs, diags := Directions(dem)
	require.Len(t, diags, 1)
	assert.Equal(t, UnresolvedFlat, diags[0].Kind)
	assert.Len(t, diags[0].Cells, 4)
	for _, cid := range diags[0].Cells {
		assert.Equal(t, Sink, dirs[cid])
	}

	// the surrounding ring still drains into the plateau; mass is conserved
	fg, err := NewFlowGraph(dem.GD, dirs)
	require.NoError(t, err)
	acc, _, err := Accumulate(fg, nil)
	require.NoError(t, err)
	sum := 0.
	for _, cid := range fg.Terminals() {
		sum += acc[cid]
	}
	assert.Equal(t, 16., sum)
}

func TestFlatResolutionIdempotent(t *testing.T) {
	dem := testDEM(t, 4, 4, []float64{
		5, 5, 5, 5,
		5, 1, 1, 5,
		5, 1, 1, 5,
		5, 5, 5, 5,
	})
	dirs, _ := Directions(dem)
	resolved := make([]Direction, len(dirs))
	copy(resolved, dirs)

	// a second sweep over the already-resolved grid changes nothing
	resolveFlats(dem, dirs)
	assert.Equal(t, resolved, dirs)
}

func TestFlatEightConnectedMembership(t *testing.T) {
	// two flat cells touching only diagonally form one component and both
	// drain through the same outlet side
	dem := testDEM(t, 3, 5, []float64{
		9, 1, 8, 7, 6,
		8, 7, 1, 6, 5,
		7, 6, 5, 1, 0,
	})
	dirs, diags := Directions(dem)
	assert.Empty(t, diags)
	assert.Equal(t, SE, dirs[dem.GD.CellID(1, 2)])
	assert.Equal(t, SE, dirs[dem.GD.CellID(0, 1)])
}
