package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionAddressing(t *testing.T) {
	gd := &Definition{Ncol: 4, Nrow: 3, NoData: -9999}
	assert.Equal(t, 12, gd.Ncells())
	assert.Equal(t, 6, gd.CellID(1, 2))
	row, col := gd.RowCol(6)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	assert.True(t, gd.InBounds(0, 0))
	assert.True(t, gd.InBounds(2, 3))
	assert.False(t, gd.InBounds(-1, 0))
	assert.False(t, gd.InBounds(3, 0))
	assert.False(t, gd.InBounds(0, 4))
}
