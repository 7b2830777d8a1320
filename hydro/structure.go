package hydro

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/rmascarenhas/suijin/grid"
)

// Structure is the persistable drainage product of a direction run: the
// grid definition plus the resolved direction grid. Saving it lets an
// accumulation run reuse a prior resolution instead of recomputing it.
type Structure struct {
	GD   *grid.Definition
	Dirs []Direction
}

// FlowGraph rebuilds the drainage graph from the persisted directions
func (s *Structure) FlowGraph() (*FlowGraph, error) {
	return NewFlowGraph(s.GD, s.Dirs)
}

// SaveGob persists the structure
func (s *Structure) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("structure.SaveGob: %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("structure.SaveGob: %v", err)
	}
	return nil
}

// LoadGobStructure recovers a persisted structure
func LoadGobStructure(fp string) (*Structure, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var s Structure
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("structure.LoadGob: %v", err)
	}
	return &s, nil
}
