package material

import "github.com/df07/go-pathtracer/pkg/core"

// Table is an arena of materials addressed by core.MaterialID.
// It is built before rendering and read concurrently afterwards.
type Table struct {
	materials []Material
}

// NewTable creates an empty material table
func NewTable() *Table {
	return &Table{}
}

// Add stores a material and returns its handle
func (t *Table) Add(m Material) core.MaterialID {
	t.materials = append(t.materials, m)
	return core.MaterialID(len(t.materials) - 1)
}

// Get returns the material for a handle, or false if the handle is unknown
func (t *Table) Get(id core.MaterialID) (*Material, bool) {
	if id < 0 || int(id) >= len(t.materials) {
		return nil, false
	}
	return &t.materials[id], true
}

// Len returns the number of stored materials
func (t *Table) Len() int {
	return len(t.materials)
}
