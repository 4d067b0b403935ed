package model

// Snapshot is a read-only view of a grid generation, safe to share across goroutines
type Snapshot struct {
	grid *Grid
}

// Width returns the width of the underlying grid, 0 for the zero Snapshot
func (s Snapshot) Width() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.width
}

// Height returns the height of the underlying grid, 0 for the zero Snapshot
func (s Snapshot) Height() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.height
}

// Alive reports whether the cell is alive. Coordinates outside the grid are dead.
func (s Snapshot) Alive(x, y int) bool {
	if s.grid == nil || !s.grid.InBounds(x, y) {
		return false
	}
	return s.grid.cells[y][x]
}

// CountLivingCells returns the number of live cells in the view
func (s Snapshot) CountLivingCells() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.CountLivingCells()
}

// Hash returns the md5 hex digest of the cells, used for stagnation checks
func (s Snapshot) Hash() string {
	if s.grid == nil {
		return ""
	}
	return s.grid.Hash()
}

// Equal reports whether both snapshots have the same size and cells
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Width() != other.Width() || s.Height() != other.Height() {
		return false
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if s.grid.cells[y][x] != other.grid.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells returns a copy of the cell matrix indexed as [y][x]
func (s Snapshot) Cells() [][]bool {
	if s.grid == nil {
		return nil
	}
	return s.grid.Clone().cells
}
