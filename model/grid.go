package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/rules"
)

var (
	// ErrOutOfBounds is returned when a coordinate falls outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidDimensions is returned when a grid is created with a non-positive size
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// Grid represents the game board. Its dimensions never change after construction.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// New creates a new grid with the specified dimensions, all cells dead
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[New] %dx%d", width, height)
	}
	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) checkBounds(op string, x, y int) error {
	if !g.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[%s] (%d,%d) outside %dx%d", op, x, y, g.width, g.height)
	}
	return nil
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (bool, error) {
	if err := g.checkBounds("Get", x, y); err != nil {
		return false, err
	}
	return g.cells[y][x], nil
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) error {
	if err := g.checkBounds("Set", x, y); err != nil {
		return err
	}
	g.cells[y][x] = alive
	return nil
}

// Toggle flips the state of a cell
func (g *Grid) Toggle(x, y int) error {
	if err := g.checkBounds("Toggle", x, y); err != nil {
		return err
	}
	g.cells[y][x] = !g.cells[y][x]
	return nil
}

// Clear clears all cells
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	next := newGrid(g.width, g.height)
	for y := range g.height {
		copy(next.cells[y], g.cells[y])
	}
	return next
}

// Snapshot returns a read-only copy of the grid that later edits do not affect
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{grid: g.Clone()}
}

// View wraps the grid itself in a Snapshot without copying.
// The caller must guarantee the grid is never mutated again.
func (g *Grid) View() Snapshot {
	return Snapshot{grid: g}
}

// CountNeighbors counts living neighbors. Cells outside the grid are not counted.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// NextGeneration calculates the next generation into a freshly allocated grid.
// The receiver is only read, so every cell sees the same generation.
func (g *Grid) NextGeneration() *Grid {
	next := newGrid(g.width, g.height)
	for y := range g.height {
		for x := range g.width {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cells[y][x])
		}
	}
	return next
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
