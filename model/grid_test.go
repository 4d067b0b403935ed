package model

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func mustGrid(t *testing.T, w, h int, alive ...[2]int) *Grid {
	t.Helper()
	g, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	for _, c := range alive {
		if err := g.Set(c[0], c[1], true); err != nil {
			t.Fatalf("Set(%d, %d): %v", c[0], c[1], err)
		}
	}
	return g
}

func aliveSet(g *Grid) map[[2]int]bool {
	out := map[[2]int]bool{}
	for y := range g.Height() {
		for x := range g.Width() {
			if alive, _ := g.Get(x, y); alive {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("New(%d, %d) err = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestNewAllDead(t *testing.T) {
	g := mustGrid(t, 7, 4)
	if g.Width() != 7 || g.Height() != 4 {
		t.Fatalf("size = %dx%d, want 7x4", g.Width(), g.Height())
	}
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("new grid has %d living cells", n)
	}
}

func TestBoundsChecks(t *testing.T) {
	g := mustGrid(t, 3, 2)
	coords := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}}
	for _, c := range coords {
		if _, err := g.Get(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%d, %d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
		if err := g.Set(c[0], c[1], true); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%d, %d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
		if err := g.Toggle(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Toggle(%d, %d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("failed mutations changed the grid: %d living cells", n)
	}
}

func TestSetToggleClear(t *testing.T) {
	g := mustGrid(t, 4, 4)
	if err := g.Set(1, 2, true); err != nil {
		t.Fatal(err)
	}
	if alive, _ := g.Get(1, 2); !alive {
		t.Fatal("Set did not mark cell alive")
	}
	if n := g.CountLivingCells(); n != 1 {
		t.Fatalf("Set touched %d cells, want 1", n)
	}
	if err := g.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if alive, _ := g.Get(1, 2); alive {
		t.Fatal("Toggle did not flip alive cell")
	}
	if err := g.Toggle(3, 3); err != nil {
		t.Fatal(err)
	}
	g.Clear()
	if n := g.CountLivingCells(); n != 0 {
		t.Fatalf("Clear left %d living cells", n)
	}
	if g.Width() != 4 || g.Height() != 4 {
		t.Fatal("Clear changed dimensions")
	}
}

func TestCornerNeighborCount(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{1, 1})
	if n := g.CountNeighbors(0, 0); n != 1 {
		t.Fatalf("corner neighbors = %d, want 1", n)
	}

	full := mustGrid(t, 3, 3)
	for y := range 3 {
		for x := range 3 {
			full.Set(x, y, true)
		}
	}
	if n := full.CountNeighbors(0, 0); n != 3 {
		t.Fatalf("corner of full grid has %d neighbors, want 3", n)
	}
	if n := full.CountNeighbors(1, 1); n != 8 {
		t.Fatalf("center of full grid has %d neighbors, want 8", n)
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {3, 5}, {16, 9}} {
		g := mustGrid(t, dims[0], dims[1])
		for range 10 {
			g = g.NextGeneration()
		}
		if n := g.CountLivingCells(); n != 0 {
			t.Fatalf("%dx%d dead grid produced %d living cells", dims[0], dims[1], n)
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	gen0 := mustGrid(t, 5, 5, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	gen1 := gen0.NextGeneration()
	gen2 := gen1.NextGeneration()

	want1 := map[[2]int]bool{{0, 1}: true, {1, 1}: true, {2, 1}: true}
	got1 := aliveSet(gen1)
	if len(got1) != len(want1) {
		t.Fatalf("generation 1 alive = %v, want %v", got1, want1)
	}
	for c := range want1 {
		if !got1[c] {
			t.Fatalf("generation 1 alive = %v, want %v", got1, want1)
		}
	}

	if gen0.Hash() == gen1.Hash() {
		t.Fatal("generation 1 should differ from generation 0")
	}
	if !gen0.View().Equal(gen2.View()) {
		t.Fatal("generation 2 should equal generation 0")
	}
}

func TestNextGenerationDoesNotMutateSource(t *testing.T) {
	g := mustGrid(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	before := g.Hash()
	next := g.NextGeneration()
	if g.Hash() != before {
		t.Fatal("NextGeneration mutated its source grid")
	}
	if next == g {
		t.Fatal("NextGeneration must return a new grid")
	}
}

func TestEdgeEffectsWithoutWrap(t *testing.T) {
	// A blinker on the left edge would be rebuilt across the border on a torus.
	g := mustGrid(t, 4, 4, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
	next := g.NextGeneration()
	want := map[[2]int]bool{{0, 1}: true, {1, 1}: true}
	got := aliveSet(next)
	if len(got) != len(want) || !got[[2]int{0, 1}] || !got[[2]int{1, 1}] {
		t.Fatalf("edge blinker alive = %v, want %v", got, want)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := mustGrid(t, 3, 3, [2]int{1, 1})
	snap := g.Snapshot()
	g.Toggle(1, 1)
	g.Set(0, 0, true)
	if !snap.Alive(1, 1) || snap.Alive(0, 0) {
		t.Fatal("snapshot observed edits made after it was taken")
	}
	if snap.Alive(-1, 5) {
		t.Fatal("out of bounds snapshot read should be dead")
	}
	cells := snap.Cells()
	cells[1][1] = false
	if !snap.Alive(1, 1) {
		t.Fatal("Cells must return a copy")
	}
	if snap.CountLivingCells() != 1 || snap.Hash() != mustGrid(t, 3, 3, [2]int{1, 1}).Hash() {
		t.Fatal("snapshot count and hash should describe the grid as it was taken")
	}
}

func TestZeroSnapshot(t *testing.T) {
	var s Snapshot
	if s.Width() != 0 || s.Height() != 0 || s.CountLivingCells() != 0 || s.Alive(0, 0) {
		t.Fatal("zero snapshot should be empty")
	}
}

func TestTextRendererDisplay(t *testing.T) {
	g := mustGrid(t, 2, 2, [2]int{0, 0}, [2]int{1, 1})
	var buf bytes.Buffer
	r := &TextRenderer{Alive: "#", Dead: "."}
	if err := r.Display(&buf, g.View()); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "#.\n.#\n"; got != want {
		t.Fatalf("Display = %q, want %q", got, want)
	}
}
