package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
)

// gameStatus classifies the board for the status line
func gameStatus(sim *engine.Engine, snap model.Snapshot) string {
	switch {
	case snap.CountLivingCells() == 0 && sim.Generation() > 0:
		return "Extinct"
	case sim.Stagnant():
		return "Stagnant"
	default:
		return "Active"
	}
}

// formatStatus renders the one-line summary shown above the board
func formatStatus(sim *engine.Engine) string {
	snap := sim.CurrentSnapshot()
	livingCells := snap.CountLivingCells()
	density := float64(livingCells) / float64(snap.Width()*snap.Height()) * 100
	stats := sim.Stats()

	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Mode: %s | Speed: %dms | %.1f gen/sec | Status: %s",
		sim.Generation(), livingCells, density, sim.CurrentMode(), sim.Speed(),
		stats.GenerationsPerSecond, gameStatus(sim, snap))
}

// runHeadless prints the board for the given number of generations, one frame per tick
func runHeadless(ctx context.Context, sim *engine.Engine, generations int, out io.Writer) error {
	renderer := model.NewTextRenderer()

	for generation := 0; ; generation++ {
		fmt.Fprintln(out, formatStatus(sim))
		if err := renderer.Display(out, sim.CurrentSnapshot()); err != nil {
			return errors.Wrap(err, "[runHeadless]")
		}
		fmt.Fprintln(out)

		if generation >= generations {
			return nil
		}

		sim.Step()
		sim.Tick()

		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "Stopped after %d generations\n", sim.Generation())
			return nil
		case <-time.After(time.Duration(sim.Speed()) * time.Millisecond):
		}
	}
}
