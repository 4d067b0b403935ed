package engine

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/patterns"
	"github.com/sheikhrachel/go-life/utils"
)

var (
	// ErrInvalidSpeed is returned for a non-positive tick interval
	ErrInvalidSpeed = errors.New("invalid speed")
	// ErrNotIdle is returned when a manual edit arrives while the simulation advances
	ErrNotIdle = errors.New("simulation is not idle")
)

// Engine owns one simulation: the published grid, the mode and the tick interval.
//
// Every grid stored in current is treated as immutable once published. New
// generations and manual edits build a fresh grid and swap the pointer, so
// CurrentSnapshot never sees a half-computed generation.
type Engine struct {
	mu sync.Mutex // serializes intents against Tick

	current        atomic.Pointer[model.Grid]
	mode           atomic.Int32
	generation     atomic.Int64
	tickIntervalMs atomic.Int64

	width, height int
	sampleSize    int
	historySize   int
	history       []string
	stats         *utils.Stats
	lastTick      time.Time

	rng     *rand.Rand
	library *patterns.Library
	logger  *log.Logger

	wake chan struct{}
}

// New creates an engine with an all-dead board in Idle mode.
// A nil rng is seeded from config.Seed, or from the clock when the seed is 0.
// A nil logger discards output.
func New(config utils.Config, rng *rand.Rand, logger *log.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[engine.New]")
	}
	grid, err := model.New(config.Width(), config.Height())
	if err != nil {
		return nil, errors.Wrap(err, "[engine.New]")
	}

	if rng == nil {
		seed := uint64(config.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewPCG(seed, 0))
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	e := &Engine{
		width:       config.Width(),
		height:      config.Height(),
		sampleSize:  config.RandomSampleSize,
		historySize: config.StagnationHistory,
		stats:       utils.NewStats(),
		rng:         rng,
		library:     patterns.DefaultLibrary(),
		logger:      logger,
		wake:        make(chan struct{}, 1),
	}
	e.current.Store(grid)
	e.tickIntervalMs.Store(int64(config.TickIntervalMs))
	e.mode.Store(int32(Idle))
	return e, nil
}

// Library exposes the preset registry so callers can register their own patterns.
// Register before calling Run; the registry itself is not synchronized.
func (e *Engine) Library() *patterns.Library {
	return e.library
}

// CurrentSnapshot returns the most recently completed generation. It never blocks.
func (e *Engine) CurrentSnapshot() model.Snapshot {
	return e.current.Load().View()
}

// CurrentMode returns the current mode. It never blocks.
func (e *Engine) CurrentMode() Mode {
	return Mode(e.mode.Load())
}

// Generation returns the number of generations computed since the board was last replaced
func (e *Engine) Generation() int {
	return int(e.generation.Load())
}

// Speed returns the tick interval in milliseconds
func (e *Engine) Speed() int {
	return int(e.tickIntervalMs.Load())
}

// RandomSampleSize is the configured default for ApplyRandom
func (e *Engine) RandomSampleSize() int {
	return e.sampleSize
}

// Stats returns a copy of the performance counters
func (e *Engine) Stats() utils.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.stats
}

// Stagnant reports whether the board repeats one of its last three generations
func (e *Engine) Stagnant() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.history)
	if n < 2 {
		return false
	}
	currentHash := e.history[n-1]
	for i := n - 2; i >= max(0, n-4); i-- {
		if e.history[i] == currentHash {
			return true
		}
	}
	return false
}

// setMode must be called with mu held
func (e *Engine) setMode(m Mode) {
	prev := Mode(e.mode.Swap(int32(m)))
	if prev != m {
		e.logger.Printf("[Engine] mode %s -> %s", prev, m)
	}
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// publish swaps in a replacement board and restarts the counters.
// Must be called with mu held.
func (e *Engine) publish(g *model.Grid) {
	e.current.Store(g)
	e.generation.Store(0)
	e.history = e.history[:0]
	e.stats.Reset()
	e.lastTick = time.Time{}
}

// Start begins advancing one generation per tick
func (e *Engine) Start() {
	e.mu.Lock()
	e.setMode(Running)
	e.mu.Unlock()
	e.signal()
}

// Stop pauses a running simulation
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.CurrentMode() == Running {
		e.setMode(Idle)
		e.signal()
	}
}

// Step requests a single generation. While Running it is a no-op: the next
// scheduled tick is the advance.
func (e *Engine) Step() {
	e.mu.Lock()
	if e.CurrentMode() != Idle {
		e.mu.Unlock()
		return
	}
	e.setMode(SteppingOnce)
	e.mu.Unlock()
	e.signal()
}

// Clear stops the simulation and replaces the board with an all-dead one
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setMode(Idle)
	e.publish(e.emptyGrid())
}

func (e *Engine) emptyGrid() *model.Grid {
	g, err := model.New(e.width, e.height)
	if err != nil {
		// dimensions were validated in New
		panic(err)
	}
	return g
}

// SetSpeed changes the tick interval. It applies from the next tick on.
func (e *Engine) SetSpeed(ms int) error {
	if ms <= 0 {
		e.logger.Printf("[Engine] rejected speed %d", ms)
		return errors.Wrapf(ErrInvalidSpeed, "[SetSpeed] %dms must be positive", ms)
	}
	e.tickIntervalMs.Store(int64(ms))
	return nil
}

// Toggle flips one cell. Only allowed while Idle.
func (e *Engine) Toggle(x, y int) error {
	return e.edit("Toggle", func(g *model.Grid) error { return g.Toggle(x, y) })
}

// Set sets one cell alive or dead. Only allowed while Idle.
func (e *Engine) Set(x, y int, alive bool) error {
	return e.edit("Set", func(g *model.Grid) error { return g.Set(x, y, alive) })
}

func (e *Engine) edit(op string, apply func(*model.Grid) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode := e.CurrentMode(); mode != Idle {
		return errors.Wrapf(ErrNotIdle, "[%s] mode is %s", op, mode)
	}
	next := e.current.Load().Clone()
	if err := apply(next); err != nil {
		e.logger.Printf("[Engine] ignored %s: %v", op, err)
		return errors.Wrapf(err, "[%s]", op)
	}
	e.current.Store(next)
	e.history = e.history[:0]
	return nil
}

// ApplyPreset stops the simulation and loads the named preset onto an empty board.
// On error the board and mode are left as they were.
func (e *Engine) ApplyPreset(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.emptyGrid()
	if err := e.library.ApplyPreset(next, name); err != nil {
		e.logger.Printf("[Engine] preset %q: %v", name, err)
		return err
	}
	e.setMode(Idle)
	e.publish(next)
	return nil
}

// ApplyRandom stops the simulation and scatters sampleSize random live cells
// over an empty board. On error the board and mode are left as they were.
func (e *Engine) ApplyRandom(sampleSize int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.emptyGrid()
	if err := patterns.ApplyRandom(next, sampleSize, e.rng); err != nil {
		e.logger.Printf("[Engine] random %d: %v", sampleSize, err)
		return err
	}
	e.setMode(Idle)
	e.publish(next)
	return nil
}

// Tick runs one loop iteration. It advances a generation when Running or
// SteppingOnce, dropping SteppingOnce back to Idle, and reports whether it did.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode := e.CurrentMode()
	if mode == Idle {
		return false
	}

	next := e.current.Load().NextGeneration()
	e.current.Store(next)
	generation := e.generation.Add(1)
	e.record(int(generation), next)

	if mode == SteppingOnce {
		e.setMode(Idle)
	}
	return true
}

// record must be called with mu held
func (e *Engine) record(generation int, g *model.Grid) {
	now := time.Now()
	var frame time.Duration
	if !e.lastTick.IsZero() {
		frame = now.Sub(e.lastTick)
	}
	e.lastTick = now
	e.stats.Update(generation, g.CountLivingCells(), frame)

	if e.historySize == 0 {
		return
	}
	e.history = append(e.history, g.Hash())
	if len(e.history) > e.historySize {
		e.history = e.history[1:]
	}
}

// Run drives the stepping loop until ctx is cancelled. While Running it ticks
// and then sleeps the tick interval; otherwise it blocks until an intent wakes it.
func (e *Engine) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		e.Tick()

		if e.CurrentMode() == Running {
			timer.Reset(time.Duration(e.tickIntervalMs.Load()) * time.Millisecond)
			if !e.sleep(ctx, timer) {
				return nil
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-e.wake:
		}
	}
}

// sleep waits out one tick interval. An intent that leaves Running cuts the
// wait short; wake-ups while still Running keep waiting on the same timer so
// they never add an extra generation. It reports false once ctx is done.
func (e *Engine) sleep(ctx context.Context, timer *time.Timer) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		case <-e.wake:
			if e.CurrentMode() != Running {
				timer.Stop()
				return true
			}
		}
	}
}
