package main

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/patterns"
)

const (
	headerRows    = 2
	cellColumns   = 2
	frameInterval = 33 * time.Millisecond
	speedStepMs   = 10

	helpLine = "s start  p stop  n step  c clear  r random  g space gun  +/- speed  : set speed  # random N  q quit  mouse: paint while stopped"
)

// prompt kinds for typed numeric input
const (
	promptNone   rune = 0
	promptSpeed  rune = ':'
	promptSample rune = '#'
)

var errQuit = errors.New("quit")

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAlive  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// terminalUI turns keys and mouse input into engine intents and draws snapshots
type terminalUI struct {
	screen tcell.Screen
	sim    *engine.Engine

	mu      sync.Mutex
	message string
	prompt  rune
	input   []rune

	// drag state: the value painted for the whole gesture is decided by the first cell
	dragging   bool
	paintAlive bool
	lastX      int
	lastY      int
}

func newTerminalUI(sim *engine.Engine) (*terminalUI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[newTerminalUI] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[newTerminalUI] failed to init screen")
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &terminalUI{screen: screen, sim: sim}, nil
}

// Run drives the engine loop, the renderer and the input loop until quit or ctx is done
func (u *terminalUI) Run(ctx context.Context) error {
	defer u.screen.Fini()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return u.sim.Run(ctx) })
	eg.Go(func() error { return u.renderLoop(ctx) })
	eg.Go(func() error { return u.eventLoop(ctx) })
	eg.Go(func() error {
		<-ctx.Done()
		// wake PollEvent so the input loop notices the shutdown
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return nil
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (u *terminalUI) renderLoop(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		u.draw()
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (u *terminalUI) eventLoop(ctx context.Context) error {
	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if err := u.handleKey(ev); err != nil {
				return err
			}
		case *tcell.EventMouse:
			u.handleMouse(ev)
		}
	}
}

func (u *terminalUI) handleKey(ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyCtrlC {
		return errQuit
	}
	if u.prompting() {
		u.handlePromptKey(ev)
		return nil
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return errQuit
	case tcell.KeyRune:
	default:
		return nil
	}

	var err error
	switch ev.Rune() {
	case 'q':
		return errQuit
	case 's':
		u.sim.Start()
	case 'p':
		u.sim.Stop()
	case 'n':
		u.sim.Step()
	case 'c':
		u.sim.Clear()
	case 'r':
		err = u.sim.ApplyRandom(u.sim.RandomSampleSize())
	case 'g':
		err = u.sim.ApplyPreset(patterns.SpaceGun)
	case ':', '#':
		u.openPrompt(ev.Rune())
		return nil
	case '+':
		err = u.sim.SetSpeed(max(1, u.sim.Speed()-speedStepMs))
	case '-':
		err = u.sim.SetSpeed(u.sim.Speed() + speedStepMs)
	}
	u.setMessage(err)
	return nil
}

func (u *terminalUI) prompting() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.prompt != promptNone
}

func (u *terminalUI) openPrompt(kind rune) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.prompt = kind
	u.input = u.input[:0]
	u.message = ""
}

// handlePromptKey edits the typed number; Enter submits it, Esc discards it
func (u *terminalUI) handlePromptKey(ev *tcell.EventKey) {
	u.mu.Lock()
	switch ev.Key() {
	case tcell.KeyEscape:
		u.prompt = promptNone
		u.mu.Unlock()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.input) > 0 {
			u.input = u.input[:len(u.input)-1]
		}
		u.mu.Unlock()
		return
	case tcell.KeyRune:
		u.input = append(u.input, ev.Rune())
		u.mu.Unlock()
		return
	case tcell.KeyEnter:
	default:
		u.mu.Unlock()
		return
	}
	kind, text := u.prompt, string(u.input)
	u.prompt = promptNone
	u.mu.Unlock()

	u.setMessage(u.submitPrompt(kind, text))
}

func (u *terminalUI) submitPrompt(kind rune, text string) error {
	switch kind {
	case promptSpeed:
		ms, err := engine.ParseSpeed(text)
		if err != nil {
			return err
		}
		return u.sim.SetSpeed(ms)
	case promptSample:
		n, err := patterns.ParseSampleSize(text)
		if err != nil {
			return err
		}
		return u.sim.ApplyRandom(n)
	}
	return nil
}

func (u *terminalUI) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		u.dragging = false
		return
	}
	if u.sim.CurrentMode() != engine.Idle {
		return
	}

	sx, sy := ev.Position()
	x, y := sx/cellColumns, sy-headerRows
	snap := u.sim.CurrentSnapshot()
	if x < 0 || y < 0 || x >= snap.Width() || y >= snap.Height() {
		return
	}

	if !u.dragging {
		u.dragging = true
		u.paintAlive = !snap.Alive(x, y)
	} else if x == u.lastX && y == u.lastY {
		return
	}
	u.lastX, u.lastY = x, y
	u.setMessage(u.sim.Set(x, y, u.paintAlive))
}

func (u *terminalUI) setMessage(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err == nil {
		u.message = ""
		return
	}
	u.message = err.Error()
}

func (u *terminalUI) draw() {
	u.mu.Lock()
	message, prompt, input := u.message, u.prompt, string(u.input)
	u.mu.Unlock()

	s := u.screen
	s.Clear()
	drawText(s, 0, 0, formatStatus(u.sim), styleStatus)
	switch {
	case prompt == promptSpeed:
		drawText(s, 0, 1, "speed (ms): "+input, stylePrompt)
	case prompt == promptSample:
		drawText(s, 0, 1, "random sample size: "+input, stylePrompt)
	case message != "":
		drawText(s, 0, 1, message, styleError)
	default:
		drawText(s, 0, 1, helpLine, styleHelp)
	}

	snap := u.sim.CurrentSnapshot()
	width, height := s.Size()
	for y := 0; y < snap.Height() && y+headerRows < height; y++ {
		for x := 0; x < snap.Width() && x*cellColumns+1 < width; x++ {
			if !snap.Alive(x, y) {
				continue
			}
			s.SetContent(x*cellColumns, y+headerRows, '█', nil, styleAlive)
			s.SetContent(x*cellColumns+1, y+headerRows, '█', nil, styleAlive)
		}
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}
