// Package backend provides a terminal touch surface for trying gestures
// without a touch screen.
package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/breathe/internal/config"
	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/gesture/surface"
)

const maxLogLines = 200

const helpText = "drag: one finger   ctrl+drag: two fingers   esc: cancel   q: quit"

// Terminal implements gesture.Surface on a tcell screen. Mouse input is
// translated to touch events and delivered to the registered listeners.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	events *surface.Memory
	tr     *translator

	lines  []string
	status string
}

// NewTerminal creates a terminal surface on the controlling terminal.
func NewTerminal(cfg config.Terminal) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, cfg), nil
}

// NewTerminalWithScreen creates a terminal surface on screen.
func NewTerminalWithScreen(screen tcell.Screen, cfg config.Terminal) *Terminal {
	return &Terminal{
		screen: screen,
		events: surface.NewMemory(),
		tr:     newTranslator(cfg),
	}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.drawLocked()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// AddListener implements gesture.Surface.
func (t *Terminal) AddListener(phase gesture.Phase, fn gesture.Listener, opts gesture.ListenerOptions) func() {
	return t.events.AddListener(phase, fn, opts)
}

// SuppressDefaults implements gesture.Surface. A terminal's default mouse
// behavior is its own text selection and context menu, so the screen
// captures the mouse while either is suppressed.
func (t *Terminal) SuppressDefaults(b gesture.Behavior) func() {
	restore := t.events.SuppressDefaults(b)
	t.syncMouse()
	return func() {
		restore()
		t.syncMouse()
	}
}

// Capturing reports whether the screen is capturing the mouse.
func (t *Terminal) Capturing() bool {
	s := t.events.Suppressed()
	return s.Has(gesture.BehaviorSelection) || s.Has(gesture.BehaviorContextMenu)
}

func (t *Terminal) syncMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Capturing() {
		t.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	} else {
		t.screen.DisableMouse()
	}
}

// HandleEvent processes one screen event and reports whether the user asked
// to quit.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		x, y := e.Position()
		t.mu.Lock()
		te, ok := t.tr.mouse(x, y, e.Buttons(), e.Modifiers(), e.When())
		t.mu.Unlock()
		if ok {
			t.events.Dispatch(te)
			t.Draw()
		}

	case *tcell.EventKey:
		switch {
		case e.Key() == tcell.KeyCtrlC:
			return true
		case e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q'):
			return true
		case e.Key() == tcell.KeyEscape:
			t.mu.Lock()
			te, ok := t.tr.cancel(e.When())
			t.mu.Unlock()
			if ok {
				t.events.Dispatch(te)
				t.Draw()
			}
		}

	case *tcell.EventResize:
		t.mu.Lock()
		t.screen.Sync()
		t.drawLocked()
		t.mu.Unlock()
	}
	return false
}

// Run reads screen events until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if t.HandleEvent(ev) {
			return nil
		}
	}
}

// Logf appends a line to the on-screen log and redraws.
func (t *Terminal) Logf(format string, args ...any) {
	line := fmt.Sprintf("%s  %s", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))

	t.mu.Lock()
	t.lines = append(t.lines, line)
	if len(t.lines) > maxLogLines {
		t.lines = append([]string(nil), t.lines[len(t.lines)-maxLogLines:]...)
	}
	t.drawLocked()
	t.mu.Unlock()
}

// SetStatus replaces the status line and redraws.
func (t *Terminal) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.drawLocked()
	t.mu.Unlock()
}

// Lines returns the log lines.
func (t *Terminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Draw redraws the screen.
func (t *Terminal) Draw() {
	t.mu.Lock()
	t.drawLocked()
	t.mu.Unlock()
}

func (t *Terminal) drawLocked() {
	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	t.screen.Clear()

	header := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		t.screen.SetContent(x, 0, ' ', nil, header)
	}
	t.putString(0, 0, helpText, header)
	t.putString(0, height-1, t.status, tcell.StyleDefault.Bold(true))

	// Log lines fill the body, newest at the bottom.
	body := height - 2
	lines := t.lines
	if len(lines) > body {
		lines = lines[len(lines)-body:]
	}
	for i, line := range lines {
		t.putString(0, 1+i, line, tcell.StyleDefault.Dim(true))
	}

	marker := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	for _, c := range t.tr.contacts() {
		x, y := t.tr.toCell(c.X, c.Y)
		r := '●'
		if c.ID == PivotID {
			r = '◆'
		}
		if x >= 0 && x < width && y > 0 && y < height-1 {
			t.screen.SetContent(x, y, r, nil, marker)
		}
	}

	t.screen.Show()
}

func (t *Terminal) putString(x, y int, s string, style tcell.Style) {
	width, _ := t.screen.Size()
	for _, r := range s {
		if x >= width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
