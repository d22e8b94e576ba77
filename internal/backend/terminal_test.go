package backend

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/breathe/internal/config"
	"github.com/dshills/breathe/internal/gesture"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen, config.Terminal{CellWidth: 8, CellHeight: 16, PivotOffset: 10})
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(term.Shutdown)
	return term, screen
}

type collector struct {
	mu    sync.Mutex
	kinds []gesture.Kind
	vals  []float64
}

func (c *collector) callbacks() gesture.Callbacks {
	return gesture.CallbacksFunc(func(g gesture.Gesture) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.kinds = append(c.kinds, g.Kind)
		c.vals = append(c.vals, g.Value)
	})
}

func (c *collector) got() []gesture.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]gesture.Kind(nil), c.kinds...)
}

func mouse(x, y int, b tcell.ButtonMask, m tcell.ModMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, b, m)
}

func screenText(screen tcell.SimulationScreen, row int) string {
	width, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, row) //nolint:staticcheck // GetContent is the correct API
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestTerminalSuppressionCapturesMouse(t *testing.T) {
	term, _ := newSimTerminal(t)
	if term.Capturing() {
		t.Fatal("capturing before any suppression")
	}

	r := gesture.New(term, gesture.Callbacks{})
	if !term.Capturing() {
		t.Error("not capturing while a recognizer is attached")
	}
	r.Destroy()
	if term.Capturing() {
		t.Error("still capturing after Destroy")
	}
}

func TestTerminalSwipe(t *testing.T) {
	term, _ := newSimTerminal(t)
	var c collector
	r := gesture.New(term, c.callbacks())
	defer r.Destroy()

	term.HandleEvent(mouse(40, 10, tcell.Button1, tcell.ModNone))
	term.HandleEvent(mouse(35, 10, tcell.Button1, tcell.ModNone))
	term.HandleEvent(mouse(30, 10, tcell.ButtonNone, tcell.ModNone))

	// Ten cells of 8px is an 80px swipe.
	if got := c.got(); len(got) != 1 || got[0] != gesture.KindSwipeLeft {
		t.Errorf("gestures = %v, want [swipe-left]", got)
	}
	if r.ActiveContacts() != 0 {
		t.Errorf("active contacts = %d", r.ActiveContacts())
	}
}

func TestTerminalCtrlDragPinches(t *testing.T) {
	term, _ := newSimTerminal(t)
	var c collector
	r := gesture.New(term, c.callbacks())
	defer r.Destroy()

	// Pointer at cell 30, pivot 10 cells (80px) to the left.
	term.HandleEvent(mouse(30, 10, tcell.Button1, tcell.ModCtrl))
	if r.Mode() != gesture.ModeMultiTouch {
		t.Fatalf("mode = %v, want multi-touch", r.Mode())
	}
	// Dragging 10 cells right doubles the distance.
	term.HandleEvent(mouse(40, 10, tcell.Button1, tcell.ModCtrl))
	term.HandleEvent(mouse(40, 10, tcell.ButtonNone, tcell.ModNone))

	got := c.got()
	if len(got) != 1 || got[0] != gesture.KindPinch {
		t.Fatalf("gestures = %v, want [pinch]", got)
	}
	if c.vals[0] != 2 {
		t.Errorf("scale = %v, want 2", c.vals[0])
	}
}

func TestTerminalEscapeCancels(t *testing.T) {
	term, _ := newSimTerminal(t)
	var c collector
	r := gesture.New(term, c.callbacks())
	defer r.Destroy()

	term.HandleEvent(mouse(40, 10, tcell.Button1, tcell.ModNone))
	term.HandleEvent(mouse(30, 10, tcell.Button1, tcell.ModNone))
	if quit := term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); quit {
		t.Fatal("escape quit")
	}
	term.HandleEvent(mouse(30, 10, tcell.ButtonNone, tcell.ModNone))

	if got := c.got(); len(got) != 0 {
		t.Errorf("gestures after cancel = %v", got)
	}
	if r.Mode() != gesture.ModeIdle {
		t.Errorf("mode = %v, want idle", r.Mode())
	}
}

func TestTerminalQuitKeys(t *testing.T) {
	term, _ := newSimTerminal(t)
	tests := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range tests {
		if !term.HandleEvent(ev) {
			t.Errorf("HandleEvent(%v) did not quit", ev.Name())
		}
	}
	if term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("x quit")
	}
}

func TestTerminalDrawsLogAndStatus(t *testing.T) {
	term, screen := newSimTerminal(t)

	term.Logf("recognized %s", "tap")
	term.SetStatus("mode: idle")

	if got := screenText(screen, 0); !strings.HasPrefix(got, "drag: one finger") {
		t.Errorf("header = %q", got)
	}
	if got := screenText(screen, 1); !strings.HasSuffix(got, "recognized tap") {
		t.Errorf("log line = %q", got)
	}
	if got := screenText(screen, 23); got != "mode: idle" {
		t.Errorf("status = %q", got)
	}
	if lines := term.Lines(); len(lines) != 1 {
		t.Errorf("lines = %v", lines)
	}
}

func TestTerminalLogIsBounded(t *testing.T) {
	term, _ := newSimTerminal(t)
	for i := 0; i < maxLogLines+25; i++ {
		term.Logf("line %d", i)
	}
	lines := term.Lines()
	if len(lines) != maxLogLines {
		t.Fatalf("len(lines) = %d, want %d", len(lines), maxLogLines)
	}
	if !strings.HasSuffix(lines[len(lines)-1], "line 224") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestTerminalRunQuits(t *testing.T) {
	term, screen := newSimTerminal(t)

	errc := make(chan error, 1)
	go func() { errc <- term.Run(context.Background()) }()
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestTerminalRunStopsOnContext(t *testing.T) {
	term, _ := newSimTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- term.Run(ctx) }()
	cancel()

	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
