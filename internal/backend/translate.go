package backend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/breathe/internal/config"
	"github.com/dshills/breathe/internal/gesture"
)

// Contact IDs used for mouse emulation.
const (
	PointerID = 0
	PivotID   = 1
)

const wheel = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// translator turns mouse reports into touch events. The left button is one
// finger. Holding Ctrl when the button goes down adds a second finger pinned
// PivotOffset cells to the left of the press, so dragging pinches and
// rotates around it.
type translator struct {
	cfg config.Terminal

	down    bool
	pointer gesture.Contact
	pivot   *gesture.Contact
}

func newTranslator(cfg config.Terminal) *translator {
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = 1
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = 1
	}
	return &translator{cfg: cfg}
}

// toPixels maps a cell to the pixel at its center.
func (tr *translator) toPixels(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * tr.cfg.CellWidth, (float64(y) + 0.5) * tr.cfg.CellHeight
}

// toCell maps a pixel position back to its cell.
func (tr *translator) toCell(px, py float64) (int, int) {
	return int(px / tr.cfg.CellWidth), int(py / tr.cfg.CellHeight)
}

// mouse converts one mouse report. It returns false when the report does not
// change the touch state.
func (tr *translator) mouse(x, y int, buttons tcell.ButtonMask, mods tcell.ModMask, at time.Time) (gesture.TouchEvent, bool) {
	if buttons&wheel != 0 {
		return gesture.TouchEvent{}, false
	}
	px, py := tr.toPixels(x, y)
	pressed := buttons&tcell.Button1 != 0

	switch {
	case pressed && !tr.down:
		tr.down = true
		tr.pointer = gesture.Contact{ID: PointerID, X: px, Y: py}
		changed := []gesture.Contact{tr.pointer}
		if mods&tcell.ModCtrl != 0 {
			pivot := gesture.Contact{ID: PivotID, X: px - tr.cfg.PivotOffset*tr.cfg.CellWidth, Y: py}
			tr.pivot = &pivot
			changed = append(changed, pivot)
		}
		return gesture.TouchEvent{Phase: gesture.PhaseStart, Changed: changed, Time: at}, true

	case pressed && tr.down:
		if px == tr.pointer.X && py == tr.pointer.Y {
			return gesture.TouchEvent{}, false
		}
		tr.pointer.X, tr.pointer.Y = px, py
		return gesture.TouchEvent{
			Phase:   gesture.PhaseMove,
			Changed: []gesture.Contact{tr.pointer},
			Time:    at,
		}, true

	case !pressed && tr.down:
		// Release reports carry the release position in most terminals.
		if buttons == tcell.ButtonNone {
			tr.pointer.X, tr.pointer.Y = px, py
		}
		return gesture.TouchEvent{Phase: gesture.PhaseEnd, Changed: tr.release(), Time: at}, true
	}
	return gesture.TouchEvent{}, false
}

// cancel aborts a press in progress.
func (tr *translator) cancel(at time.Time) (gesture.TouchEvent, bool) {
	if !tr.down {
		return gesture.TouchEvent{}, false
	}
	return gesture.TouchEvent{Phase: gesture.PhaseCancel, Changed: tr.release(), Time: at}, true
}

func (tr *translator) release() []gesture.Contact {
	changed := []gesture.Contact{tr.pointer}
	if tr.pivot != nil {
		changed = append(changed, *tr.pivot)
	}
	tr.down = false
	tr.pivot = nil
	return changed
}

// contacts returns the contacts currently down.
func (tr *translator) contacts() []gesture.Contact {
	if !tr.down {
		return nil
	}
	out := []gesture.Contact{tr.pointer}
	if tr.pivot != nil {
		out = append(out, *tr.pivot)
	}
	return out
}
