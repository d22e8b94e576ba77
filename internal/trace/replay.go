package trace

import (
	"context"
	"time"

	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/gesture/clock"
	"github.com/dshills/breathe/internal/gesture/surface"
)

// Result is the outcome of a replay.
type Result struct {
	// Gestures lists every recognized gesture in order.
	Gestures []gesture.Gesture
	// At holds the virtual offset at which each gesture fired.
	At []time.Duration
	// Metrics is the replay recognizer's final snapshot.
	Metrics gesture.MetricsSnapshot
}

// Kinds returns the kinds of the recognized gestures.
func (r Result) Kinds() []gesture.Kind {
	out := make([]gesture.Kind, len(r.Gestures))
	for i, g := range r.Gestures {
		out[i] = g.Kind
	}
	return out
}

// Replay feeds t through a new recognizer built with opts and reports what
// it recognized. cb, which may be empty, is called for each gesture as it
// fires. After the last event the virtual clock runs on until any pending
// long press or double-tap window has resolved.
func Replay(ctx context.Context, t Trace, cb gesture.Callbacks, opts ...gesture.Option) (Result, error) {
	if err := t.Validate(); err != nil {
		return Result{}, err
	}

	start := t.Created
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	clk := clock.NewVirtual(start)
	surf := surface.NewMemory()

	var res Result
	collect := gesture.CallbacksFunc(func(g gesture.Gesture) {
		res.Gestures = append(res.Gestures, g)
		res.At = append(res.At, clk.Now().Sub(start))
		cb.Call(g)
	})

	opts = append(opts[:len(opts):len(opts)], gesture.WithScheduler(clk))
	r := gesture.New(surf, collect, opts...)
	defer r.Destroy()

	for _, ev := range t.Events {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		te := ev.touchEvent(start)
		clk.AdvanceTo(te.Time)
		surf.Dispatch(te)
	}

	cfg := r.Config()
	clk.Advance(max(cfg.LongPressDelay, cfg.DoubleTapDelay))

	res.Metrics = r.Metrics().Snapshot()
	return res, nil
}
