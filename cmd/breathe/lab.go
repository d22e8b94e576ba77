package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/breathe/internal/backend"
	"github.com/dshills/breathe/internal/config"
	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/session"
	"github.com/dshills/breathe/internal/trace"
)

func newLabCmd(a *app) *cobra.Command {
	var (
		recordPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Try gestures with the mouse in the terminal",
		Long: `lab turns the terminal into a touch surface. Drag with the left button for
one finger; hold Ctrl when pressing to add a second finger pinned to the left
of the pointer, then drag to pinch and rotate. Esc cancels the touch, q quits.

Logs go to the file named by logging.file, since the terminal is in use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogger(nil); err != nil {
				return err
			}
			term, err := backend.NewTerminal(a.cfg.Terminal)
			if err != nil {
				return fmt.Errorf("creating terminal: %w", err)
			}
			return runLab(cmd, a, term, recordPath, watch)
		},
	}

	cmd.Flags().StringVarP(&recordPath, "record", "r", "", "save the touch trace to this file on exit")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "reload configuration files when they change")
	return cmd
}

func runLab(cmd *cobra.Command, a *app, term *backend.Terminal, recordPath string, watch bool) (err error) {
	logger := a.logger

	bindings, err := bindingsFor(a.cfg)
	if err != nil {
		return err
	}
	script, err := a.loadScript()
	if err != nil {
		return err
	}

	if err := term.Init(); err != nil {
		if script != nil {
			_ = script.Close()
		}
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	metrics := gesture.NewMetrics()
	var r *gesture.Recognizer

	dispatcher := session.DispatcherFunc(func(c session.Command) {
		term.Logf("%-12s -> %s", describe(c), c.Name)
		logger.Info("command",
			zap.String("name", c.Name),
			zap.Stringer("kind", c.Kind),
			zap.Float64("value", c.Value))
		term.SetStatus(status(r, metrics))
	})

	opts := []session.BinderOption{session.WithLogger(logger.Named("session"))}
	if script != nil {
		opts = append(opts, session.WithScript(script))
	}
	binder := session.NewBinder(dispatcher, bindings, opts...)
	defer func() {
		if s := binder.SetScript(nil); s != nil {
			_ = s.Close()
		}
	}()

	// Recording attaches before the recognizer so the trace sees events in
	// the order they arrived.
	var rec *trace.Recorder
	if recordPath != "" {
		rec = trace.NewRecorder(term, "terminal")
		defer func() {
			tr := rec.Stop()
			if len(tr.Events) == 0 {
				return
			}
			if saveErr := trace.SaveFile(recordPath, tr); saveErr != nil && err == nil {
				err = saveErr
			}
			logger.Info("trace saved",
				zap.String("path", recordPath),
				zap.Int("events", len(tr.Events)))
		}()
	}

	r = gesture.New(term, binder.Callbacks(), a.recognizerOptions(metrics)...)
	defer r.Destroy()

	if watch {
		w, werr := config.NewWatcher(a.paths, func(f config.File, rerr error) {
			if rerr != nil {
				term.Logf("config reload failed: %v", rerr)
				return
			}
			applyConfig(r, binder, f)
			term.Logf("config reloaded")
		}, config.WithWatchLogger(logger.Named("config")))
		if werr != nil {
			logger.Warn("config watch disabled", zap.Error(werr))
		} else {
			defer w.Close()
		}
	}

	term.SetStatus(status(r, metrics))
	return term.Run(cmd.Context())
}

// applyConfig pushes reloaded configuration into a running recognizer and
// binder. Thresholds removed from the file return to their defaults.
func applyConfig(r *gesture.Recognizer, b *session.Binder, f config.File) {
	cfg := gesture.DefaultConfig().Apply(f.Gesture.Patch())
	r.UpdateConfig(cfg.Patch())

	if bindings, err := bindingsFor(f); err == nil {
		b.SetBindings(bindings)
	}
}

// describe formats a command's gesture for display.
func describe(c session.Command) string {
	switch {
	case c.Kind == gesture.KindPinch:
		return fmt.Sprintf("%s x%.2f", c.Kind, c.Value)
	case c.Kind == gesture.KindRotate:
		return fmt.Sprintf("%s %+.2frad", c.Kind, c.Value)
	case c.Kind.IsSwipe():
		return c.Kind.String()
	default:
		return fmt.Sprintf("%s (%.0f,%.0f)", c.Kind, c.Point.X, c.Point.Y)
	}
}

func status(r *gesture.Recognizer, m *gesture.Metrics) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("mode: %s   contacts: %d   gestures: %d",
		r.Mode(), r.ActiveContacts(), m.Snapshot().TotalGestures())
}
