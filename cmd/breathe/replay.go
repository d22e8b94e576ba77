package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/observability"
	"github.com/dshills/breathe/internal/session"
	"github.com/dshills/breathe/internal/trace"
)

func newReplayCmd(a *app) *cobra.Command {
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "replay <trace.json>",
		Short: "Run a recorded touch trace through the recognizer",
		Long: `replay feeds a trace recorded with "breathe lab --record" to a fresh
recognizer on a virtual clock and prints each gesture with the command it maps
to. The current configuration applies, so a trace can be replayed against new
thresholds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initLogger(observability.Writer(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return runReplay(cmd, a, args[0], showMetrics)
		},
	}
	cmd.Flags().BoolVarP(&showMetrics, "metrics", "m", false, "print recognizer counters after the gestures")
	return cmd
}

func runReplay(cmd *cobra.Command, a *app, path string, showMetrics bool) error {
	tr, err := trace.LoadFile(path)
	if err != nil {
		return err
	}
	bindings, err := bindingsFor(a.cfg)
	if err != nil {
		return err
	}
	script, err := a.loadScript()
	if err != nil {
		return err
	}

	var opts []session.BinderOption
	if script != nil {
		defer script.Close()
		opts = append(opts, session.WithScript(script))
	}
	binder := session.NewBinder(nil, bindings, opts...)

	var commands []string
	cb := gesture.CallbacksFunc(func(g gesture.Gesture) {
		name, ok := binder.Resolve(g)
		if !ok {
			name = "-"
		}
		commands = append(commands, name)
	})

	res, err := trace.Replay(cmd.Context(), tr, cb, a.recognizerOptions(gesture.NewMetrics())...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "trace %s  source=%s  events=%d  duration=%v\n",
		tr.ID, orDash(tr.Source), len(tr.Events), tr.Duration())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, g := range res.Gestures {
		fmt.Fprintf(tw, "%8.3fs\t%s\t%s\n", res.At[i].Seconds(), describe(session.Command{
			Kind:  g.Kind,
			Point: g.Point,
			Value: g.Value,
		}), commands[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d gestures\n", len(res.Gestures))

	if showMetrics {
		printMetrics(out, res.Metrics)
	}
	return nil
}

func printMetrics(out io.Writer, m gesture.MetricsSnapshot) {
	kinds := make([]gesture.Kind, 0, len(m.Gestures))
	for k := range m.Gestures {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Fprintln(out, "metrics:")
	for _, p := range gesture.Phases {
		fmt.Fprintf(out, "  events.%s: %d\n", p, m.Events[p])
	}
	for _, k := range kinds {
		fmt.Fprintf(out, "  gestures.%s: %d\n", k, m.Gestures[k])
	}
	fmt.Fprintf(out, "  ambiguous: %d\n", m.Ambiguous)
	fmt.Fprintf(out, "  cancelled: %d\n", m.Cancelled)
	fmt.Fprintf(out, "  long_press_aborted: %d\n", m.LongPressAborted)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
