package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/breathe/internal/config"
	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/observability"
	"github.com/dshills/breathe/internal/session"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPaths []string
	logLevel    string
	scriptPath  string

	cfg    config.File
	paths  []string
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Touch gesture lab for breathing-session controls",
		Long: `breathe recognizes touch gestures (tap, double tap, long press, swipes,
pinch and rotate) and maps them to breathing-session commands.

Use "breathe lab" to try gestures with the mouse in a terminal, and
"breathe replay" to run a recorded trace through the recognizer.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync(a.logger)
		},
	}
	cmd.SetVersionTemplate(`{{printf "breathe %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringSliceVarP(&a.configPaths, "config", "c", nil, "config file(s), TOML or YAML, later files override earlier ones")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.scriptPath, "script", "", "Lua script defining on_gesture")

	cmd.AddCommand(newLabCmd(a), newReplayCmd(a), newVersionCmd())
	return cmd
}

// defaultConfigPaths lists the files read when --config is not given.
func defaultConfigPaths() []string {
	paths := []string{"breathe.toml", "breathe.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "breathe", "config.toml"))
	}
	return paths
}

func (a *app) loadConfig() error {
	a.paths = a.configPaths
	if len(a.paths) == 0 {
		a.paths = defaultConfigPaths()
	}

	cfg, err := config.Load(a.paths...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.scriptPath != "" {
		cfg.Script = a.scriptPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// initLogger builds the logger. console may be nil when the terminal is in
// use by the lab.
func (a *app) initLogger(console zapcore.WriteSyncer) error {
	logger, err := observability.NewLogger(a.cfg.Logging, console)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// bindingsFor returns the default bindings with the configured overrides.
func bindingsFor(cfg config.File) (session.Bindings, error) {
	kinds, err := cfg.BindingKinds()
	if err != nil {
		return nil, err
	}
	return session.DefaultBindings().With(kinds), nil
}

// loadScript loads the configured script, if any.
func (a *app) loadScript() (*session.Script, error) {
	if a.cfg.Script == "" {
		return nil, nil
	}
	return session.LoadScript(a.cfg.Script, session.WithScriptLogger(a.logger))
}

// recognizerOptions returns the options shared by every recognizer the
// commands build.
func (a *app) recognizerOptions(m *gesture.Metrics) []gesture.Option {
	return []gesture.Option{
		gesture.WithConfig(a.cfg.Gesture.Patch()),
		gesture.WithLogger(a.logger.Named("gesture")),
		gesture.WithMetrics(m),
	}
}
