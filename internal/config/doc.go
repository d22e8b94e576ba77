// Package config loads breathe configuration.
//
// Configuration comes from up to three places, later ones overriding earlier:
//
//	┌─────────────────────────────┐
//	│  3. Environment (BREATHE_*) │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. Config files, in order  │  ← breathe.toml, breathe.yaml, ...
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Files are TOML or YAML, chosen by extension. A missing file is not an
// error. Gesture thresholds are optional fields; anything left unset keeps
// the recognizer's default.
//
//	[gesture]
//	swipe_threshold = 60.0
//	long_press_delay_ms = 800
//
//	[bindings]
//	tap = "session.togglePlay"
//
// Watcher reloads the files when they change on disk so a running recognizer
// can pick up new thresholds with UpdateConfig.
package config
