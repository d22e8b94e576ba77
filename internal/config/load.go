package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode reads a configuration document from r.
func Decode(r io.Reader, format Format) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("reading config: %w", err)
	}
	return parse("<reader>", format, data)
}

// LoadFile reads one configuration file. A missing file yields an empty File
// and no error.
func LoadFile(path string) (File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, format, data)
}

// Load builds the effective configuration: defaults, then each file in
// order, then BREATHE_* environment variables.
func Load(paths ...string) (File, error) {
	f := Default()
	for _, path := range paths {
		layer, err := LoadFile(path)
		if err != nil {
			return File{}, err
		}
		f = f.Merge(layer)
	}

	layer, err := LoadEnv()
	if err != nil {
		return File{}, err
	}
	f = f.Merge(layer)

	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func parse(source string, format Format, data []byte) (File, error) {
	var f File
	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
		if err == io.EOF {
			err = nil
		}
	default:
		return File{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return File{}, &ParseError{Path: source, Format: format, Err: err}
	}
	return f, nil
}
