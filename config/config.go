// Package config loads backend configuration files.
//
// TOML (.toml) and YAML (.yaml, .yml) are accepted:
//
//	flush_to_zero = true
//	mode = "check-only"
//	args = ["--flush-to-zero"]
//
// Keys that are absent keep their defaults.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/errors"
)

const (
	ModeCompute   = "compute"
	ModeCheckOnly = "check-only"
)

// File is the content of a configuration file.
type File struct {
	Config checkdenormal.Config

	// Mode names the dispatch table a host should build; empty means the
	// compile-time default.
	Mode string

	// Args are passed to the backend's textual configuration.
	Args []string
}

type rawFile struct {
	FlushToZero *bool    `toml:"flush_to_zero" yaml:"flush_to_zero"`
	Mode        string   `toml:"mode" yaml:"mode"`
	Args        []string `toml:"args" yaml:"args"`
}

// Load reads path, choosing the decoder from its extension.
func Load(path string) (File, error) {
	var raw rawFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return File{}, errors.Wrap(errors.PhaseConfigure, errors.KindInvalidInput, err, "parse "+path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return File{}, errors.New(errors.PhaseConfigure, errors.KindInvalidInput).
				Option(undecoded[0].String()).
				Detail("unknown key in %s", path).
				Build()
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return File{}, errors.Wrap(errors.PhaseConfigure, errors.KindNotFound, err, "read "+path)
		}
		if err := decodeYAML(data, &raw); err != nil {
			return File{}, errors.Wrap(errors.PhaseConfigure, errors.KindInvalidInput, err, "parse "+path)
		}
	default:
		return File{}, errors.InvalidInput(errors.PhaseConfigure, "unsupported config format: "+path)
	}

	return fromRaw(raw)
}

func decodeYAML(data []byte, out *rawFile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func fromRaw(raw rawFile) (File, error) {
	var f File
	if raw.FlushToZero != nil {
		f.Config.FlushToZero = *raw.FlushToZero
	}

	switch m := strings.TrimSpace(raw.Mode); m {
	case "", ModeCompute, ModeCheckOnly:
		f.Mode = m
	default:
		return File{}, errors.New(errors.PhaseConfigure, errors.KindInvalidInput).
			Value(raw.Mode).
			Detail("mode must be %q or %q", ModeCompute, ModeCheckOnly).
			Build()
	}

	f.Args = raw.Args
	return f, nil
}
