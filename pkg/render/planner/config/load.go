package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/weekplan/pkg/errors"
)

// Load reads a TOML or YAML file and overlays it on [Default]. Keys missing
// from the file keep their default values. The result is validated.
func Load(path string) (LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return LayoutConfig{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return LayoutConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, FormatYAML)
	case ".toml", "":
		return Parse(data, FormatTOML)
	}
	return LayoutConfig{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Parse decodes data in the given format over [Default] and validates it.
func Parse(data []byte, format Format) (LayoutConfig, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(string(data), &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return LayoutConfig{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return LayoutConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", format)
	}
	if err := cfg.Validate(); err != nil {
		return LayoutConfig{}, err
	}
	return cfg, nil
}

// Encode writes cfg to w in the given format.
func Encode(w io.Writer, cfg LayoutConfig, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
}

// Fingerprint returns a stable TOML rendering of cfg, used in cache keys.
func Fingerprint(cfg LayoutConfig) []byte {
	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(cfg)
	return buf.Bytes()
}
