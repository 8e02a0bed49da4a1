package source

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/weekplan/pkg/calendar"
	"github.com/matzehuels/weekplan/pkg/errors"
)

// Format is an event file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical":
		return FormatICS, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported event file %s (want .json, .yaml or .ics)", filepath.Base(path))
}

// Load reads events from path. Events from .ics files are tagged with src;
// JSON and YAML events carry their own source.
func Load(path string, src calendar.Source) ([]calendar.Event, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "event file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Read(bytes.NewReader(data), format, src)
}

// Read decodes events in format from r.
func Read(r io.Reader, format Format, src calendar.Source) ([]calendar.Event, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatICS:
		return ReadICS(r, src)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown event format %q", format)
}

type envelope struct {
	Events []calendar.Event `json:"events" yaml:"events"`
}

// ReadJSON decodes an event array or an {"events": [...]} object.
func ReadJSON(r io.Reader) ([]calendar.Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read events")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var events []calendar.Event
		if err := json.Unmarshal(data, &events); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode event list")
		}
		return events, nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode events")
	}
	return env.Events, nil
}

// ReadYAML decodes an event sequence or a mapping with an events key.
func ReadYAML(r io.Reader) ([]calendar.Event, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode events")
	}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.SequenceNode {
		var events []calendar.Event
		if err := root.Decode(&events); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode event list")
		}
		return events, nil
	}
	var env envelope
	if err := root.Decode(&env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode events")
	}
	return env.Events, nil
}
