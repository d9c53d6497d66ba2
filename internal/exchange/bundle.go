package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"eventsort/internal/catalog"
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("unsupported exchange format")

// Bundle is a portable set of catalog records.
type Bundle struct {
	Persons []string       `json:"persons,omitempty" yaml:"persons,omitempty"`
	Events  []EventRecord  `json:"events,omitempty" yaml:"events,omitempty"`
	Artists []ArtistRecord `json:"artists,omitempty" yaml:"artists,omitempty"`
}

// EventRecord is one event and its children. Start and End accept any form
// interval.ParseRange does; a bare end date means the end of that day.
type EventRecord struct {
	Title        string              `json:"title" yaml:"title"`
	Start        string              `json:"start" yaml:"start"`
	End          string              `json:"end" yaml:"end"`
	Subevents    []SubeventRecord    `json:"subevents,omitempty" yaml:"subevents,omitempty"`
	Participants []ParticipantRecord `json:"participants,omitempty" yaml:"participants,omitempty"`
}

type SubeventRecord struct {
	Title string `json:"title" yaml:"title"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type ParticipantRecord struct {
	Person string `json:"person" yaml:"person"`
	Start  string `json:"start" yaml:"start"`
	End    string `json:"end" yaml:"end"`
}

// ArtistRecord binds a device to a person over a window.
type ArtistRecord struct {
	Person string            `json:"person" yaml:"person"`
	Make   string            `json:"make" yaml:"make"`
	Model  string            `json:"model" yaml:"model"`
	Start  string            `json:"start" yaml:"start"`
	End    string            `json:"end" yaml:"end"`
	Shift  catalog.TimeShift `json:"shift,omitzero" yaml:"shift,omitempty"`
}

// Len returns the number of top-level and nested records.
func (b Bundle) Len() int {
	n := len(b.Persons) + len(b.Events) + len(b.Artists)
	for _, ev := range b.Events {
		n += len(ev.Subevents) + len(ev.Participants)
	}
	return n
}

// Format names the codec selected by a file extension.
func Format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".ics", ".ical":
		return "ics", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads a bundle from path, choosing the codec by extension.
func Load(path string) (Bundle, error) {
	format, err := Format(path)
	if err != nil {
		return Bundle{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}

	var bundle Bundle
	switch format {
	case "json":
		err = json.Unmarshal(data, &bundle)
	case "yaml":
		err = yaml.Unmarshal(data, &bundle)
	case "ics":
		bundle, err = parseCalendar(data)
	}
	if err != nil {
		return Bundle{}, fmt.Errorf("parse %s bundle: %w", format, err)
	}
	return bundle, nil
}

// Save writes bundle to path as JSON or YAML. Calendar output is not
// supported.
func Save(path string, bundle Bundle) error {
	format, err := Format(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(bundle, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(bundle)
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode %s bundle: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create bundle directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}
