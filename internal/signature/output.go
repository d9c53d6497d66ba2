package signature

import (
	"fmt"
	"path/filepath"
	"time"
)

// Output describes a canonical destination filename form.
type Output struct {
	Name string
	// Recognizer names the recognizer that reads this form back.
	Recognizer string
	// Numbered outputs embed a per-directory counter instead of the time of day.
	Numbered bool
	// Keep leaves the original filename untouched.
	Keep   bool
	layout string
}

var outputs = []Output{
	{Name: "dashed", Recognizer: "dashed", layout: "2006-01-02_15-04-05"},
	{Name: "dashed_ms", Recognizer: "dashed_ms", layout: "2006-01-02_15-04-05.000"},
	{Name: "compact", Recognizer: "compact", layout: "20060102_150405"},
	{Name: "img", Recognizer: "img", layout: "IMG_20060102_150405"},
	{Name: "verbose", Recognizer: "verbose", layout: "Monday 02 January 2006 15.04.05"},
	{Name: "numbered", Recognizer: "numbered", Numbered: true, layout: "20060102"},
	{Name: "original", Keep: true},
}

// LookupOutput returns the output signature registered under name.
func LookupOutput(name string) (Output, bool) {
	for _, out := range outputs {
		if out.Name == name {
			return out, true
		}
	}
	return Output{}, false
}

// OutputNames lists the supported output signatures in declaration order.
func OutputNames() []string {
	names := make([]string, 0, len(outputs))
	for _, out := range outputs {
		names = append(names, out.Name)
	}
	return names
}

// Render builds the destination base name (without extension) for t. For
// numbered outputs, count is the number of files already in the destination
// directory; original is returned unchanged for the "original" form.
func (o Output) Render(t time.Time, count int, original string) string {
	switch {
	case o.Keep:
		base := filepath.Base(original)
		return base[:len(base)-len(filepath.Ext(base))]
	case o.Numbered:
		return fmt.Sprintf("%s_%04d", t.Format(o.layout), count)
	default:
		return t.Format(o.layout)
	}
}

// FileName renders the base name and appends ext.
func (o Output) FileName(t time.Time, count int, original, ext string) string {
	return o.Render(t, count, original) + ext
}
