package signature

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Recognizer pairs a filename pattern with the layout used to parse the
// captured text. The first capture group holds the date text.
type Recognizer struct {
	Name    string
	Pattern *regexp.Regexp
	Layout  string
}

// Result is the outcome of recognizing one filename.
type Result struct {
	// Original is the filename exactly as supplied.
	Original string
	// Stripped is the extension-less base name after decoration removal.
	Stripped   string
	Recognized bool
	Time       time.Time
	Signature  string
}

// Unparsed reports whether no recognizer accepted the name.
func (r Result) Unparsed() bool {
	return !r.Recognized
}

const weekdays = `(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)`

// recognizers are tested in order. Longer forms precede their prefixes.
var recognizers = []Recognizer{
	{Name: "dashed_ms", Pattern: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}\.\d{3})`), Layout: "2006-01-02_15-04-05.000"},
	{Name: "dashed", Pattern: regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2})`), Layout: "2006-01-02_15-04-05"},
	{Name: "img", Pattern: regexp.MustCompile(`^IMG_(\d{8}_\d{6})`), Layout: "20060102_150405"},
	{Name: "mvi", Pattern: regexp.MustCompile(`^MVI_(\d{8}_\d{6})`), Layout: "20060102_150405"},
	{Name: "vid", Pattern: regexp.MustCompile(`^VID_(\d{8}_\d{6})`), Layout: "20060102_150405"},
	{Name: "pxl", Pattern: regexp.MustCompile(`^PXL_(\d{8}_\d{6})`), Layout: "20060102_150405"},
	{Name: "screenshot", Pattern: regexp.MustCompile(`^Screenshot_(\d{8}-\d{6})`), Layout: "20060102-150405"},
	{Name: "whatsapp", Pattern: regexp.MustCompile(`^(?:IMG|VID)-(\d{8})-WA\d+`), Layout: "20060102"},
	{Name: "compact", Pattern: regexp.MustCompile(`^(\d{8}_\d{6})(?:\D|$)`), Layout: "20060102_150405"},
	{Name: "verbose", Pattern: regexp.MustCompile(`^(` + weekdays + ` \d{2} [A-Z][a-z]+ \d{4} \d{2}\.\d{2}\.\d{2})`), Layout: "Monday 02 January 2006 15.04.05"},
	{Name: "numbered", Pattern: regexp.MustCompile(`^(\d{8})_\d{4,}$`), Layout: "20060102"},
}

var decorations = []*regexp.Regexp{
	regexp.MustCompile(` - Copy(?: \(\d+\))?$`),
	regexp.MustCompile(` ?\(\d+\)$`),
	regexp.MustCompile(`_\d{1,3}$`),
}

// Recognizers returns the ordered recognizer table.
func Recognizers() []Recognizer {
	out := make([]Recognizer, len(recognizers))
	copy(out, recognizers)
	return out
}

// StripDecoration removes the extension and any duplicate-file suffixes such
// as "_1", " - Copy", or " (2)".
func StripDecoration(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for {
		changed := false
		for _, pattern := range decorations {
			if loc := pattern.FindStringIndex(base); loc != nil && loc[0] > 0 {
				base = base[:loc[0]]
				changed = true
			}
		}
		if !changed {
			return base
		}
	}
}

// Recognize extracts a timestamp from a filename. A name no recognizer
// accepts comes back unparsed with Original preserved.
func Recognize(name string) Result {
	result := Result{Original: filepath.Base(name)}
	result.Stripped = StripDecoration(name)
	for _, rec := range recognizers {
		match := rec.Pattern.FindStringSubmatch(result.Stripped)
		if match == nil {
			continue
		}
		ts, err := time.ParseInLocation(rec.Layout, match[1], time.UTC)
		if err != nil {
			continue
		}
		result.Recognized = true
		result.Time = ts
		result.Signature = rec.Name
		return result
	}
	return result
}

// Lookup returns the recognizer registered under name.
func Lookup(name string) (Recognizer, bool) {
	for _, rec := range recognizers {
		if rec.Name == name {
			return rec, true
		}
	}
	return Recognizer{}, false
}
