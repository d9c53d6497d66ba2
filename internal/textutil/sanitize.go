package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is NFC-normalized and trimmed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(norm.NFC.String(name)))
}

// SanitizeFolderName turns an event title into a directory name component.
// Runs of whitespace collapse to one space and trailing dots are dropped.
// Returns fallback when nothing usable remains.
func SanitizeFolderName(title, fallback string) string {
	cleaned := SanitizeFileName(strings.Join(strings.Fields(title), " "))
	cleaned = strings.TrimRight(cleaned, ". ")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// DisplayName title-cases a person name after folding whitespace.
func DisplayName(name string) string {
	folded := strings.Join(strings.Fields(name), " ")
	if folded == "" {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(folded)
}
