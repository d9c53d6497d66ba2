package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// consoleTimeLayout stamps console records in local time.
	consoleTimeLayout = "2006-01-02 15:04:05"
	// jsonTimeLayout stamps JSON records in UTC.
	jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"
	// attrTimeLayout renders naive catalog instants carried as attributes.
	attrTimeLayout = "2006-01-02 15:04:05.000"
)

// valueText renders v without quoting. Time attributes hold naive capture
// times, so they are printed with no zone conversion.
func valueText(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		if v.Time().IsZero() {
			return ""
		}
		return v.Time().Format(attrTimeLayout)
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return v.String()
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsFunc(s, needsQuote) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"' || r == utf8.RuneError
}

func joinKey(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

// writePair appends " key=value" for attr, flattening groups into dotted
// keys below group.
func writePair(b *strings.Builder, group string, attr slog.Attr, color bool) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	value := attr.Value.Resolve()
	if value.Kind() == slog.KindGroup {
		for _, member := range value.Group() {
			writePair(b, joinKey(group, attr.Key), member, color)
		}
		return
	}
	key := joinKey(group, attr.Key)
	if key == "" {
		return
	}
	b.WriteByte(' ')
	if color {
		b.WriteString(ansiGray + key + "=" + ansiReset)
	} else {
		b.WriteString(key)
		b.WriteByte('=')
	}
	b.WriteString(quoteIfNeeded(valueText(value)))
}
