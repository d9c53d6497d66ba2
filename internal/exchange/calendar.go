package exchange

import (
	"bytes"
	"errors"
	"strings"

	ical "github.com/arran4/golang-ical"

	"eventsort/internal/interval"
)

// parseCalendar turns every VEVENT into an EventRecord. Timed events keep
// their wall-clock reading in the zone they were written in. All-day events
// end at the last second of the day before DTEND, which is exclusive.
func parseCalendar(body []byte) (Bundle, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Bundle{}, errors.New("empty calendar")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return Bundle{}, err
	}

	var bundle Bundle
	for _, ve := range cal.Events() {
		record, ok := eventRecord(ve)
		if !ok {
			continue
		}
		bundle.Events = append(bundle.Events, record)
	}
	return bundle, nil
}

func eventRecord(ve *ical.VEvent) (EventRecord, bool) {
	var record EventRecord
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		record.Title = strings.TrimSpace(p.Value)
	}

	if allDay(ve) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			return record, false
		}
		end, err := ve.GetAllDayEndAt()
		if err != nil || !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
		start = interval.Naive(start)
		record.Start = interval.Format(start)
		record.End = interval.Format(interval.EndOfDay(interval.Naive(end).AddDate(0, 0, -1)))
		return record, true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return record, false
	}
	end, err := ve.GetEndAt()
	if err != nil {
		end = start
	}
	record.Start = interval.Format(interval.Naive(start))
	record.End = interval.Format(interval.Naive(end))
	return record, true
}

func allDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if values, ok := prop.ICalParameters["VALUE"]; ok && len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}
