package catalog

import (
	"fmt"
	"time"

	"eventsort/internal/interval"
)

// Person is a named individual referenced by participants and artists.
type Person struct {
	ID   int64
	Name string
}

// Event is a time-boxed record media files are bound to.
type Event struct {
	ID       int64
	Title    string
	Interval interval.Interval
}

// Subevent is a titled slot nested inside an event.
type Subevent struct {
	ID       int64
	EventID  int64
	Title    string
	Interval interval.Interval
}

// Participant records a person attending an event for an interval.
type Participant struct {
	ID         int64
	EventID    int64
	PersonID   int64
	PersonName string
	Interval   interval.Interval
}

// TimeShift is a signed correction applied to timestamps from one device.
type TimeShift struct {
	Days    int `json:"days" yaml:"days"`
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

// Duration converts the shift to a time.Duration.
func (s TimeShift) Duration() time.Duration {
	return time.Duration(s.Days)*24*time.Hour +
		time.Duration(s.Hours)*time.Hour +
		time.Duration(s.Minutes)*time.Minute +
		time.Duration(s.Seconds)*time.Second
}

// Apply shifts t by the configured offset.
func (s TimeShift) Apply(t time.Time) time.Time {
	return t.Add(s.Duration())
}

// IsZero reports whether the shift leaves timestamps unchanged.
func (s TimeShift) IsZero() bool {
	return s.Duration() == 0
}

func (s TimeShift) String() string {
	return fmt.Sprintf("%+dd%+dh%+dm%+ds", s.Days, s.Hours, s.Minutes, s.Seconds)
}

// Artist attributes media from one device to a person over an interval.
type Artist struct {
	ID         int64
	PersonID   int64
	PersonName string
	Make       string
	Model      string
	Interval   interval.Interval
	Shift      TimeShift
}
