package interval

import (
	"fmt"
	"time"
)

// OverlapKind classifies how a candidate interval relates to an existing one.
type OverlapKind string

const (
	None         OverlapKind = "NONE"
	OverlapStart OverlapKind = "OVERLAP_START"
	OverlapEnd   OverlapKind = "OVERLAP_END"
	OverlapBoth  OverlapKind = "OVERLAP_BOTH"
	Swapped      OverlapKind = "SWAPPED"
)

// OutsideKind classifies how a child interval escapes its parent.
type OutsideKind string

const (
	Inside       OutsideKind = "NONE"
	OutsideStart OutsideKind = "OUTSIDE_START"
	OutsideEnd   OutsideKind = "OUTSIDE_END"
	OutsideBoth  OutsideKind = "OUTSIDE_BOTH"
)

// Interval is a closed range of naive wall-clock instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval without reordering its bounds.
func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Swapped reports whether the interval ends before it starts.
func (iv Interval) Swapped() bool {
	return ClassifySwap(iv.Start, iv.End) == Swapped
}

// Contains reports whether t lies within the interval, inclusive at both ends.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Overlap classifies candidate against iv as the existing interval.
func (iv Interval) Overlap(candidate Interval) OverlapKind {
	return ClassifyOverlap(iv.Start, iv.End, candidate.Start, candidate.End)
}

// Outside classifies child against iv as the parent interval.
func (iv Interval) Outside(child Interval) OutsideKind {
	return ClassifyOutside(iv.Start, iv.End, child.Start, child.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s]", Format(iv.Start), Format(iv.End))
}

// ClassifyOverlap returns the first matching relation in priority order:
// candidate start inside [existing start, existing end), candidate end
// inside (existing start, existing end], candidate covering existing,
// candidate reversed. A covering candidate skips the first two rules so
// that it always reports OverlapBoth. Intervals that only touch at a bound
// do not conflict, but a zero-length interval on either bound does.
func ClassifyOverlap(existingStart, existingEnd, candidateStart, candidateEnd time.Time) OverlapKind {
	covers := !existingStart.Before(candidateStart) && !candidateEnd.Before(existingEnd)
	switch {
	case !covers && !candidateStart.Before(existingStart) && candidateStart.Before(existingEnd):
		return OverlapStart
	case !covers && existingStart.Before(candidateEnd) && !existingEnd.Before(candidateEnd):
		return OverlapEnd
	case covers:
		return OverlapBoth
	case candidateEnd.Before(candidateStart):
		return Swapped
	default:
		return None
	}
}

// ClassifySwap reports Swapped when end precedes start.
func ClassifySwap(start, end time.Time) OverlapKind {
	if end.Before(start) {
		return Swapped
	}
	return None
}

// ClassifyOutside reports which bounds of the child fall outside the parent.
func ClassifyOutside(parentStart, parentEnd, childStart, childEnd time.Time) OutsideKind {
	early := childStart.Before(parentStart)
	late := childEnd.After(parentEnd)
	switch {
	case early && late:
		return OutsideBoth
	case early:
		return OutsideStart
	case late:
		return OutsideEnd
	default:
		return Inside
	}
}
