package router

import "sync/atomic"

// Progress is the batch counter shared between the worker, which writes,
// and pollers, which only read.
type Progress struct {
	current  atomic.Int64
	total    atomic.Int64
	finished atomic.Bool
}

// ProgressSnapshot is a point-in-time copy of Progress.
type ProgressSnapshot struct {
	Current  int
	Total    int
	Finished bool
}

// Percent returns completion in [0, 100].
func (s ProgressSnapshot) Percent() float64 {
	if s.Total <= 0 {
		if s.Finished {
			return 100
		}
		return 0
	}
	return float64(s.Current) / float64(s.Total) * 100
}

// Snapshot reads the counters.
func (p *Progress) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Current:  int(p.current.Load()),
		Total:    int(p.total.Load()),
		Finished: p.finished.Load(),
	}
}

func (p *Progress) start(total int) {
	p.total.Store(int64(total))
}

func (p *Progress) advance() int {
	return int(p.current.Add(1))
}

func (p *Progress) finish() {
	p.finished.Store(true)
}
