package logging

// ProgressSampler thins batch progress logs to one record each time
// completion crosses the next multiple of step percent. The first file and
// the last file always log.
type ProgressSampler struct {
	step int
	next int
}

// NewProgressSampler returns a sampler with the given percent step. Values
// outside 1..100 fall back to 10.
func NewProgressSampler(step int) *ProgressSampler {
	if step <= 0 || step > 100 {
		step = 10
	}
	return &ProgressSampler{step: step}
}

// ShouldLog reports whether done of total files is worth a progress record.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if total <= 0 || done <= 0 {
		return false
	}
	done = min(done, total)
	percent := done * 100 / total
	if percent < s.next {
		return false
	}
	s.next = (percent/s.step + 1) * s.step
	return true
}
