package logging

import "testing"

func TestNewProgressSamplerStep(t *testing.T) {
	for _, tc := range []struct{ step, want int }{{0, 10}, {-5, 10}, {101, 10}, {25, 25}} {
		if got := NewProgressSampler(tc.step).step; got != tc.want {
			t.Errorf("NewProgressSampler(%d).step = %d, want %d", tc.step, got, tc.want)
		}
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	var logged []int
	for done := 1; done <= 40; done++ {
		if s.ShouldLog(done, 40) {
			logged = append(logged, done)
		}
	}
	want := []int{1, 4, 8, 12, 16, 20, 24, 28, 32, 36, 40}
	if len(logged) != len(want) {
		t.Fatalf("logged %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged %v, want %v", logged, want)
		}
	}
	if s.ShouldLog(41, 40) {
		t.Error("overshoot after completion should not log again")
	}
}

func TestProgressSamplerSmallBatchLogsEveryFile(t *testing.T) {
	s := NewProgressSampler(10)
	for done := 1; done <= 3; done++ {
		if !s.ShouldLog(done, 3) {
			t.Fatalf("file %d of 3 should log", done)
		}
	}
}

func TestProgressSamplerIgnoresEmptyBatch(t *testing.T) {
	s := NewProgressSampler(10)
	if s.ShouldLog(0, 0) || s.ShouldLog(0, 10) {
		t.Error("nothing to report before the first file")
	}
}
