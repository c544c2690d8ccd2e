package logging

import "testing"

func TestNewProgressSampler(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 5},
		{"default bucket size for negative", -1, 5},
		{"custom bucket size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSampler_NilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(5, 10) {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSampler_BucketsAndCompletion(t *testing.T) {
	s := NewProgressSampler(25)
	var logged []int
	for done := 0; done <= 100; done++ {
		if s.ShouldLog(done, 100) {
			logged = append(logged, done)
		}
	}
	want := []int{0, 25, 50, 75, 100}
	if len(logged) != len(want) {
		t.Fatalf("logged = %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged = %v, want %v", logged, want)
		}
	}
	if s.ShouldLog(100, 100) {
		t.Error("completion should only log once")
	}
}

func TestProgressSampler_ZeroTotal(t *testing.T) {
	s := NewProgressSampler(5)
	if s.ShouldLog(0, 0) {
		t.Error("zero total should not log")
	}
}

func TestProgressSampler_Reset(t *testing.T) {
	s := NewProgressSampler(50)
	s.ShouldLog(3, 4)
	if s.ShouldLog(3, 4) {
		t.Error("same bucket should not log again")
	}
	s.Reset()
	if !s.ShouldLog(3, 4) {
		t.Error("expected log after reset")
	}
}
