package book2pdf

import (
	"runtime"
	"testing"
)

func TestResolveWorkersExplicit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit value wins", workers: 3, want: 3},
		{name: "explicit above cap is honored", workers: 16, want: 16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolveWorkersAuto(t *testing.T) {
	t.Parallel()

	got := ResolveWorkers(0)

	if got < MinWorkers || got > MaxWorkers {
		t.Fatalf("ResolveWorkers(0) = %d, want within [%d, %d]", got, MinWorkers, MaxWorkers)
	}

	expected := runtime.GOMAXPROCS(0) / cpuDivisor
	if expected < MinWorkers {
		expected = MinWorkers
	}
	if expected > MaxWorkers {
		expected = MaxWorkers
	}
	if got != expected {
		t.Errorf("ResolveWorkers(0) = %d, want %d", got, expected)
	}
}
