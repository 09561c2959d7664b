package book2pdf

import "runtime"

// Worker pool sizing constants.
const (
	// MinWorkers ensures at least one chapter task can run.
	MinWorkers = 1

	// MaxWorkers caps concurrent chapter tasks; each task may shell out
	// to the dimension probe once per image.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for probe subprocesses.
	cpuDivisor = 2
)

// ResolveWorkers determines the chapter preprocessing concurrency.
// Priority: explicit value > GOMAXPROCS-based calculation.
func ResolveWorkers(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in
	// container environments)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
