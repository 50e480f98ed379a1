package testkit

import (
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap points a package level seam at replacement until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	prev := *target
	*target = replacement
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock for the rest of the test
// use it in tests that Swap seams other tests in the package also touch
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
