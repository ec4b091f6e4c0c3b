package testutil

import (
	"sync"
	"time"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StepClock returns a clock that advances by step on every call, starting at
// start+step, and a function reporting how many times it was read.
func StepClock(start time.Time, step time.Duration) (now func() time.Time, reads func() int) {
	var (
		mu    sync.Mutex
		calls int
	)
	now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return start.Add(time.Duration(calls) * step)
	}
	reads = func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}
	return now, reads
}
