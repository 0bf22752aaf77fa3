// internal/status/snapshot.go
package status

import "time"

// Snapshot is the scheduler-owned view of the current status.
// It carries no logic beyond what Tracker puts in it.
type Snapshot struct {
	Code  Code
	Since time.Time

	// ConsecutiveFaults counts ticks in a row that ended in Error or Offline.
	ConsecutiveFaults int
}

// Tracker folds tick outcomes into a Snapshot.
// Not safe for concurrent use; the scheduler goroutine owns it.
type Tracker struct {
	snap Snapshot
}

// Observe records the outcome of one tick.
// It reports the previous code and whether the code changed.
func (t *Tracker) Observe(c Code, at time.Time) (prev Code, changed bool) {
	prev = t.snap.Code

	if c == Online {
		t.snap.ConsecutiveFaults = 0
	} else {
		t.snap.ConsecutiveFaults++
	}

	if prev != c {
		t.snap.Code = c
		t.snap.Since = at
		return prev, true
	}
	return prev, false
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}
