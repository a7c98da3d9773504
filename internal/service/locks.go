package service

import (
	"sort"
	"sync"
)

// dateLocks hands out one mutex per class date so a conflict check and the
// write that follows run as a single critical section for that day. Without
// it two concurrent creates could both pass the check against the same
// stale snapshot and both land.
//
// The map keeps one entry per distinct date ever locked and is never swept.
// Entries cannot be dropped while another goroutine may still hold a pointer
// into the map, and a single teacher's calendar stays in the hundreds of
// dates per year, so the map is left to grow.
type dateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[string]*sync.Mutex)}
}

func (d *dateLocks) get(date string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	m, ok := d.locks[date]
	if !ok {
		m = &sync.Mutex{}
		d.locks[date] = m
	}
	return m
}

// lock acquires the mutexes for the given dates in sorted order (deduped, so
// an in-place edit locks its date once) and returns the matching unlock.
// Sorted acquisition keeps two cross-date edits from deadlocking each other.
func (d *dateLocks) lock(dates ...string) func() {
	uniq := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		if !seen[date] {
			seen[date] = true
			uniq = append(uniq, date)
		}
	}
	sort.Strings(uniq)

	held := make([]*sync.Mutex, 0, len(uniq))
	for _, date := range uniq {
		m := d.get(date)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
