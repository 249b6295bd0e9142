// Package schedule provides one-shot and repeating delayed callback dispatch.
// Handles are grouped by their owning session so a terminal transition can
// cancel them all in one pass. The scheduler holds no domain knowledge.
package schedule

import (
	"sync"
	"time"
)

// Handle identifies one scheduled callback. The zero Handle is never issued
// and cancelling it is a no-op.
type Handle uint64

type entry struct {
	stop func()
}

// Scheduler dispatches delayed callbacks. Callbacks always run on their own
// goroutine, never inline with the scheduling call, including when the delay
// is zero or negative.
type Scheduler struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]*entry
	stopped bool
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{entries: make(map[Handle]*entry)}
}

// After schedules fn to run once after d. Already-due delays (zero or
// negative) still fire exactly once, asynchronously.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return 0
	}

	s.next++
	h := s.next
	e := &entry{}
	// Register before arming the timer: a zero delay can fire before After
	// returns, and the claim below must find the entry.
	s.entries[h] = e
	timer := time.AfterFunc(d, func() {
		if s.claim(h) {
			fn()
		}
	})
	e.stop = func() { timer.Stop() }
	return h
}

// Every schedules fn to run on every tick of period until cancelled.
func (s *Scheduler) Every(period time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return 0
	}

	s.next++
	h := s.next
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	s.entries[h] = &entry{stop: func() {
		ticker.Stop()
		close(done)
	}}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick racing a cancel must not dispatch into a
				// cancelled owner.
				if s.alive(h) {
					fn()
				}
			}
		}
	}()
	return h
}

// Cancel stops the callback bound to h. Cancelling an already-fired one-shot
// or an unknown handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	s.mu.Lock()
	e, ok := s.entries[h]
	if ok {
		delete(s.entries, h)
	}
	s.mu.Unlock()

	if ok && e.stop != nil {
		e.stop()
	}
}

// CancelAll cancels every handle in hs.
func (s *Scheduler) CancelAll(hs []Handle) {
	for _, h := range hs {
		s.Cancel(h)
	}
}

// Stop cancels everything and refuses further scheduling.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	entries := make([]*entry, 0, len(s.entries))
	for h, e := range s.entries {
		entries = append(entries, e)
		delete(s.entries, h)
	}
	s.mu.Unlock()

	for _, e := range entries {
		if e.stop != nil {
			e.stop()
		}
	}
}

// claim removes h if it is still live, returning whether the caller may run
// the one-shot callback. This is what makes fire-after-cancel impossible.
func (s *Scheduler) claim(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[h]; !ok {
		return false
	}
	delete(s.entries, h)
	return true
}

func (s *Scheduler) alive(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[h]
	return ok
}
