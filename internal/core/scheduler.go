package core

import (
	"container/heap"
	"time"
)

// TimerID identifies a pending timer or frame callback. The zero value never
// refers to a live entry, so it doubles as "nothing scheduled".
type TimerID uint64

// Scheduler is a virtual clock owned by a single effect. Nothing fires on its
// own: the host calls Advance once per frame and every due callback runs
// synchronously on the caller's goroutine.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers timerHeap
	byID   map[TimerID]*timer
	frames []*frameCall
	// running holds the frame batch being executed by Advance.
	running []*frameCall
}

type timer struct {
	id     TimerID
	due    time.Duration
	period time.Duration
	fn     func()
	index  int
}

type frameCall struct {
	id        TimerID
	fn        func()
	cancelled bool
}

// minPeriod keeps a zero-period interval from spinning inside one Advance.
const minPeriod = time.Millisecond

// NewScheduler returns an idle scheduler positioned at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[TimerID]*timer)}
}

// Now reports the virtual time reached by the last Advance.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending reports how many timers and frame callbacks are still armed.
func (s *Scheduler) Pending() int { return len(s.timers) + len(s.frames) }

// After runs fn once, d after the current virtual time.
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	return s.add(d, 0, fn)
}

// Every runs fn after delay and then every period until cancelled.
func (s *Scheduler) Every(delay, period time.Duration, fn func()) TimerID {
	if period < minPeriod {
		period = minPeriod
	}
	return s.add(delay, period, fn)
}

// Frame runs fn once during the next Advance, after that call's timers.
func (s *Scheduler) Frame(fn func()) TimerID {
	s.nextID++
	s.frames = append(s.frames, &frameCall{id: s.nextID, fn: fn})
	return s.nextID
}

// Cancel disarms the timer or frame callback with the given id. It reports
// whether anything was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	if id == 0 {
		return false
	}
	if t, ok := s.byID[id]; ok {
		heap.Remove(&s.timers, t.index)
		delete(s.byID, id)
		return true
	}
	for i, f := range s.frames {
		if f.id == id {
			f.cancelled = true
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return true
		}
	}
	for _, f := range s.running {
		if f.id == id && !f.cancelled {
			f.cancelled = true
			return true
		}
	}
	return false
}

// Stop cancels everything.
func (s *Scheduler) Stop() {
	for _, f := range s.frames {
		f.cancelled = true
	}
	for _, f := range s.running {
		f.cancelled = true
	}
	s.frames = nil
	s.timers = s.timers[:0]
	s.byID = make(map[TimerID]*timer)
}

// Advance moves the clock forward by dt. Due timers fire in due-time order,
// ties broken by creation order; timers armed by a callback fire in the same
// call when they fall due before the new time. Frame callbacks queued before
// the frame phase run last, once each.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for len(s.timers) > 0 && s.timers[0].due <= target {
		t := s.timers[0]
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
			heap.Fix(&s.timers, 0)
		} else {
			heap.Pop(&s.timers)
			delete(s.byID, t.id)
		}
		t.fn()
	}
	s.now = target

	s.running = s.frames
	s.frames = nil
	for _, f := range s.running {
		if f.cancelled {
			continue
		}
		f.cancelled = true
		f.fn()
	}
	s.running = nil
}

func (s *Scheduler) add(delay, period time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	t := &timer{id: s.nextID, due: s.now + delay, period: period, fn: fn}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].id < h[j].id
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
