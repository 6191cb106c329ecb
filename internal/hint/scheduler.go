package hint

import "time"

// Timer is a pending single-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler creates timers. Tests substitute a manual scheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler schedules with time.AfterFunc.
func RealScheduler() Scheduler {
	return realScheduler{}
}

// timerSlot holds at most one pending timer. Restarting or clearing the
// slot invalidates any callback already in flight.
type timerSlot struct {
	timer Timer
	seq   uint64
}

// clear stops the pending timer. Caller holds the coordinator lock.
func (s *timerSlot) clear() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}

// start replaces the pending timer and returns the token the callback
// must present to run.
func (s *timerSlot) start(sched Scheduler, d time.Duration, fire func(token uint64)) {
	s.clear()
	token := s.seq
	s.timer = sched.AfterFunc(d, func() { fire(token) })
}

// current reports whether token belongs to the pending timer.
func (s *timerSlot) current(token uint64) bool {
	return s.timer != nil && s.seq == token
}
