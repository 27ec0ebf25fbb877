package engine

import "sync"

// PeriodLocks serializes engine runs per academic period. The destructive
// clear-then-rebuild makes concurrent runs for the same period unsafe;
// different periods proceed independently. The generator and rescheduler
// share one instance so an edit cannot interleave with a rebuild.
type PeriodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPeriodLocks() *PeriodLocks {
	return &PeriodLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire blocks until the period lock is held and returns its release
// function.
func (p *PeriodLocks) Acquire(periodID string) func() {
	p.mu.Lock()
	lock, ok := p.locks[periodID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[periodID] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
