package service

import "sync"

// carLocks serializes booking lifecycle operations per car. The availability
// read and the subsequent writes are not atomic against the store, so every
// operation that reads car status and then mutates it must hold the car's
// lock for its full duration.
type carLocks struct {
	mu    sync.Mutex
	locks map[int32]*sync.Mutex
}

func newCarLocks() *carLocks {
	return &carLocks{locks: make(map[int32]*sync.Mutex)}
}

// Lock acquires the mutex for carID, creating it on first use, and returns
// the unlock function. Locks are never evicted; the fleet is small and ids
// are dense.
func (c *carLocks) Lock(carID int32) func() {
	c.mu.Lock()
	l, ok := c.locks[carID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[carID] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}
