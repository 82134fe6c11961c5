package lock

import (
	"sync"

	"github.com/apex/log"
)

// IdLocker hands out one mutex per key. Locking one key never blocks callers
// working on a different key. Mutexes are never evicted, so the map grows by
// one entry per distinct key for the life of the locker.
type IdLocker[K comparable] struct {
	mapMutex sync.Mutex
	idMap    map[K]*sync.Mutex
}

func NewIdLocker[K comparable]() *IdLocker[K] {
	return &IdLocker[K]{
		idMap: make(map[K]*sync.Mutex),
	}
}

func (l *IdLocker[K]) AcquireLock(id K) {
	l.mapMutex.Lock()
	idMutex, ok := l.idMap[id]
	if !ok {
		idMutex = &sync.Mutex{}
		l.idMap[id] = idMutex
	}
	l.mapMutex.Unlock()

	idMutex.Lock()
}

func (l *IdLocker[K]) ReleaseLock(id K) {
	l.mapMutex.Lock()
	m, ok := l.idMap[id]
	l.mapMutex.Unlock()

	if !ok {
		log.Errorf("ReleaseLock called on id (%v) with no mutex", id)
		return
	}

	m.Unlock()
}

func (l *IdLocker[K]) WithLock(id K, f func() error) error {
	l.AcquireLock(id)
	defer l.ReleaseLock(id)
	return f()
}
