package dialog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	lockerCleanupInterval = 10 * time.Minute
	lockerStaleThreshold  = 10 * time.Minute
)

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// userLocker serializes dialogue turns per user: two callbacks from the
// same chat must not interleave reads/writes of that user's session.
// Different users proceed concurrently. Stale entries are swept by a
// background goroutine so the map does not grow with every chat ever seen.
type userLocker struct {
	mu  sync.Map // map[int64]*mutexWithTimestamp
	log *logrus.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func newUserLocker(log *logrus.Logger) *userLocker {
	l := &userLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

// Lock blocks until the user's turn mutex is held and returns the unlock.
func (l *userLocker) Lock(userID int64) func() {
	mt := l.userMutex(userID)
	mt.mu.Lock()
	return mt.mu.Unlock
}

// Stop shuts down the sweeper. Safe to call multiple times.
func (l *userLocker) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
	}
}

func (l *userLocker) userMutex(userID int64) *mutexWithTimestamp {
	mt, _ := l.mu.LoadOrStore(userID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (l *userLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(lockerCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanupStale()
		}
	}
}

// cleanupStale removes unused mutexes. The lastUsed check happens inside
// the lock so a concurrent turn cannot slip between check and delete.
func (l *userLocker) cleanupStale() {
	cutoff := time.Now().Add(-lockerStaleThreshold).Unix()
	var cleaned int

	l.mu.Range(func(key, value any) bool {
		userID, ok := key.(int64)
		if !ok {
			return true
		}

		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff {
				l.mu.Delete(userID)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale session locks", cleaned)
	}
}
