// Package monitor provides a value guarded by a mutex and a condition
// variable. All access goes through Read, Write and Wait; the guarded value
// never escapes the lock.
package monitor

import "sync"

// Monitor holds a value of type S behind a lock.
type Monitor[S any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state S
}

// New wraps state in a monitor.
func New[S any](state S) *Monitor[S] {
	m := &Monitor[S]{state: state}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Read applies f to the state under the lock. Waiters are not notified.
func Read[S, R any](m *Monitor[S], f func(*S) R) R {
	m.mu.Lock()
	defer m.mu.Unlock()
	return f(&m.state)
}

// Write notifies all waiters, then applies f to the state under the lock.
// Woken waiters must reacquire the lock before they look at the state, so
// they only ever see it after f has returned.
func Write[S, R any](m *Monitor[S], f func(*S) R) R {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cond.Broadcast()
	return f(&m.state)
}

// Wait applies f to the state until it reports ok, blocking between
// attempts until another goroutine notifies. When f asks to notify, all
// other waiters are woken before Wait returns or blocks again. f may run
// many times and must not assume progress between calls.
func Wait[S, R any](m *Monitor[S], f func(*S) (result R, ok, notify bool)) R {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		r, ok, notify := f(&m.state)
		if notify {
			m.cond.Broadcast()
		}
		if ok {
			return r
		}
		m.cond.Wait()
	}
}
