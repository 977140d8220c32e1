package xsync

import "sync"

type Mutex struct {
	sync.Mutex
}

func (m *Mutex) WithLock(f func()) {
	m.Lock()
	defer m.Unlock()

	f()
}

type RWMutex struct {
	sync.RWMutex
}

func (m *RWMutex) WithLock(f func()) {
	m.Lock()
	defer m.Unlock()

	f()
}

func (m *RWMutex) WithRLock(f func()) {
	m.RLock()
	defer m.RUnlock()

	f()
}
