package bot

import (
	"sync"
	"time"
)

type pendingEntry[V any] struct {
	value   V
	expires time.Time
}

// PendingStore holds per-chat state that is waiting on a user reply, with a
// TTL so abandoned confirmations do not pile up for the life of the process.
type PendingStore[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[int64]pendingEntry[V]
	done    chan struct{}
	once    sync.Once
}

// NewPendingStore creates a store whose entries expire after ttl.
func NewPendingStore[V any](ttl time.Duration) *PendingStore[V] {
	return &PendingStore[V]{
		ttl:     ttl,
		entries: make(map[int64]pendingEntry[V]),
		done:    make(chan struct{}),
	}
}

// Put stores the value for the chat, replacing any previous entry and
// resetting its TTL.
func (s *PendingStore[V]) Put(chatID int64, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = pendingEntry[V]{value: value, expires: time.Now().Add(s.ttl)}
}

// Get returns the value for the chat if present and not expired.
func (s *PendingStore[V]) Get(chatID int64) (V, bool) {
	s.mu.RLock()
	entry, ok := s.entries[chatID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Take returns and removes the value for the chat in one step.
func (s *PendingStore[V]) Take(chatID int64) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[chatID]
	if !ok || time.Now().After(entry.expires) {
		delete(s.entries, chatID)
		var zero V
		return zero, false
	}
	delete(s.entries, chatID)
	return entry.value, true
}

// Delete removes the chat's entry if any.
func (s *PendingStore[V]) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
}

// Len reports the number of live entries.
func (s *PendingStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	count := 0
	for _, entry := range s.entries {
		if now.Before(entry.expires) {
			count++
		}
	}
	return count
}

// StartJanitor sweeps expired entries at the given interval until Close.
func (s *PendingStore[V]) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *PendingStore[V]) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for chatID, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, chatID)
		}
	}
}

// Close stops the janitor.
func (s *PendingStore[V]) Close() {
	s.once.Do(func() { close(s.done) })
}
