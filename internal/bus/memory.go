// Package bus provides the in-process signal bus connecting the scanner and
// execution service to the WebSocket hub. It is deliberately in-memory so
// the server works with zero external infrastructure.
package bus

import (
	"context"
	"sync"
)

// subscriberBuffer bounds each subscriber channel. Slow subscribers drop
// messages instead of blocking publishers.
const subscriberBuffer = 64

// Memory is an in-process publish/subscribe bus implementing
// domain.SignalBus.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string]map[int]chan []byte
	nextID int
}

// NewMemory returns an empty bus.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string]map[int]chan []byte)}
}

// Publish delivers data to every current subscriber of the channel. Delivery
// is best-effort: a subscriber with a full buffer misses the message.
func (m *Memory) Publish(_ context.Context, channel string, data []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs[channel] {
		select {
		case ch <- data:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber on the channel. The returned channel is
// closed when ctx is cancelled.
func (m *Memory) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte, subscriberBuffer)

	m.mu.Lock()
	if m.subs[channel] == nil {
		m.subs[channel] = make(map[int]chan []byte)
	}
	id := m.nextID
	m.nextID++
	m.subs[channel][id] = ch
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.subs[channel], id)
		m.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
