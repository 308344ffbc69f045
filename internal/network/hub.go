package network

import (
	"sync"

	"rogee/pkg/api"
)

// Broadcaster занимается только рассылкой снимков подписчикам.
// Each subscriber has a one-slot channel holding the newest undelivered
// snapshot. Sends never block: a slow subscriber skips intermediate frames.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: SubscriberID -> Личный канал
	subscribers map[string]chan api.Snapshot

	// latest is the last published snapshot, served to new subscribers and
	// to /debug/state.
	latest *api.Snapshot
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.Snapshot),
	}
}

// Register создает личный канал для подписчика.
// The latest snapshot, if any, is queued right away.
func (b *Broadcaster) Register(id string) chan api.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.Snapshot, 1)
	if b.latest != nil {
		ch <- *b.latest
	}
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Publish stores msg as the latest snapshot and fans it out to everyone.
func (b *Broadcaster) Publish(msg api.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = &msg
	for _, ch := range b.subscribers {
		offer(ch, msg)
	}
}

// Latest returns the last published snapshot.
func (b *Broadcaster) Latest() (api.Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.latest == nil {
		return api.Snapshot{}, false
	}
	return *b.latest, true
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close disconnects every subscriber.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

// offer puts msg into a one-slot channel, replacing a stale queued value.
// Callers hold b.mu, so nobody else sends on ch concurrently.
func offer(ch chan api.Snapshot, msg api.Snapshot) {
	select {
	case ch <- msg:
		return
	default:
	}
	// Старый кадр еще не забрали: выкидываем его
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- msg:
	default:
	}
}
