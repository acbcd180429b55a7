// Package bus provides in-process invalidation topics. Stores publish a
// topic after every committed mutation; subscribers (SSE manager, caches)
// react by refetching. Events carry no payload, only the collection name.
package bus

import (
	"sync"
)

// Topics, one per mutable collection.
const (
	TopicChildren  = "children"
	TopicItems     = "scheduled_items"
	TopicInterests = "interests"
	TopicSquads    = "squads"
	TopicFavorites = "favorites"
	TopicProfile   = "profile"
	TopicCamps     = "camps"
)

// Handler receives the topic that was invalidated.
type Handler func(topic string)

// Bus fans invalidation events out to subscribers. Publish runs every
// handler synchronously before returning, so a subscriber that refetches
// sees the committed write.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]subscription
	nextID   int
}

type subscription struct {
	topic   string
	handler Handler
}

func New() *Bus {
	return &Bus{handlers: make(map[int]subscription)}
}

// Subscribe registers a handler for a topic. An empty topic subscribes to
// every event. The returned function removes the subscription.
func (b *Bus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = subscription{topic: topic, handler: h}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Publish delivers the topic to all matching subscribers.
func (b *Bus) Publish(topic string) {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.handlers))
	for _, sub := range b.handlers {
		if sub.topic == "" || sub.topic == topic {
			matched = append(matched, sub.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range matched {
		h(topic)
	}
}
