package bus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversToTopicSubscribers(t *testing.T) {
	b := New()

	var got []string
	b.Subscribe(TopicChildren, func(topic string) {
		got = append(got, topic)
	})

	b.Publish(TopicChildren)
	b.Publish(TopicItems)
	b.Publish(TopicChildren)

	assert.Equal(t, []string{TopicChildren, TopicChildren}, got)
}

func TestWildcardSubscriberSeesEverything(t *testing.T) {
	b := New()

	var got []string
	b.Subscribe("", func(topic string) {
		got = append(got, topic)
	})

	b.Publish(TopicSquads)
	b.Publish(TopicProfile)

	assert.Equal(t, []string{TopicSquads, TopicProfile}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	count := 0
	unsub := b.Subscribe(TopicItems, func(string) { count++ })

	b.Publish(TopicItems)
	unsub()
	b.Publish(TopicItems)

	assert.Equal(t, 1, count)
}

func TestPublishIsSynchronous(t *testing.T) {
	b := New()

	done := false
	b.Subscribe(TopicInterests, func(string) { done = true })

	b.Publish(TopicInterests)
	assert.True(t, done, "handler must complete before Publish returns")
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := New()

	var mu sync.Mutex
	count := 0
	b.Subscribe(TopicCamps, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(TopicCamps)
		}()
	}
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := b.Subscribe(TopicFavorites, func(string) {})
			unsub()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}
