package eventbus

import (
	"sync"

	"go.uber.org/zap"
)

// Topics emitted across the application.
const (
	TopicMonitoringStarted = "monitoring-started"
	TopicMonitoringStopped = "monitoring-stopped"
	TopicMonitoringError   = "monitoring-error"
	TopicItemDetection     = "item-detection"
	TopicSaveFileEvent     = "save-file-event"
)

// Handler processes a single event payload. A returned error is logged and
// does not affect sibling handlers or the emitter.
type Handler func(payload any) error

// Unsubscribe removes the handler it was returned for. Calling it more than
// once is a no-op.
type Unsubscribe func()

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a topic-based publish/subscribe dispatcher. Handlers for a topic run
// synchronously in registration order; a panicking or erroring handler never
// prevents its siblings from running.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	topics map[string][]subscription
	logger *zap.Logger
}

// New creates an empty bus. A nil logger falls back to zap.NewNop.
func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		topics: make(map[string][]subscription),
		logger: logger,
	}
}

// On registers a handler for a topic and returns its subscription id together
// with an idempotent unsubscribe function.
func (b *Bus) On(topic string, handler Handler) (uint64, Unsubscribe) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.topics[topic] = append(b.topics[topic], subscription{id: id, handler: handler})

	var once sync.Once
	return id, func() {
		once.Do(func() { b.Off(topic, id) })
	}
}

// Off removes the subscription with the given id from a topic. Unknown ids
// are ignored.
func (b *Bus) Off(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.topics[topic]
	for i, sub := range subs {
		if sub.id == id {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit invokes every handler registered for the topic in registration order.
// Panics and returned errors are logged; they never propagate to the caller.
func (b *Bus) Emit(topic string, payload any) {
	b.mu.Lock()
	subs := make([]subscription, len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.Unlock()

	for _, sub := range subs {
		b.dispatch(topic, sub, payload)
	}
}

func (b *Bus) dispatch(topic string, sub subscription, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("topic", topic),
				zap.Uint64("subscription", sub.id),
				zap.Any("panic", r),
			)
		}
	}()

	if err := sub.handler(payload); err != nil {
		b.logger.Error("event handler failed",
			zap.String("topic", topic),
			zap.Uint64("subscription", sub.id),
			zap.Error(err),
		)
	}
}

// ListenerCount returns the number of handlers registered for a topic.
func (b *Bus) ListenerCount(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

// Clear removes all subscriptions from all topics.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = make(map[string][]subscription)
}
