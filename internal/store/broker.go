package store

import "sync"

// Topics published by the store. Entity-scoped topics append the entity id,
// e.g. TopicPost + postID for a single post's comments and like changes.
const (
	TopicPosts  = "posts"
	TopicPost   = "post:"
	TopicChat   = "chat"
	TopicThread = "thread:"
	TopicUser   = "user:"
)

// Event is one change notification on a topic.
type Event struct {
	Topic   string      `json:"topic"`
	Action  string      `json:"action"` // created | updated | deleted | cleared
	Payload interface{} `json:"payload,omitempty"`
}

// Subscription is a live query handle. Events arrive on C until Cancel is
// called; Cancel is idempotent and no events are delivered after it returns.
type Subscription struct {
	C chan Event

	topic  string
	broker *Broker
	once   sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.C)
	})
}

// Broker is an in-process fan-out of store change events. Mutations publish
// without blocking: a subscriber whose buffer is full misses the event and
// is expected to re-read, the same contract a remote change stream gives a
// slow consumer.
type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[*Subscription]struct{}),
	}
}

const subscriptionBuffer = 64

func (b *Broker) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		topic:  topic,
		broker: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*Subscription]struct{})
	}
	b.topics[topic][sub] = struct{}{}
	return sub
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.topic)
	}
}

func (b *Broker) Publish(topic, action string, payload interface{}) {
	ev := Event{Topic: topic, Action: action, Payload: payload}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.topics[topic] {
		select {
		case sub.C <- ev:
		default:
			// Slow subscriber, drop rather than block the mutation.
		}
	}
}
