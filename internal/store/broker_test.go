package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishFanout(t *testing.T) {
	b := NewBroker()
	s1 := b.Subscribe(TopicChat)
	s2 := b.Subscribe(TopicChat)
	other := b.Subscribe(TopicPosts)

	b.Publish(TopicChat, "created", "hi")

	for _, sub := range []*Subscription{s1, s2} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, "created", ev.Action)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}

	select {
	case <-other.C:
		t.Fatal("event leaked across topics")
	default:
	}
}

func TestSubscription_CancelIdempotent(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(TopicChat)

	sub.Cancel()
	// A second cancel is a no-op, not a panic.
	sub.Cancel()

	// Publishing after cancel must not deliver.
	b.Publish(TopicChat, "created", nil)

	_, open := <-sub.C
	assert.False(t, open)
}

func TestBroker_DropsWhenSubscriberFull(t *testing.T) {
	b := NewBroker()
	sub := b.Subscribe(TopicPosts)

	// Overfill the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*2; i++ {
			b.Publish(TopicPosts, "created", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	// The buffered prefix is still delivered in order.
	first := <-sub.C
	require.Equal(t, 0, first.Payload)
}
