package network

import (
	"testing"

	"rogee/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_PublishFansOut(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(api.Snapshot{Tick: 1})

	assert.Equal(t, 1, (<-a).Tick)
	assert.Equal(t, 1, (<-c).Tick)

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 1, latest.Tick)
}

func TestBroadcaster_NewSubscriberGetsLatest(t *testing.T) {
	b := NewBroadcaster()
	_, ok := b.Latest()
	assert.False(t, ok)

	b.Publish(api.Snapshot{Tick: 7})
	ch := b.Register("late")
	assert.Equal(t, 7, (<-ch).Tick)

	late := b.Register("later")
	b.Publish(api.Snapshot{Tick: 8})
	assert.Equal(t, 8, (<-late).Tick, "unread snapshot is superseded")
	assert.Equal(t, 0, len(late))
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")
	for i := 0; i < 100; i++ {
		b.Publish(api.Snapshot{Tick: i})
	}
	assert.Equal(t, 1, len(ch))
	assert.Equal(t, 99, (<-ch).Tick, "newest snapshot replaces the queued one")

	b.Publish(api.Snapshot{Tick: 100})
	assert.Equal(t, 100, (<-ch).Tick)
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("x")
	assert.Equal(t, 1, b.SubscriberCount())

	b.Unregister("x")
	assert.Equal(t, 0, b.SubscriberCount())
	_, open := <-ch
	assert.False(t, open)

	b.Unregister("x") // no-op

	again := b.Register("y")
	b.Close()
	_, open = <-again
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount())
}
