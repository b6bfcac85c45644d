package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSinkFeedsWorker(t *testing.T) {
	sink := NewChannelSink(8)
	store := NewMemoryStore()
	worker := NewWorker(store, sink.Inbox())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.NoError(t, sink.Emit(ctx, Event{Action: ActionUserLogin, UserID: "u1", Username: "ada"}))
	require.NoError(t, sink.Emit(ctx, Event{Action: ActionSessionExpired, UserID: "u1"}))

	require.Eventually(t, func() bool {
		events, err := store.ListByUser(context.Background(), "u1")
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, ActionUserLogin, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "sink stamps events missing a timestamp")

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestChannelSinkDropsWhenFull(t *testing.T) {
	sink := NewChannelSink(1)

	require.NoError(t, sink.Emit(context.Background(), Event{Action: ActionUserLogin, UserID: "u1"}))
	// No worker is draining; the second emit must not block the caller.
	require.NoError(t, sink.Emit(context.Background(), Event{Action: ActionUserLogin, UserID: "u1"}))

	assert.Len(t, sink.Inbox(), 1)
}
