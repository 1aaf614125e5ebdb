package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestPublishSubscribe(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	s := NewStream(client)
	defer s.Close()

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{})

	sub, err := s.Subscribe(ctx, "T1", func(ev Event) {
		mu.Lock()
		got = append(got, ev)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	}, WithConcurrency(1))
	require.NoError(t, err)
	sub.Loop()

	for _, typ := range []Type{TypeTableCreated, TypeTrumpFixed, TypeGameOver} {
		require.NoError(t, s.Publish(ctx, New(typ, "T1").WithPlayer(101)))
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, TypeTableCreated, got[0].Type)
	assert.Equal(t, TypeTrumpFixed, got[1].Type)
	assert.Equal(t, TypeGameOver, got[2].Type)
	for _, ev := range got {
		assert.Equal(t, "T1", ev.TableID)
		assert.EqualValues(t, 101, ev.Player)
		assert.NotZero(t, ev.At)
	}
}

func TestPublishPayload(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	s := NewStream(client)
	defer s.Close()

	type trick struct {
		Winner int64 `json:"winner"`
		Points int   `json:"points"`
	}
	ev := New(TypeTrickDone, "T2").WithPayload(trick{Winner: 103, Points: 21})
	require.NoError(t, s.Publish(ctx, ev))

	length, err := client.LLen(ctx, streamKey("T2")).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, length)
}

func TestPublishQueueFull(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	s := NewStream(client, WithQueueSize(2))
	defer s.Close()

	require.NoError(t, s.Publish(ctx, New(TypePlayerJoined, "T3")))
	require.NoError(t, s.Publish(ctx, New(TypePlayerJoined, "T3")))
	assert.ErrorIs(t, s.Publish(ctx, New(TypePlayerJoined, "T3")), ErrQueueFull)
}

func TestStreamClosed(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	s := NewStream(client)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Publish(ctx, New(TypeTableClosed, "T4")), ErrStreamClosed)
	_, err := s.Subscribe(ctx, "T4", func(Event) {})
	assert.ErrorIs(t, err, ErrStreamClosed)
}

func TestSubscribeNilHandler(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	s := NewStream(client)
	defer s.Close()

	_, err := s.Subscribe(context.Background(), "T5", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestHandlerPanicRecovered(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	ctx := context.Background()
	s := NewStream(client, WithRecovery())
	defer s.Close()

	done := make(chan struct{})
	calls := 0
	sub, err := s.Subscribe(ctx, "T6", func(ev Event) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		close(done)
	}, WithConcurrency(1))
	require.NoError(t, err)
	sub.Loop()

	require.NoError(t, s.Publish(ctx, New(TypeRoundStarted, "T6")))
	require.NoError(t, s.Publish(ctx, New(TypeRoundEnded, "T6")))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second event never arrived; panic was not recovered")
	}
}
