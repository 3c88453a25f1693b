package display

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_DefaultBeforePublish(t *testing.T) {
	ch := NewChannel()
	assert.Equal(t, DefaultState(), ch.Latest())
}

func TestChannel_RegisterOnce(t *testing.T) {
	ch := NewChannel()

	r, err := ch.Register()
	require.NoError(t, err)
	require.NotNil(t, r)

	_, err = ch.Register()
	assert.ErrorIs(t, err, ErrRecipientRegistered)
}

func TestChannel_LatestValueWins(t *testing.T) {
	ch := NewChannel()
	r, err := ch.Register()
	require.NoError(t, err)

	ch.Publish(State{CookInfo: "S1", Ready: true})
	ch.Publish(State{CookInfo: "S2", Ready: true})
	s3 := ch.Publish(State{CookInfo: "S3", Ready: true})
	assert.Equal(t, uint64(3), s3.Seq)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := r.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "S3", got.CookInfo)
	assert.Equal(t, uint64(3), got.Seq)

	// Nothing newer: Next blocks until the context ends.
	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	_, err = r.Next(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChannel_NextWakesOnPublish(t *testing.T) {
	ch := NewChannel()
	r, err := ch.Register()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got := make(chan State, 1)
	go func() {
		s, err := r.Next(ctx)
		if err == nil {
			got <- s
		}
	}()

	time.Sleep(10 * time.Millisecond)
	ch.Publish(State{CookInfo: "fresh", Ready: true})

	select {
	case s := <-got:
		assert.Equal(t, "fresh", s.CookInfo)
	case <-time.After(time.Second):
		t.Fatal("receiver was not woken by publish")
	}
}

func TestChannel_RecencyUnderConcurrency(t *testing.T) {
	const publishes = 500

	ch := NewChannel()
	r, err := ch.Register()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= publishes; i++ {
			// Every field carries i so a torn read would be visible.
			ch.Publish(State{InternalTempF: float64(i), AmbientTempF: float64(i), Ready: true})
		}
	}()

	var seen []State
	for {
		s, err := r.Next(ctx)
		require.NoError(t, err)
		seen = append(seen, s)
		if s.Seq == publishes {
			break
		}
	}
	wg.Wait()

	require.NotEmpty(t, seen)
	last := uint64(0)
	for _, s := range seen {
		assert.Greater(t, s.Seq, last, "receiver observed an older state")
		assert.Equal(t, s.InternalTempF, s.AmbientTempF, "torn state")
		assert.Equal(t, float64(s.Seq), s.InternalTempF)
		last = s.Seq
	}
	assert.Equal(t, float64(publishes), seen[len(seen)-1].InternalTempF)
}

func TestReceiver_LatestAdvancesCursor(t *testing.T) {
	ch := NewChannel()
	r, err := ch.Register()
	require.NoError(t, err)

	ch.Publish(State{CookInfo: "a"})
	assert.Equal(t, "a", r.Latest().CookInfo)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = r.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
