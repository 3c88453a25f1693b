package display

import (
	"context"
	"errors"
	"sync"
)

// ErrRecipientRegistered is returned when a second consumer tries to register.
var ErrRecipientRegistered = errors.New("display channel already has a recipient")

// Channel is a single-slot, latest-value-wins handoff from one producer to
// one registered recipient. Publish never blocks; a value the recipient has
// not read yet is overwritten by the next one.
type Channel struct {
	mu         sync.Mutex
	state      State
	seq        uint64
	registered bool

	// wake holds at most one pending signal so bursts coalesce.
	wake chan struct{}
}

// NewChannel creates a channel holding DefaultState.
func NewChannel() *Channel {
	return &Channel{
		state: DefaultState(),
		wake:  make(chan struct{}, 1),
	}
}

// Publish replaces the slot with s, stamping the next sequence number, and
// returns the stored value.
func (c *Channel) Publish(s State) State {
	c.mu.Lock()
	c.seq++
	s.Seq = c.seq
	c.state = s
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return s
}

// Latest returns the most recently published state, or DefaultState.
func (c *Channel) Latest() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Register claims the channel for its only recipient.
func (c *Channel) Register() (*Receiver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.registered {
		return nil, ErrRecipientRegistered
	}
	c.registered = true
	return &Receiver{ch: c}, nil
}

// Receiver is the registered consumer side of a Channel. It is not safe for
// concurrent use.
type Receiver struct {
	ch   *Channel
	last uint64
}

// Latest returns the current slot value without waiting.
func (r *Receiver) Latest() State {
	s := r.ch.Latest()
	if s.Seq > r.last {
		r.last = s.Seq
	}
	return s
}

// Next blocks until a state newer than the last one this receiver saw is
// available, then returns it. Intermediate states may be skipped.
func (r *Receiver) Next(ctx context.Context) (State, error) {
	for {
		s := r.ch.Latest()
		if s.Seq > r.last {
			r.last = s.Seq
			return s, nil
		}

		select {
		case <-ctx.Done():
			return State{}, ctx.Err()
		case <-r.ch.wake:
		}
	}
}
