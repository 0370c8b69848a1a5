package viewchange

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by a subscription or bus that has been torn down.
	ErrClosed = errors.New("viewchange: closed")
)

// Bus fans events from a single writer out to the subscribers of one screen
// or session. Emit is synchronous: when it returns, the event is queued on
// every live subscription.
type Bus struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBus creates an open bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Emit queues e on every live subscription. It is a no-op once the bus is closed.
func (b *Bus) Emit(e Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	subs := make([]*Subscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.push(e)
	}
}

// Subscribe registers a subscription scoped to ctx. When ctx is done the
// subscription is closed and its undelivered events are dropped.
func (b *Bus) Subscribe(ctx context.Context) (*Subscription, error) {
	if b == nil {
		return nil, ErrClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Subscription{
		bus:    b,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				s.Close()
			case <-s.done:
			}
		}()
	}
	return s, nil
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close tears down the bus and every subscription on it.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for s := range subs {
		s.shutdown()
	}
	return nil
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription is one consumer's view of a Bus. Events of the same non
// transient kind collapse to the most recent one while undelivered; Toast and
// Tips are kept in full.
type Subscription struct {
	bus *Bus

	mu      sync.Mutex
	pending []Event
	signal  chan struct{}

	done      chan struct{}
	closeOnce sync.Once

	eventsOnce sync.Once
	events     chan Event
}

func (s *Subscription) push(e Event) {
	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		return
	default:
	}
	if !e.Kind.Transient() {
		for i := range s.pending {
			if s.pending[i].Kind == e.Kind {
				s.pending = append(s.pending[:i], s.pending[i+1:]...)
				break
			}
		}
	}
	s.pending = append(s.pending, e)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// TryNext pops the oldest undelivered event without blocking.
func (s *Subscription) TryNext() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return Event{}, false
	}
	e := s.pending[0]
	s.pending[0] = Event{}
	s.pending = s.pending[1:]
	return e, true
}

// Next blocks until an event is available, the subscription closes
// (ErrClosed) or ctx is done.
func (s *Subscription) Next(ctx context.Context) (Event, error) {
	for {
		if e, ok := s.TryNext(); ok {
			return e, nil
		}
		select {
		case <-s.done:
			return Event{}, ErrClosed
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-s.signal:
		}
	}
}

// Pending returns the number of undelivered events.
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Events returns a channel fed from the subscription. It is closed when the
// subscription closes.
func (s *Subscription) Events() <-chan Event {
	s.eventsOnce.Do(func() {
		s.events = make(chan Event)
		go s.pump()
	})
	return s.events
}

func (s *Subscription) pump() {
	defer close(s.events)
	for {
		e, err := s.Next(context.Background())
		if err != nil {
			return
		}
		select {
		case <-s.done:
			return
		default:
		}
		select {
		case s.events <- e:
		case <-s.done:
			return
		}
	}
}

// Done is closed once the subscription is torn down.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Close detaches the subscription and drops undelivered events.
func (s *Subscription) Close() error {
	s.shutdown()
	if s.bus != nil {
		s.bus.remove(s)
	}
	return nil
}

func (s *Subscription) shutdown() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		close(s.done)
		s.pending = nil
		s.mu.Unlock()
	})
}
