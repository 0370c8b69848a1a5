package viewchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Subscription) []Event {
	var out []Event
	for {
		e, ok := s.TryNext()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestToastAndTipsAreQueued(t *testing.T) {
	bus := NewBus()
	sub, err := bus.Subscribe(context.Background())
	require.NoError(t, err)

	for _, m := range []string{"a", "b", "c"} {
		bus.Emit(Toast(m))
	}
	bus.Emit(Tips("t1"))
	bus.Emit(Tips("t2"))

	got := drain(sub)
	require.Len(t, got, 5)
	assert.Equal(t, "a", got[0].Message)
	assert.Equal(t, "c", got[2].Message)
	assert.Equal(t, "t2", got[4].Message)
}

func TestStateEventsKeepLatestValue(t *testing.T) {
	bus := NewBus()
	sub, err := bus.Subscribe(context.Background())
	require.NoError(t, err)

	bus.Emit(Loading())
	bus.Emit(DialogProgress("first"))
	bus.Emit(Toast("keep"))
	bus.Emit(Loading())
	bus.Emit(DialogProgress("second"))

	got := drain(sub)
	assert.Equal(t, []Kind{KindToast, KindLoading, KindDialogProgress}, kinds(got))
	assert.Equal(t, "second", got[2].Message)
}

func TestEverySubscriberReceives(t *testing.T) {
	bus := NewBus()
	a, _ := bus.Subscribe(context.Background())
	b, _ := bus.Subscribe(context.Background())
	assert.Equal(t, 2, bus.Len())

	bus.Emit(Restore())
	assert.Equal(t, 1, a.Pending())
	assert.Equal(t, 1, b.Pending())
}

func TestCancelledScopeDropsEvents(t *testing.T) {
	bus := NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	bus.Emit(Toast("before"))
	cancel()
	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after cancel")
	}

	bus.Emit(Toast("after"))
	assert.Equal(t, 0, sub.Pending())
	_, err = sub.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Eventually(t, func() bool { return bus.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestClosedBus(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(context.Background())
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	bus.Emit(Loading())
	assert.Equal(t, 0, sub.Pending())
	_, err := bus.Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNilBus(t *testing.T) {
	var bus *Bus
	bus.Emit(Toast("ignored"))
	sub, err := bus.Subscribe(context.Background())
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEventsChannel(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(context.Background())
	bus.Emit(Toast("x"))

	select {
	case e := <-sub.Events():
		assert.Equal(t, KindToast, e.Kind)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	require.NoError(t, sub.Close())
	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}
