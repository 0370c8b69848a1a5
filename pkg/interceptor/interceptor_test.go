package interceptor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

type countingRule struct {
	code  codes.ReturnCode
	calls int
}

func (r *countingRule) Applies(code codes.ReturnCode) bool { return code == r.code }

func (r *countingRule) Handle(context.Context, codes.ReturnCode, string, viewchange.Emitter) {
	r.calls++
}

func TestRouteUnmatched(t *testing.T) {
	chain := NewChain(&countingRule{code: "A"}, &countingRule{code: "B"})
	assert.False(t, chain.Route(context.Background(), "C", "msg", nil))

	var empty *Chain
	assert.False(t, empty.Route(context.Background(), "A", "", nil))
	assert.False(t, NewChain().Route(context.Background(), "A", "", nil))
}

func TestRouteFirstMatchWins(t *testing.T) {
	first := &countingRule{code: "X"}
	second := &countingRule{code: "Y"}
	shadowed := &countingRule{code: "Y"}
	chain := NewChain(first, second, shadowed)

	require.True(t, chain.Route(context.Background(), "Y", "", nil))
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, shadowed.calls)
}

func TestRouteAuthExpired(t *testing.T) {
	var handled []string
	reauth := CodeRule(func(_ context.Context, code codes.ReturnCode, msg string, emit viewchange.Emitter) {
		handled = append(handled, code.String()+":"+msg)
		emit.Emit(viewchange.Toast("please sign in again"))
	}, codes.ErrAuthExpired.Code.String())

	var events []viewchange.Event
	emit := viewchange.EmitterFunc(func(e viewchange.Event) { events = append(events, e) })

	chain := NewChain(reauth)
	require.True(t, chain.Route(context.Background(), codes.ErrAuthExpired.Code, "expired", emit))
	assert.Equal(t, []string{"AUTH_EXPIRED:expired"}, handled)
	require.Len(t, events, 1)
	assert.Equal(t, viewchange.KindToast, events[0].Kind)
	for _, e := range events {
		assert.NotEqual(t, viewchange.KindNetworkError, e.Kind)
	}
}

func TestWithKeepsOriginal(t *testing.T) {
	base := NewChain(ToastRule("A"))
	extended := base.With(ToastRule("B"), nil)
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())
	assert.False(t, base.Route(context.Background(), "B", "", nil))
	assert.True(t, extended.Route(context.Background(), "B", "", nil))
}

func TestRuleFuncNilParts(t *testing.T) {
	r := RuleFunc(nil, nil)
	assert.False(t, r.Applies("A"))
	r.Handle(context.Background(), "A", "", nil)
}
