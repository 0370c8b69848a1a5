package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetMembership(t *testing.T) {
	s := NewSet("0", " 200 ", "")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("0"))
	assert.True(t, s.Has("200"))
	assert.True(t, s.Has(" 0"))
	assert.False(t, s.Has("AUTH_EXPIRED"))

	var zero Set
	assert.False(t, zero.Has("0"))
}

func TestLookup(t *testing.T) {
	ec, ok := Lookup("AUTH_EXPIRED")
	assert.True(t, ok)
	assert.Equal(t, ErrAuthExpired, ec)

	_, ok = Lookup("nope")
	assert.False(t, ok)
	assert.True(t, ReturnCode(" ").Empty())
}
