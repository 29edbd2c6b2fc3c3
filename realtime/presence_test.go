package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresence(t *testing.T) {
	p := NewPresence()

	_, ok := p.Lookup("1")
	assert.False(t, ok)

	p.Set("1", "conn-a")
	p.Set("2", "conn-b")
	id, ok := p.Lookup("1")
	assert.True(t, ok)
	assert.Equal(t, "conn-a", id)
	assert.Equal(t, 2, p.Len())

	// user 1 reconnected; the old connection closing must not unmap them
	p.Set("1", "conn-c")
	assert.Empty(t, p.RemoveConn("conn-a"))
	id, _ = p.Lookup("1")
	assert.Equal(t, "conn-c", id)

	assert.Equal(t, []string{"2"}, p.RemoveConn("conn-b"))
	_, ok = p.Lookup("2")
	assert.False(t, ok)
	assert.Equal(t, 1, p.Len())
}
