package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferHost(t *testing.T) {
	h := NewBufferHost(0)

	assert.False(t, h.HasSlot("a"))
	h.Provide("a", "k", "dropped")
	assert.Empty(t, h.Content("a"))

	h.Open("a")
	h.Open("b")
	h.Provide("a", "metrics-a", "hello")
	assert.Equal(t, "metrics-a", h.Key("a"))

	c, ok := h.Canvas("b")
	require.True(t, ok)
	assert.Equal(t, DefaultWidth, c.Width())
	c.Draw("chart")
	assert.Equal(t, "hello\n\nchart", h.String())

	c.Clear()
	assert.Equal(t, "hello", h.String())

	h.Close("a")
	assert.Equal(t, []string{"b"}, h.Slots())
	_, ok = h.Canvas("a")
	assert.False(t, ok)

	h.SetWidth(120)
	assert.Equal(t, 120, c.Width())

	h.Reset()
	assert.Empty(t, h.Slots())
	c.Draw("after reset")
	assert.Empty(t, h.String())
}

func TestBufferHost_CanvasOutlivesSlot(t *testing.T) {
	h := NewBufferHost(40)
	h.Open("s")
	old, ok := h.Canvas("s")
	require.True(t, ok)

	h.Reset()
	h.Open("s")
	h.Provide("s", "metrics-s", "new")

	old.Draw("stale")
	assert.Equal(t, "new", h.Content("s"), "canvas from a reopened slot draws nowhere")
	old.Clear()
	assert.Equal(t, "new", h.Content("s"))

	h.Close("s")
	old.Draw("stale")
	assert.Empty(t, h.Slots())
}
