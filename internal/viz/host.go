package viz

import (
	"strings"
	"sync"
)

// DefaultWidth is the canvas width used when a host has no terminal width.
const DefaultWidth = 80

// BufferHost keeps slot contents in memory. The CLI uses it to render
// directives once and print the result.
type BufferHost struct {
	mu    sync.Mutex
	width int
	order []string
	slots map[string]*bufferSlot
}

type bufferSlot struct {
	key     string
	content string
}

// NewBufferHost creates a host whose canvases are width columns wide.
func NewBufferHost(width int) *BufferHost {
	if width <= 0 {
		width = DefaultWidth
	}
	return &BufferHost{width: width, slots: make(map[string]*bufferSlot)}
}

// Open creates an empty slot. Opening an existing slot clears it.
func (h *BufferHost) Open(slot string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.slots[slot]; !ok {
		h.order = append(h.order, slot)
	}
	h.slots[slot] = &bufferSlot{}
}

// Close removes a slot.
func (h *BufferHost) Close(slot string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.slots[slot]; !ok {
		return
	}
	delete(h.slots, slot)
	for i, s := range h.order {
		if s == slot {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Reset removes every slot.
func (h *BufferHost) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.order = nil
	h.slots = make(map[string]*bufferSlot)
}

// SetWidth changes the canvas width for later draws.
func (h *BufferHost) SetWidth(width int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if width > 0 {
		h.width = width
	}
}

// Provide implements Host. Content for a slot that was never opened is dropped.
func (h *BufferHost) Provide(slot, key, markup string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.slots[slot]; ok {
		s.key = key
		s.content = markup
	}
}

// HasSlot implements Host.
func (h *BufferHost) HasSlot(slot string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.slots[slot]
	return ok
}

// Canvas implements Host.
func (h *BufferHost) Canvas(slot string) (Canvas, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.slots[slot]
	if !ok {
		return nil, false
	}
	return &bufferCanvas{host: h, slot: slot, s: s}, true
}

// Content returns what a slot currently shows.
func (h *BufferHost) Content(slot string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.slots[slot]; ok {
		return s.content
	}
	return ""
}

// Key returns the provider key last used for a slot.
func (h *BufferHost) Key(slot string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.slots[slot]; ok {
		return s.key
	}
	return ""
}

// Slots lists the open slots in the order they were opened.
func (h *BufferHost) Slots() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

// String joins the content of every non-empty slot.
func (h *BufferHost) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var parts []string
	for _, slot := range h.order {
		if c := h.slots[slot].content; c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}

// bufferCanvas draws into the slot it was handed out for. Once that slot is
// closed or reopened, draws are dropped.
type bufferCanvas struct {
	host *BufferHost
	slot string
	s    *bufferSlot
}

func (c *bufferCanvas) Width() int {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	return c.host.width
}

func (c *bufferCanvas) Draw(content string) {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	if c.host.slots[c.slot] == c.s {
		c.s.content = content
	}
}

func (c *bufferCanvas) Clear() {
	c.Draw("")
}
