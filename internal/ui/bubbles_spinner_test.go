package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
)

func TestSpinnerComponentLifecycle(t *testing.T) {
	s := NewSpinnerComponent("Loading")
	assert.False(t, s.Active())
	assert.Empty(t, s.View())

	cmd := s.Start()
	assert.NotNil(t, cmd)
	assert.True(t, s.Active())
	assert.Contains(t, s.View(), "Loading...")

	assert.Nil(t, s.Start(), "second start must not schedule another tick")

	s.Stop()
	assert.False(t, s.Active())
	assert.Empty(t, s.View())
}

func TestSpinnerComponentIgnoresTicksWhenIdle(t *testing.T) {
	s := NewSpinnerComponent("Loading")
	updated, cmd := s.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
	assert.False(t, updated.Active())
}

func TestSpinnerComponentIgnoresOtherMessages(t *testing.T) {
	s := NewSpinnerComponent("Loading")
	s.Start()
	_, cmd := s.Update("not a tick")
	assert.Nil(t, cmd)
}
