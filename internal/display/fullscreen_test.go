package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	err        error
	requests   []bool
	fullscreen bool
	// apply controls whether SetFullscreen takes effect; hosts may ignore it.
	apply bool
}

func (s *fakeScreen) IsFullscreen() bool { return s.fullscreen }

func (s *fakeScreen) SetFullscreen(on bool) error {
	s.requests = append(s.requests, on)
	if s.err != nil {
		return s.err
	}
	if s.apply {
		s.fullscreen = on
	}
	return nil
}

func TestToggleRequestsOppositeState(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: true}
	c := NewController(screen)

	c.Toggle()
	c.Toggle()

	assert.Equal(t, []bool{true, false}, screen.requests)
}

func TestStateFollowsNotificationOnly(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: true}
	c := NewController(screen)

	var view bool
	var calls int
	unsubscribe := c.Subscribe(func(fs bool) {
		view = fs
		calls++
	})
	defer unsubscribe()

	c.Toggle()
	assert.False(t, view, "toggle alone does not change view state")

	c.Poll()
	assert.True(t, view)
	assert.Equal(t, 1, calls)

	c.Poll()
	assert.Equal(t, 1, calls, "no notification without a change")

	// An external exit (window manager, Esc) is picked up the same way.
	screen.fullscreen = false
	c.Poll()
	assert.False(t, view)
	assert.Equal(t, 2, calls)
}

func TestIgnoredRequestLeavesViewWindowed(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: false}
	c := NewController(screen)

	view := false
	defer c.Subscribe(func(fs bool) { view = fs })()

	c.Toggle()
	c.Poll()

	assert.False(t, view)
	assert.Equal(t, []bool{true}, screen.requests)
}

func TestFailedRequestIsSwallowed(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{err: errors.New("denied")}
	c := NewController(screen)

	notified := false
	defer c.Subscribe(func(bool) { notified = true })()

	require.NotPanics(t, c.Toggle)
	c.Poll()
	assert.False(t, notified)
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: true}
	c := NewController(screen)

	calls := 0
	unsubscribe := c.Subscribe(func(bool) { calls++ })
	assert.Equal(t, 1, c.Subscribers())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, c.Subscribers())

	c.Toggle()
	c.Poll()
	assert.Zero(t, calls)
}

func TestIsFullscreenIsLastObservation(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{fullscreen: true, apply: true}
	c := NewController(screen)
	assert.True(t, c.IsFullscreen(), "baseline taken at construction")

	c.Toggle()
	assert.True(t, c.IsFullscreen(), "unchanged until polled")

	c.Poll()
	assert.False(t, c.IsFullscreen())
}
