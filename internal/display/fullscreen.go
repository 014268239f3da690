// Package display tracks and toggles whole-window fullscreen.
//
// View state never follows a toggle request directly. Subscribers learn
// about fullscreen only through change notifications raised by Poll, so
// a rejected or ignored request leaves the view consistent.
package display

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Screen is the host surface that can enter and leave fullscreen.
type Screen interface {
	IsFullscreen() bool
	SetFullscreen(on bool) error
}

// Controller toggles a Screen and notifies subscribers of changes.
type Controller struct {
	screen Screen
	subs   map[int]func(bool)
	nextID int
	mu     sync.Mutex
	last   bool
}

// NewController wraps screen, taking its current state as the baseline.
func NewController(screen Screen) *Controller {
	return &Controller{
		screen: screen,
		subs:   make(map[int]func(bool)),
		last:   screen.IsFullscreen(),
	}
}

// Toggle requests fullscreen when the screen is windowed and exits it
// otherwise. A failed request is logged and dropped.
func (c *Controller) Toggle() {
	want := !c.screen.IsFullscreen()
	if err := c.screen.SetFullscreen(want); err != nil {
		if want {
			log.Error().Err(err).Msg("error attempting to enable fullscreen")
		} else {
			log.Error().Err(err).Msg("error attempting to exit fullscreen")
		}
	}
}

// IsFullscreen is the state as of the last observation. It is what
// subscribers have been told, or the screen's state at construction.
func (c *Controller) IsFullscreen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Subscribe registers fn for fullscreen-change notifications. The returned
// func removes the subscription and is safe to call more than once.
func (c *Controller) Subscribe(fn func(fullscreen bool)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Subscribers reports how many subscriptions are live.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Poll observes the screen and notifies subscribers if its fullscreen
// state differs from the last observation. Call it once per frame.
func (c *Controller) Poll() {
	now := c.screen.IsFullscreen()

	c.mu.Lock()
	if now == c.last {
		c.mu.Unlock()
		return
	}
	c.last = now
	fns := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	log.Debug().Bool("fullscreen", now).Msg("fullscreen changed")
	for _, fn := range fns {
		fn(now)
	}
}
