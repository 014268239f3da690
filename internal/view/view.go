// Package view holds the countdown page's behavior independent of how it
// is drawn: the timer, the sound toggle and the fullscreen state.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/keys-countdown/internal/countdown"
	"github.com/iburimskiy/keys-countdown/internal/display"
)

const (
	TaglineIdle    = "[ TAP ANYWHERE FOR OCEAN SOUNDS ]"
	TaglinePlaying = "[ TAP ANYWHERE TO STOP OCEAN SOUNDS ]"
)

// Timer is the running countdown.
type Timer interface {
	Start(ctx context.Context)
	Stop()
	Remaining() countdown.Remaining
	Arrived() bool
	Target() time.Time
}

// Sound is the ambient toggle.
type Sound interface {
	Toggle(ctx context.Context) bool
	IsPlaying() bool
	Stop()
}

// Tile is one numeric block of the countdown.
type Tile struct {
	Value string
	Label string
}

// View is the mounted countdown page.
type View struct {
	timer       Timer
	sound       Sound
	fs          *display.Controller
	ctx         context.Context
	unsubscribe func()
	toggles     sync.WaitGroup
	mu          sync.RWMutex
	toggling    atomic.Bool
	fullscreen  bool
}

func New(timer Timer, sound Sound, fs *display.Controller) *View {
	return &View{
		timer: timer,
		sound: sound,
		fs:    fs,
		ctx:   context.Background(),
	}
}

// Mount takes the current fullscreen state, subscribes to changes and
// starts the timer.
func (v *View) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.unsubscribe != nil {
		v.mu.Unlock()
		return
	}
	v.ctx = ctx
	v.unsubscribe = v.fs.Subscribe(v.onFullscreenChange)
	v.fullscreen = v.fs.IsFullscreen()
	v.mu.Unlock()

	v.timer.Start(ctx)
}

// Unmount releases everything Mount acquired and stops any sound.
func (v *View) Unmount() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.mu.Unlock()
	if unsubscribe == nil {
		return
	}

	unsubscribe()
	v.timer.Stop()
	v.toggles.Wait()
	v.sound.Stop()
}

func (v *View) onFullscreenChange(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fullscreen = on
}

// Sync lets the fullscreen controller deliver pending change notifications.
// Front ends call it once per frame.
func (v *View) Sync() {
	v.fs.Poll()
}

// Tap toggles the ambient sound in the background, so opening the audio
// device never holds up a frame. A tap that lands while a toggle is still
// running, or while the view is not mounted, is dropped. Tap reports
// whether it started a toggle.
func (v *View) Tap() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.unsubscribe == nil {
		return false
	}
	if !v.toggling.CompareAndSwap(false, true) {
		log.Debug().Msg("sound toggle already in progress")
		return false
	}

	ctx := v.ctx
	v.toggles.Add(1)
	go func() {
		defer v.toggles.Done()
		defer v.toggling.Store(false)
		v.sound.Toggle(ctx)
	}()
	return true
}

// Toggling reports whether a sound toggle started by Tap is still running.
func (v *View) Toggling() bool {
	return v.toggling.Load()
}

// ToggleFullscreen asks the screen to flip; the view's own state changes
// only when the change notification arrives.
func (v *View) ToggleFullscreen() {
	v.fs.Toggle()
}

func (v *View) IsFullscreen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fullscreen
}

func (v *View) IsPlaying() bool {
	return v.sound.IsPlaying()
}

func (v *View) Arrived() bool {
	return v.timer.Arrived()
}

// Tiles returns the four two-digit blocks, days first.
func (v *View) Tiles() [4]Tile {
	r := v.timer.Remaining()
	return [4]Tile{
		{Value: twoDigits(r.Days), Label: "DAYS"},
		{Value: twoDigits(r.Hours), Label: "HOURS"},
		{Value: twoDigits(r.Minutes), Label: "MINUTES"},
		{Value: twoDigits(r.Seconds), Label: "SECONDS"},
	}
}

// Tagline is the hint under the window.
func (v *View) Tagline() string {
	if v.IsPlaying() {
		return TaglinePlaying
	}
	return TaglineIdle
}

// Departure is the date line under the heading.
func (v *View) Departure() string {
	return "DEPARTURE: " + strings.ToUpper(v.timer.Target().Format("January 2, 2006"))
}

// twoDigits pads to at least two digits; larger values are kept whole.
func twoDigits(n int) string {
	return fmt.Sprintf("%02d", n)
}
