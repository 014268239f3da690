package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iburimskiy/keys-countdown/internal/countdown"
	"github.com/iburimskiy/keys-countdown/internal/display"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSound struct {
	// release, when set, holds Toggle until it is closed
	release chan struct{}
	mu      sync.Mutex
	toggles int
	stops   int
	playing bool
}

func (s *fakeSound) Toggle(context.Context) bool {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggles++
	s.playing = !s.playing
	return s.playing
}

func (s *fakeSound) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *fakeSound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.playing = false
}

func (s *fakeSound) counts() (toggles, stops int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggles, s.stops
}

func waitToggled(t *testing.T, v *View) {
	t.Helper()
	require.Eventually(t, func() bool { return !v.Toggling() }, time.Second, time.Millisecond)
}

type fakeScreen struct {
	on    bool
	apply bool
}

func (s *fakeScreen) IsFullscreen() bool { return s.on }

func (s *fakeScreen) SetFullscreen(on bool) error {
	if s.apply {
		s.on = on
	}
	return nil
}

var target = time.Date(2026, time.February, 15, 0, 0, 0, 0, time.Local)

func newView(t *testing.T, now time.Time, screen *fakeScreen) (*View, *fakeSound, *display.Controller) {
	t.Helper()

	timer := countdown.NewTimer(target, clockwork.NewFakeClockAt(now))
	sound := &fakeSound{}
	fs := display.NewController(screen)
	v := New(timer, sound, fs)
	v.Mount(context.Background())
	t.Cleanup(v.Unmount)
	return v, sound, fs
}

func TestTilesOneDayOut(t *testing.T) {
	t.Parallel()

	v, _, _ := newView(t, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.Local), &fakeScreen{})

	assert.Equal(t, [4]Tile{
		{Value: "01", Label: "DAYS"},
		{Value: "00", Label: "HOURS"},
		{Value: "00", Label: "MINUTES"},
		{Value: "00", Label: "SECONDS"},
	}, v.Tiles())
	assert.False(t, v.Arrived())
}

func TestTilesLongCountdownKeepsAllDigits(t *testing.T) {
	t.Parallel()

	v, _, _ := newView(t, target.Add(-123*24*time.Hour-5*time.Second), &fakeScreen{})

	tiles := v.Tiles()
	assert.Equal(t, "123", tiles[0].Value)
	assert.Equal(t, "05", tiles[3].Value)
}

func TestTilesAfterTarget(t *testing.T) {
	t.Parallel()

	v, _, _ := newView(t, target.Add(time.Hour), &fakeScreen{})

	for _, tile := range v.Tiles() {
		assert.Equal(t, "00", tile.Value)
	}
	assert.True(t, v.Arrived())
}

func TestTapTogglesSound(t *testing.T) {
	t.Parallel()

	v, sound, _ := newView(t, target.Add(-time.Hour), &fakeScreen{})

	assert.Equal(t, TaglineIdle, v.Tagline())
	require.True(t, v.Tap())
	waitToggled(t, v)
	assert.True(t, v.IsPlaying())
	assert.Equal(t, TaglinePlaying, v.Tagline())

	require.True(t, v.Tap())
	waitToggled(t, v)
	assert.False(t, v.IsPlaying())

	toggles, _ := sound.counts()
	assert.Equal(t, 2, toggles)
}

func TestTapDoesNotWaitForSound(t *testing.T) {
	t.Parallel()

	v, sound, _ := newView(t, target.Add(-time.Hour), &fakeScreen{})
	sound.release = make(chan struct{})

	require.True(t, v.Tap(), "returns while the device is still opening")
	assert.True(t, v.Toggling())
	assert.False(t, v.Tap(), "second tap is dropped while the first runs")

	close(sound.release)
	waitToggled(t, v)

	toggles, _ := sound.counts()
	assert.Equal(t, 1, toggles)
	assert.True(t, v.IsPlaying())
}

func TestUnmountWaitsForToggle(t *testing.T) {
	t.Parallel()

	sound := &fakeSound{release: make(chan struct{})}
	timer := countdown.NewTimer(target, clockwork.NewFakeClockAt(target.Add(-time.Hour)))
	v := New(timer, sound, display.NewController(&fakeScreen{}))
	v.Mount(context.Background())

	require.True(t, v.Tap())

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Unmount()
	}()
	assert.Never(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(sound.release)
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	toggles, stops := sound.counts()
	assert.Equal(t, 1, toggles)
	assert.Equal(t, 1, stops)
	assert.False(t, sound.IsPlaying(), "sound started during teardown is stopped")
}

func TestTapIgnoredWhenNotMounted(t *testing.T) {
	t.Parallel()

	sound := &fakeSound{}
	timer := countdown.NewTimer(target, clockwork.NewFakeClockAt(target.Add(-time.Hour)))
	v := New(timer, sound, display.NewController(&fakeScreen{}))

	assert.False(t, v.Tap())
	toggles, _ := sound.counts()
	assert.Zero(t, toggles)
}

func TestFullscreenFollowsNotification(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: true}
	v, _, _ := newView(t, target.Add(-time.Hour), screen)

	v.ToggleFullscreen()
	assert.True(t, screen.on)
	assert.False(t, v.IsFullscreen(), "no optimistic update")

	v.Sync()
	assert.True(t, v.IsFullscreen())

	v.ToggleFullscreen()
	v.Sync()
	assert.False(t, v.IsFullscreen())
}

func TestFullscreenAtMount(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{on: true, apply: true}
	v, _, _ := newView(t, target.Add(-time.Hour), screen)

	v.Sync()
	assert.True(t, v.IsFullscreen(), "starts from the screen's state")

	v.ToggleFullscreen()
	v.Sync()
	assert.False(t, screen.on)
	assert.False(t, v.IsFullscreen())
}

func TestFullscreenRejected(t *testing.T) {
	t.Parallel()

	v, _, _ := newView(t, target.Add(-time.Hour), &fakeScreen{apply: false})

	v.ToggleFullscreen()
	v.Sync()
	assert.False(t, v.IsFullscreen())
}

func TestUnmountReleases(t *testing.T) {
	t.Parallel()

	screen := &fakeScreen{apply: true}
	timer := countdown.NewTimer(target, clockwork.NewFakeClockAt(target.Add(-time.Hour)))
	sound := &fakeSound{}
	fs := display.NewController(screen)
	v := New(timer, sound, fs)

	v.Mount(context.Background())
	v.Mount(context.Background())
	require.Equal(t, 1, fs.Subscribers())

	require.True(t, v.Tap())
	v.Unmount()
	v.Unmount()

	assert.Zero(t, fs.Subscribers())
	assert.False(t, sound.IsPlaying())
	_, stops := sound.counts()
	assert.Equal(t, 1, stops)
	assert.False(t, v.Tap(), "no taps after teardown")

	screen.on = true
	v.Sync()
	assert.False(t, v.IsFullscreen(), "no notifications after teardown")
}

func TestDeparture(t *testing.T) {
	t.Parallel()

	v, _, _ := newView(t, target.Add(-time.Hour), &fakeScreen{})
	assert.Equal(t, "DEPARTURE: FEBRUARY 15, 2026", v.Departure())
}
