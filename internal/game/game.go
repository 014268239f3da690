// Package game draws the countdown page in an ebiten window and routes
// pointer and keyboard input to the view.
package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/keys-countdown/internal/config"
	"github.com/iburimskiy/keys-countdown/internal/view"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 720

	levelWindow     = 1024
	smoothingFactor = 0.85
)

// Meter exposes recent output for the sound badge and the waves.
type Meter interface {
	Level(n int) float64
	Recent(n int) [][2]float64
}

// Game is the ebiten.Game for the countdown page.
type Game struct {
	done  <-chan struct{}
	view  *view.View
	meter Meter
	page  config.PageConfig

	// input edge detection
	prevKey  map[ebiten.Key]bool
	touchIDs []ebiten.TouchID

	// viz
	text      map[string]*ebiten.Image
	time      float64
	level     float64
	fsHovered bool
}

// New builds the game. It ends when ctx is cancelled.
func New(ctx context.Context, v *view.View, meter Meter, page config.PageConfig) *Game {
	return &Game{
		done:    ctx.Done(),
		view:    v,
		meter:   meter,
		page:    page,
		prevKey: map[ebiten.Key]bool{},
		text:    map[string]*ebiten.Image{},
	}
}

func (g *Game) Update() error {
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}

	g.view.Sync()

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.fsHovered = inFullscreenButton(mouseX, mouseY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.activate(mouseX, mouseY)
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		g.activate(ebiten.TouchPosition(id))
	}

	if justPressed(ebiten.KeySpace) {
		g.view.Tap()
	}
	if justPressed(ebiten.KeyF) {
		g.view.ToggleFullscreen()
	}
	if justPressed(ebiten.KeyEscape) {
		if g.view.IsFullscreen() {
			g.view.ToggleFullscreen()
		} else {
			return ebiten.Termination
		}
	}
	if justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.time += 1.0 / float64(ebiten.TPS())
	g.updateLevel()

	return nil
}

// activate handles a click or tap at x, y. The fullscreen control swallows
// its own clicks; anywhere else toggles the sound.
func (g *Game) activate(x, y int) {
	if inFullscreenButton(x, y) {
		g.view.ToggleFullscreen()
		return
	}
	g.view.Tap()
}

func (g *Game) updateLevel() {
	target := 0.0
	if g.view.IsPlaying() {
		// filtered noise at 0.3 gain sits around 0.05 RMS
		target = clamp01(g.meter.Level(levelWindow) * 12)
	}
	g.level = smoothingFactor*g.level + (1-smoothingFactor)*target
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
