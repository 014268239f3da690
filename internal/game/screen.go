package game

import "github.com/hajimehoshi/ebiten/v2"

// Screen is the ebiten window as a display.Screen.
type Screen struct{}

func (Screen) IsFullscreen() bool { return ebiten.IsFullscreen() }

// SetFullscreen never fails on desktop; ebiten applies it on the next frame.
func (Screen) SetFullscreen(on bool) error {
	ebiten.SetFullscreen(on)
	return nil
}
