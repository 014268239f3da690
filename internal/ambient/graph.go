package ambient

import (
	"errors"
	"sync"
	"time"

	"github.com/faiface/beep"
)

const (
	firstCutoff  = 1200.0
	firstQ       = 0.5
	secondCutoff = 600.0
	secondQ      = 1.0

	// TargetGain is the level the fade-in settles on.
	TargetGain = 0.3
	// FadeIn is how long the gain takes to reach TargetGain.
	FadeIn = 500 * time.Millisecond
)

// ErrGraphStopped is returned when stopping a graph that already stopped.
var ErrGraphStopped = errors.New("audio graph already stopped")

// Graph is one playback session's signal chain:
// looping source -> low-pass 1200 Hz -> low-pass 600 Hz -> gain ramp.
//
// Graph is itself the streamer handed to the output. Once stopped it streams
// nothing and reports drained, so the output drops it.
type Graph struct {
	source  beep.Streamer
	filter1 *Lowpass
	filter2 *Lowpass
	gain    *GainRamp
	mu      sync.Mutex
	stopped bool
}

// NewGraph wires noise through the filter chain and fade-in.
func NewGraph(noise *Noise) *Graph {
	sr := noise.SampleRate
	source := noise.Looped()
	f1 := NewLowpass(source, sr, firstCutoff, firstQ)
	f2 := NewLowpass(f1, sr, secondCutoff, secondQ)
	gain := NewGainRamp(f2, sr, TargetGain, FadeIn)

	return &Graph{
		source:  source,
		filter1: f1,
		filter2: f2,
		gain:    gain,
	}
}

func (g *Graph) Stream(samples [][2]float64) (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return 0, false
	}
	return g.gain.Stream(samples)
}

func (g *Graph) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gain == nil {
		return nil
	}
	return g.gain.Err()
}

// Stop disconnects every node. A second call returns ErrGraphStopped.
func (g *Graph) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return ErrGraphStopped
	}
	g.stopped = true
	g.source = nil
	g.filter1 = nil
	g.filter2 = nil
	g.gain = nil
	return nil
}

// Stopped reports whether Stop has run.
func (g *Graph) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// Gain is the current fade-in multiplier.
func (g *Graph) Gain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gain == nil {
		return 0
	}
	return g.gain.Gain()
}
