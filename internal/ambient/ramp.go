package ambient

import (
	"time"

	"github.com/faiface/beep"
)

// GainRamp scales its input by a gain that rises linearly from 0 to Target
// over the first rampLen samples and holds there.
type GainRamp struct {
	Streamer beep.Streamer
	Target   float64
	rampLen  int
	pos      int
}

// NewGainRamp ramps s up to target over d.
func NewGainRamp(s beep.Streamer, sampleRate beep.SampleRate, target float64, d time.Duration) *GainRamp {
	return &GainRamp{
		Streamer: s,
		Target:   target,
		rampLen:  sampleRate.N(d),
	}
}

// Gain is the multiplier applied to the next sample.
func (g *GainRamp) Gain() float64 {
	if g.rampLen <= 0 || g.pos >= g.rampLen {
		return g.Target
	}
	return g.Target * float64(g.pos) / float64(g.rampLen)
}

func (g *GainRamp) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := g.Gain()
		samples[i][0] *= gain
		samples[i][1] *= gain
		if g.pos < g.rampLen {
			g.pos++
		}
	}
	return n, ok
}

func (g *GainRamp) Err() error { return g.Streamer.Err() }
