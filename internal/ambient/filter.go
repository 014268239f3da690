package ambient

import (
	"math"

	"github.com/faiface/beep"
)

// Lowpass is a second-order low-pass biquad applied to both channels. The
// coefficients follow the Web Audio BiquadFilterNode "lowpass" definition,
// where Q is given in dB.
type Lowpass struct {
	Streamer beep.Streamer

	b0, b1, b2 float64
	a1, a2     float64

	// per channel: x[n-1], x[n-2], y[n-1], y[n-2]
	state [2][4]float64
}

// NewLowpass builds a filter with cutoff freq (Hz) and resonance q (dB).
func NewLowpass(s beep.Streamer, sampleRate beep.SampleRate, freq, q float64) *Lowpass {
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	cos := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * math.Pow(10, q/20))

	a0 := 1 + alpha
	return &Lowpass{
		Streamer: s,
		b0:       (1 - cos) / 2 / a0,
		b1:       (1 - cos) / a0,
		b2:       (1 - cos) / 2 / a0,
		a1:       -2 * cos / a0,
		a2:       (1 - alpha) / a0,
	}
}

func (f *Lowpass) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for ch := 0; ch < 2; ch++ {
			st := &f.state[ch]
			x := samples[i][ch]
			y := f.b0*x + f.b1*st[0] + f.b2*st[1] - f.a1*st[2] - f.a2*st[3]
			st[1], st[0] = st[0], x
			st[3], st[2] = st[2], y
			samples[i][ch] = y
		}
	}
	return n, ok
}

func (f *Lowpass) Err() error { return f.Streamer.Err() }
