// Package ambient synthesizes and plays the looping ocean-noise bed.
package ambient

import (
	"math"
	"math/rand/v2"

	"github.com/faiface/beep"
)

// LoopSeconds is the length of one generated noise cycle.
const LoopSeconds = 5

// Amplitude is the slow swell applied to the noise at time t seconds.
func Amplitude(t float64) float64 {
	return 0.4 + 0.3*math.Sin(2*math.Pi*t*0.25) + 0.2*math.Sin(2*math.Pi*t*0.125)
}

// Noise is one generated stereo cycle.
type Noise struct {
	Samples    [][2]float64
	SampleRate beep.SampleRate
}

// GenerateNoise fills sampleRate*LoopSeconds frames with uniform noise in
// [-1, 1) scaled by Amplitude. Left and right draw independently but share
// the envelope. A nil rng uses a freshly seeded source.
func GenerateNoise(sampleRate beep.SampleRate, rng *rand.Rand) *Noise {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	n := int(sampleRate) * LoopSeconds
	samples := make([][2]float64, n)
	for i := range samples {
		amp := Amplitude(float64(i) / float64(sampleRate))
		samples[i][0] = (rng.Float64()*2 - 1) * amp
		samples[i][1] = (rng.Float64()*2 - 1) * amp
	}

	return &Noise{Samples: samples, SampleRate: sampleRate}
}

// Format is the buffer format used to hold the noise.
func (n *Noise) Format() beep.Format {
	return beep.Format{SampleRate: n.SampleRate, NumChannels: 2, Precision: 2}
}

// Buffer copies the samples into a beep.Buffer.
func (n *Noise) Buffer() *beep.Buffer {
	buf := beep.NewBuffer(n.Format())
	pos := 0
	buf.Append(beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(n.Samples) {
			return 0, false
		}
		c := copy(samples, n.Samples[pos:])
		pos += c
		return c, true
	}))
	return buf
}

// Looped plays the buffer end to end forever.
func (n *Noise) Looped() beep.Streamer {
	buf := n.Buffer()
	return beep.Loop(-1, buf.Streamer(0, buf.Len()))
}
