package ambient

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(1000)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// constant streams v on both channels forever.
func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

// alternating streams +1, -1, +1, ... (the Nyquist frequency).
func alternating() beep.Streamer {
	sign := 1.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{sign, sign}
			sign = -sign
		}
		return len(samples), true
	})
}

func TestAmplitude(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.4, Amplitude(0), 1e-12)
	assert.InDelta(t, 0.4+0.3+0.2*math.Sin(math.Pi/4), Amplitude(1), 1e-12)
	assert.InDelta(t, 0.4+0.2, Amplitude(2), 1e-12)
	assert.InDelta(t, Amplitude(0.3), Amplitude(8.3), 1e-9, "envelope repeats every 8s")
}

func TestGenerateNoise(t *testing.T) {
	t.Parallel()

	n := GenerateNoise(testRate, seeded())
	require.Len(t, n.Samples, int(testRate)*LoopSeconds)

	differ := 0
	for i, s := range n.Samples {
		amp := math.Abs(Amplitude(float64(i) / float64(testRate)))
		assert.LessOrEqual(t, math.Abs(s[0]), amp)
		assert.LessOrEqual(t, math.Abs(s[1]), amp)
		if s[0] != s[1] {
			differ++
		}
	}
	assert.Greater(t, differ, len(n.Samples)*9/10, "channels draw independently")

	again := GenerateNoise(testRate, seeded())
	assert.Equal(t, n.Samples, again.Samples)

	fresh := GenerateNoise(testRate, nil)
	assert.NotEqual(t, n.Samples, fresh.Samples)
}

func TestLoopedNoiseNeverDrains(t *testing.T) {
	t.Parallel()

	n := GenerateNoise(testRate, seeded())
	s := n.Looped()

	buf := make([][2]float64, 1000)
	total := 0
	for total < 3*len(n.Samples) {
		c, ok := s.Stream(buf)
		require.True(t, ok)
		total += c
	}
}

func TestLowpassPassesDC(t *testing.T) {
	t.Parallel()

	f := NewLowpass(constant(1), 44100, 600, 1)
	buf := make([][2]float64, 44100)
	_, ok := f.Stream(buf)
	require.True(t, ok)

	assert.InDelta(t, 1.0, buf[len(buf)-1][0], 1e-6)
	assert.InDelta(t, 1.0, buf[len(buf)-1][1], 1e-6)
}

func TestLowpassBlocksNyquist(t *testing.T) {
	t.Parallel()

	f := NewLowpass(alternating(), 44100, 1200, 0.5)
	buf := make([][2]float64, 4096)
	_, _ = f.Stream(buf)

	peak := 0.0
	for _, s := range buf[2048:] {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	assert.Less(t, peak, 1e-3)
}

func TestGainRamp(t *testing.T) {
	t.Parallel()

	g := NewGainRamp(constant(1), testRate, 0.3, 500*time.Millisecond)
	assert.InDelta(t, 0, g.Gain(), 1e-12)

	buf := make([][2]float64, 800)
	_, ok := g.Stream(buf)
	require.True(t, ok)

	assert.InDelta(t, 0, buf[0][0], 1e-12)
	assert.InDelta(t, 0.15, buf[250][0], 1e-12)
	assert.InDelta(t, 0.3, buf[500][0], 1e-12)
	assert.InDelta(t, 0.3, buf[799][1], 1e-12)
	for i := 1; i < 500; i++ {
		assert.Greater(t, buf[i][0], buf[i-1][0])
	}
	assert.InDelta(t, 0.3, g.Gain(), 1e-12)
}

func TestGraphStop(t *testing.T) {
	t.Parallel()

	g := NewGraph(GenerateNoise(testRate, seeded()))
	buf := make([][2]float64, 256)

	n, ok := g.Stream(buf)
	assert.Equal(t, 256, n)
	assert.True(t, ok)
	assert.Greater(t, g.Gain(), 0.0)

	require.NoError(t, g.Stop())
	assert.True(t, g.Stopped())
	require.ErrorIs(t, g.Stop(), ErrGraphStopped)

	n, ok = g.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
	assert.NoError(t, g.Err())
	assert.Zero(t, g.Gain())
}

func TestGraphOutputIsFilteredAndQuiet(t *testing.T) {
	t.Parallel()

	g := NewGraph(GenerateNoise(testRate*44, seeded()))
	buf := make([][2]float64, 44000)
	_, _ = g.Stream(buf)

	for _, s := range buf[22050:] {
		assert.LessOrEqual(t, math.Abs(s[0]), 0.5)
	}
	assert.Greater(t, rms(buf[22050:]), 0.0)
}

func TestTapSnapshot(t *testing.T) {
	t.Parallel()

	i := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			i++
			samples[k] = [2]float64{i, -i}
		}
		return len(samples), true
	})
	tp := newTap(src, 8)
	_, _ = tp.Stream(make([][2]float64, 11))

	got := tp.snapshot(3)
	assert.Equal(t, [][2]float64{{9, -9}, {10, -10}, {11, -11}}, got)
	assert.Len(t, tp.snapshot(100), 8)
}

func TestRMS(t *testing.T) {
	t.Parallel()

	assert.Zero(t, rms(nil))
	assert.InDelta(t, 0.5, rms([][2]float64{{0.5, 0.5}, {-0.5, -0.5}}), 1e-12)
}

func TestWriteWAV(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, WriteWAV(fs, "/ocean.wav", testRate, seeded()))

	info, err := fs.Stat("/ocean.wav")
	require.NoError(t, err)
	// 44 byte header + frames * 2 channels * 2 bytes
	assert.Equal(t, int64(44+int(testRate)*LoopSeconds*4), info.Size())

	data, err := afero.ReadFile(fs, "/ocean.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestNewOutput(t *testing.T) {
	t.Parallel()

	out, err := NewOutput(BackendSpeaker)
	require.NoError(t, err)
	assert.IsType(t, SpeakerOutput{}, out)

	out, err = NewOutput(BackendMalgo)
	require.NoError(t, err)
	assert.IsType(t, &MalgoOutput{}, out)

	_, err = NewOutput("pulse")
	assert.Error(t, err)
}
