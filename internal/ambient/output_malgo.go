package ambient

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/faiface/beep"
	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"
)

// MalgoOutput plays through a miniaudio device. Streamers are mixed in a
// beep.Mixer that the device callback drains.
type MalgoOutput struct {
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	samples [][2]float64
	mixer   beep.Mixer
	mu      sync.Mutex
}

func (o *MalgoOutput) Init(sampleRate beep.SampleRate) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	if mctx == nil {
		return errors.New("malgo context is nil after initialization")
	}

	// F32 format avoids buggy S16->S32 conversion in miniaudio on PulseAudio
	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatF32
	cfg.Playback.Channels = 2
	cfg.SampleRate = uint32(sampleRate)
	cfg.Alsa.NoMMap = 1

	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: o.onSamples,
	})
	if err != nil {
		_ = mctx.Uninit()
		mctx.Free()
		return fmt.Errorf("failed to initialize audio device: %w", err)
	}

	o.ctx = mctx
	o.device = device
	return nil
}

func (o *MalgoOutput) onSamples(out, _ []byte, frameCount uint32) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.samples) < int(frameCount) {
		o.samples = make([][2]float64, frameCount)
	}
	buf := o.samples[:frameCount]
	n, _ := o.mixer.Stream(buf)

	// beep's [][2]float64 -> interleaved F32 PCM
	offset := 0
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(out[offset:], math.Float32bits(float32(buf[i][0])))
		offset += 4
		binary.LittleEndian.PutUint32(out[offset:], math.Float32bits(float32(buf[i][1])))
		offset += 4
	}
	for i := offset; i < len(out); i++ {
		out[i] = 0
	}
}

func (o *MalgoOutput) Resume() error {
	if o.device == nil {
		return errors.New("audio device not initialized")
	}
	if o.device.IsStarted() {
		return nil
	}
	if err := o.device.Start(); err != nil {
		return fmt.Errorf("failed to start audio device: %w", err)
	}
	return nil
}

func (o *MalgoOutput) Suspend() error {
	if o.device == nil || !o.device.IsStarted() {
		return nil
	}
	if err := o.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop audio device: %w", err)
	}
	return nil
}

func (o *MalgoOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mixer.Add(s)
}

// Active is the number of streamers still mixed.
func (o *MalgoOutput) Active() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}

func (o *MalgoOutput) Close() error {
	if o.device != nil {
		if err := o.Suspend(); err != nil {
			log.Warn().Err(err).Msg("failed to stop audio device on close")
		}
		o.device.Uninit()
		o.device = nil
	}
	if o.ctx != nil {
		if err := o.ctx.Uninit(); err != nil {
			log.Warn().Err(err).Msg("failed to uninit malgo context")
		}
		o.ctx.Free()
		o.ctx = nil
	}

	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
	return nil
}
