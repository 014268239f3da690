package ambient

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SpeakerOutput plays through the beep speaker package. The speaker keeps
// pulling from its mixer once initialized, so Resume and Suspend have
// nothing to do.
type SpeakerOutput struct{}

func (SpeakerOutput) Init(sampleRate beep.SampleRate) error {
	return speaker.Init(sampleRate, sampleRate.N(time.Second/20))
}

func (SpeakerOutput) Resume() error  { return nil }
func (SpeakerOutput) Suspend() error { return nil }

func (SpeakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (SpeakerOutput) Close() error {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}
