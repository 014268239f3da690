package ambient

import (
	"fmt"

	"github.com/faiface/beep"
)

const (
	BackendSpeaker = "speaker"
	BackendMalgo   = "malgo"
)

// Output is an audio sink that mixes streamers onto a device.
type Output interface {
	Init(sampleRate beep.SampleRate) error
	Resume() error
	Suspend() error
	Play(s beep.Streamer)
	Close() error
}

// NewOutput returns the output for a configured backend name.
func NewOutput(backend string) (Output, error) {
	switch backend {
	case BackendSpeaker, "":
		return SpeakerOutput{}, nil
	case BackendMalgo:
		return &MalgoOutput{}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", backend)
	}
}
