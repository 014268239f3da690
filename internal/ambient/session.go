package ambient

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/faiface/beep"
	"github.com/rs/zerolog/log"
)

const tapRingSize = 4096

// ContextFactory opens a new audio Context.
type ContextFactory func() (*Context, error)

// NewContextFactory returns a factory that opens backend at sampleRate.
func NewContextFactory(backend string, sampleRate beep.SampleRate) ContextFactory {
	return func() (*Context, error) {
		out, err := NewOutput(backend)
		if err != nil {
			return nil, err
		}
		return NewContext(out, sampleRate)
	}
}

// Session is the Stopped/Playing state machine behind the sound toggle.
// It owns at most one Graph at a time and reuses a single Context, created
// on first start, for every session after that.
type Session struct {
	newContext ContextFactory
	rng        func() *rand.Rand
	audio      *Context
	graph      *Graph
	tap        *tap
	mu         sync.Mutex
}

// NewSession creates a stopped session. No audio device is touched until
// the first Start.
func NewSession(factory ContextFactory) *Session {
	return &Session{newContext: factory}
}

// IsPlaying reports whether a graph is active.
func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph != nil
}

// Toggle stops a playing session or starts a stopped one, and returns
// whether it is playing afterwards. Failures are logged.
func (s *Session) Toggle(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph != nil {
		s.stopLocked()
		return false
	}
	if err := s.startLocked(ctx); err != nil {
		log.Error().Err(err).Msg("error playing ocean sound")
		return false
	}
	return true
}

// Start begins playback unless already playing.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph != nil {
		return nil
	}
	return s.startLocked(ctx)
}

// Stop ends playback. It always leaves the session stopped.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Close stops playback and releases the audio context.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if s.audio == nil {
		return nil
	}
	err := s.audio.Close()
	s.audio = nil
	return err
}

// Level is the RMS of the most recent output, 0 when stopped.
func (s *Session) Level(n int) float64 {
	s.mu.Lock()
	t := s.tap
	s.mu.Unlock()
	if t == nil {
		return 0
	}
	return rms(t.snapshot(n))
}

// Recent returns the last n output samples, oldest first.
func (s *Session) Recent(n int) [][2]float64 {
	s.mu.Lock()
	t := s.tap
	s.mu.Unlock()
	if t == nil {
		return nil
	}
	return t.snapshot(n)
}

func (s *Session) startLocked(ctx context.Context) error {
	if s.audio == nil {
		audio, err := s.newContext()
		if err != nil {
			return fmt.Errorf("failed to create audio context: %w", err)
		}
		s.audio = audio
		log.Info().Int("sample_rate", int(audio.SampleRate())).Msg("audio context created")
	}

	if s.audio.State() == Suspended {
		if err := s.audio.Resume(ctx); err != nil {
			return err
		}
	}

	var rng *rand.Rand
	if s.rng != nil {
		rng = s.rng()
	}
	graph := NewGraph(GenerateNoise(s.audio.SampleRate(), rng))
	t := newTap(graph, tapRingSize)

	if err := s.audio.Play(t); err != nil {
		_ = graph.Stop()
		return fmt.Errorf("failed to start playback: %w", err)
	}

	s.graph = graph
	s.tap = t
	log.Info().Msg("ocean sound started")
	return nil
}

func (s *Session) stopLocked() {
	if s.graph == nil {
		return
	}
	if err := s.graph.Stop(); err != nil {
		if errors.Is(err, ErrGraphStopped) {
			log.Debug().Err(err).Msg("error stopping source")
		} else {
			log.Warn().Err(err).Msg("error stopping source")
		}
	}
	s.graph = nil
	s.tap = nil
	log.Info().Msg("ocean sound stopped")
}
