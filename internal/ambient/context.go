package ambient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/faiface/beep"
)

// State is the run state of a Context.
type State int

const (
	Suspended State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrContextClosed is returned by operations on a closed Context.
var ErrContextClosed = errors.New("audio context closed")

// Context owns an initialized Output. It starts suspended.
type Context struct {
	out        Output
	sampleRate beep.SampleRate
	state      State
	mu         sync.Mutex
}

// NewContext initializes out at sampleRate.
func NewContext(out Output, sampleRate beep.SampleRate) (*Context, error) {
	if err := out.Init(sampleRate); err != nil {
		return nil, fmt.Errorf("failed to initialize audio output: %w", err)
	}
	return &Context{out: out, sampleRate: sampleRate}, nil
}

// SampleRate is the rate the output was initialized with.
func (c *Context) SampleRate() beep.SampleRate { return c.sampleRate }

// State returns the current run state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Resume starts the output if it is suspended.
func (c *Context) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Running:
		return nil
	case Closed:
		return ErrContextClosed
	}
	if err := c.out.Resume(); err != nil {
		return fmt.Errorf("failed to resume audio output: %w", err)
	}
	c.state = Running
	return nil
}

// Suspend pauses the output device.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Suspended:
		return nil
	case Closed:
		return ErrContextClosed
	}
	if err := c.out.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend audio output: %w", err)
	}
	c.state = Suspended
	return nil
}

// Play queues s on the output.
func (c *Context) Play(s beep.Streamer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Closed {
		return ErrContextClosed
	}
	c.out.Play(s)
	return nil
}

// Close releases the output. Further calls are no-ops.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Closed {
		return nil
	}
	c.state = Closed
	if err := c.out.Close(); err != nil {
		return fmt.Errorf("failed to close audio output: %w", err)
	}
	return nil
}
