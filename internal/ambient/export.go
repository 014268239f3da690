package ambient

import (
	"fmt"
	"math/rand/v2"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/spf13/afero"
)

// WriteWAV renders one loop cycle through a fresh graph into a 16-bit
// stereo WAV file at path.
func WriteWAV(fs afero.Fs, path string, sampleRate beep.SampleRate, rng *rand.Rand) error {
	noise := GenerateNoise(sampleRate, rng)
	graph := NewGraph(noise)
	defer func() { _ = graph.Stop() }()

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := wav.Encode(f, beep.Take(len(noise.Samples), graph), noise.Format()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
