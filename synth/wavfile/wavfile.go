// Package wavfile loads WAV audio into the immutable sample buffers
// synth's sample-playback voices render. It is the only place in this
// module that decodes a wire format — synth itself never does I/O. Load
// reads from an io.Reader; opening a file is left to the caller.
package wavfile

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/synthcore/synth"
)

// Load decodes WAV data from r into a *synth.SampleData. Stereo input is
// collapsed to its left channel — synth voices are mono sources, mixed
// down to a single output by the engine. baseFrequencyHz is the pitch
// the recording is assumed to represent; pass 0 to fall back to
// synth.DefaultBaseFrequencyHz.
func Load(r io.Reader, name string, baseFrequencyHz float64) (*synth.SampleData, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("wavfile: decode %q: %w", name, err)
	}
	defer streamer.Close()

	samples := drain(streamer)

	return &synth.SampleData{
		Samples:         samples,
		SourceRateHz:    float64(format.SampleRate),
		BaseFrequencyHz: baseFrequencyHz,
		Name:            name,
	}, nil
}

// drain reads every frame out of streamer, collapsing to mono (left
// channel) float32 in [-1, 1]. beep streamers decode to float64 stereo
// pairs regardless of the source file's channel count or bit depth.
func drain(streamer beep.Streamer) []float32 {
	const chunkFrames = 4096
	buf := make([][2]float64, chunkFrames)

	var out []float32
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, float32(buf[i][0]))
		}
		if !ok {
			break
		}
	}
	return out
}
