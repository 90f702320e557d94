// Command metronome-demo is a thin reference host: it wires an Engine, a
// DiscreteScheduler, and a BeatTracker together and plays the result
// through the default audio device via gopxl/beep's speaker package. It
// exists to exercise the library end to end, not as a product surface —
// the module owns no platform audio setup beyond this example.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/synthcore/synth"
)

func main() {
	bpm := flag.Float64("bpm", 120, "metronome tempo in beats per minute")
	beatsPerMeasure := flag.Int("beats", 4, "beats per measure")
	duration := flag.Duration("for", 8*time.Second, "how long to run the metronome")
	flag.Parse()

	cfg := synth.DefaultEngineConfig()
	engine := synth.NewEngine(cfg)

	sr := beep.SampleRate(int(cfg.SampleRate))
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		fmt.Fprintf(os.Stderr, "speaker init: %v\n", err)
		os.Exit(1)
	}

	speaker.Play(&engineStreamer{engine: engine})

	schedCfg := synth.SchedulerConfig{
		TempoBPM:      *bpm,
		TimeSignature: synth.TimeSignature{BeatsPerMeasure: *beatsPerMeasure, BeatUnit: 4},
	}
	scheduler := synth.NewDiscreteScheduler(schedCfg)
	tracker := synth.NewBeatTracker()

	var click synth.BeatObserver = &metronomeClick{engine: engine}
	tracker.Register(&click)

	scheduler.Start(time.Now())

	deadline := time.Now().Add(*duration)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for now := range ticker.C {
		evs := scheduler.CheckTriggers(now)
		tracker.Dispatch(evs)
		if now.After(deadline) {
			return
		}
	}
}

// metronomeClick turns each BeatEvent into a short click: a strong beat
// (beat 1 of the measure) is pitched an octave above the others.
type metronomeClick struct {
	engine *synth.Engine
}

func (m *metronomeClick) OnBeat(ev synth.BeatEvent) {
	freq := 880.0
	if !ev.IsStrong {
		freq = 440.0
	}
	env := synth.AdsrEnvelope{AttackSecs: 0.001, DecaySecs: 0.02, SustainLevel: 0.0, ReleaseSecs: 0.02}
	m.engine.TriggerNote(synth.Sine(), freq, env)
}

// engineStreamer adapts Engine's mono-buffer rendering to beep's
// interleaved-stereo Streamer interface.
type engineStreamer struct {
	engine *synth.Engine
	mono   []float32
}

func (s *engineStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if cap(s.mono) < len(samples) {
		s.mono = make([]float32, len(samples))
	}
	mono := s.mono[:len(samples)]
	s.engine.ProcessBuffer(mono)

	for i, v := range mono {
		samples[i][0] = float64(v)
		samples[i][1] = float64(v)
	}
	return len(samples), true
}

func (s *engineStreamer) Err() error { return nil }
