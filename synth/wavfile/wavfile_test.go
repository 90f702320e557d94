package wavfile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildMonoWAV hand-assembles a minimal 16-bit PCM mono RIFF/WAVE file
// containing the given samples, for tests that need a decodable WAV
// without reading one off disk.
func buildMonoWAV(sampleRate uint32, samples []int16) []byte {
	dataSize := uint32(len(samples) * 2)
	var buf bytes.Buffer

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16)) // subchunk1 size
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))  // mono
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	byteRate := sampleRate * 1 * 16 / 8
	binary.Write(&buf, binary.LittleEndian, byteRate)
	binary.Write(&buf, binary.LittleEndian, uint16(2))  // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16)) // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, s)
	}

	return buf.Bytes()
}

// TestLoadDecodesSampleRateAndFrameCount verifies Load reports the
// source file's sample rate and yields one frame per encoded sample.
func TestLoadDecodesSampleRateAndFrameCount(t *testing.T) {
	raw := buildMonoWAV(8000, []int16{0, 16384, -16384, 32767, -32768})
	data, err := Load(bytes.NewReader(raw), "tone.wav", 220)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if data.SourceRateHz != 8000 {
		t.Errorf("SourceRateHz = %v, want 8000", data.SourceRateHz)
	}
	if data.BaseFrequencyHz != 220 {
		t.Errorf("BaseFrequencyHz = %v, want 220", data.BaseFrequencyHz)
	}
	if data.Name != "tone.wav" {
		t.Errorf("Name = %q, want %q", data.Name, "tone.wav")
	}
	if len(data.Samples) != 5 {
		t.Fatalf("got %d samples, want 5", len(data.Samples))
	}
}

// TestLoadNormalizesAmplitude verifies decoded samples land within
// [-1, 1], matching int16 full-scale mapped to normalized float.
func TestLoadNormalizesAmplitude(t *testing.T) {
	raw := buildMonoWAV(44100, []int16{32767, -32768, 0})
	data, err := Load(bytes.NewReader(raw), "scale.wav", 0)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	for i, s := range data.Samples {
		if s < -1.0 || s > 1.0 {
			t.Errorf("sample %d = %v out of [-1,1]", i, s)
		}
	}
	if data.Samples[0] < 0.9 {
		t.Errorf("expected near-full-scale positive sample, got %v", data.Samples[0])
	}
	if data.Samples[1] > -0.9 {
		t.Errorf("expected near-full-scale negative sample, got %v", data.Samples[1])
	}
}

// TestLoadRejectsGarbageInput verifies a malformed byte stream produces
// an error rather than a panic.
func TestLoadRejectsGarbageInput(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not a wav file at all")), "garbage.wav", 0)
	if err == nil {
		t.Error("expected an error decoding garbage input")
	}
}
