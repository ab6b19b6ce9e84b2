package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteWAV_RoundTrip(t *testing.T) {
	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(i - 800)
	}

	path, err := WriteWAV(t.TempDir(), samples, 16000)
	if err != nil {
		t.Fatalf("WriteWAV() error: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasPrefix(filepath.Base(path), "utterance_") {
		t.Errorf("unexpected file name: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open wav: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode wav: %v", err)
	}

	if dec.SampleRate != 16000 {
		t.Errorf("sample rate = %d, want 16000", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("channels = %d, want 1", dec.NumChans)
	}
	if dec.BitDepth != 16 {
		t.Errorf("bit depth = %d, want 16", dec.BitDepth)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, want := range samples {
		if int16(buf.Data[i]) != want {
			t.Fatalf("sample %d = %d, want %d", i, buf.Data[i], want)
		}
	}
}

func TestWriteWAV_EmptySamples(t *testing.T) {
	_, err := WriteWAV(t.TempDir(), nil, 16000)
	if err == nil {
		t.Fatal("expected error for empty samples")
	}
}

func TestWriteWAV_UniquePaths(t *testing.T) {
	dir := t.TempDir()
	samples := make([]int16, 512)

	a, err := WriteWAV(dir, samples, 16000)
	if err != nil {
		t.Fatalf("WriteWAV() error: %v", err)
	}
	b, err := WriteWAV(dir, samples, 16000)
	if err != nil {
		t.Fatalf("WriteWAV() error: %v", err)
	}
	if a == b {
		t.Errorf("expected unique file names, both were %s", a)
	}
}

func TestEncodeWAV_Header(t *testing.T) {
	samples := []int16{0, 1000, -1000, 32767}
	data := EncodeWAV(samples, 16000)

	if string(data[0:4]) != "RIFF" {
		t.Errorf("missing RIFF magic")
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("missing WAVE magic")
	}
	if string(data[36:40]) != "data" {
		t.Errorf("missing data chunk")
	}

	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("channels = %d, want 1", channels)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Errorf("bits per sample = %d, want 16", bits)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); size != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", size, len(samples)*2)
	}
	if len(data) != 44+len(samples)*2 {
		t.Errorf("total size = %d, want %d", len(data), 44+len(samples)*2)
	}

	// First payload sample round-trips.
	if s := int16(binary.LittleEndian.Uint16(data[46:48])); s != 1000 {
		t.Errorf("second sample = %d, want 1000", s)
	}
}
