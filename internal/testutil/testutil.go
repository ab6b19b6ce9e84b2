package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/config"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	return &config.Config{
		Audio: config.AudioConfig{
			SampleRate:        16000,
			Channels:          1,
			Format:            "s16",
			ChunkSize:         512,
			Device:            "",
			ChannelBufferSize: 32,
		},
		VAD: config.VADConfig{
			ModelPath:       "",
			Threshold:       0.6,
			EnergyThreshold: 0.01,
			PauseThreshold:  600 * time.Millisecond,
			MinUtterance:    500 * time.Millisecond,
		},
		Engine: config.EngineConfig{
			Provider:  "whisper-cpp",
			ModelPath: "/tmp/ggml-test.bin",
			Language:  "auto",
			Threads:   2,
		},
		Output: config.OutputConfig{
			Mode:       "fallback",
			PasteDelay: 80 * time.Millisecond,
		},
		Hotkey: config.HotkeyConfig{
			StopKey: "ctrl",
		},
		Notifications: config.NotificationsConfig{
			Enabled: true,
			Type:    "log",
		},
	}
}

// TestConfigWithInvalidValues returns a config with invalid values for testing validation
func TestConfigWithInvalidValues() *config.Config {
	return &config.Config{
		Audio: config.AudioConfig{
			SampleRate:        0,  // Invalid
			Channels:          0,  // Invalid
			Format:            "", // Invalid
			ChunkSize:         0,  // Invalid
			ChannelBufferSize: 0,  // Invalid
		},
		VAD: config.VADConfig{
			Threshold:       0, // Invalid
			EnergyThreshold: 0, // Invalid
			PauseThreshold:  0, // Invalid
			MinUtterance:    0, // Invalid
		},
		Engine: config.EngineConfig{
			Provider: "", // Invalid
		},
		Output: config.OutputConfig{
			Mode: "invalid", // Invalid
		},
		Hotkey: config.HotkeyConfig{
			StopKey: "", // Invalid
		},
		Notifications: config.NotificationsConfig{
			Type: "invalid", // Invalid
		},
	}
}

// CreateTempConfigFile creates a temporary config file for testing
func CreateTempConfigFile(t *testing.T, configContent string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// Silence returns n zero samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// Tone returns n samples of a sine wave at the given frequency and
// normalized amplitude, loud enough to register as speech for the energy
// detector when amplitude is well above its threshold.
func Tone(n int, freq float64, amplitude float64, sampleRate int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		samples[i] = int16(v * 32767)
	}
	return samples
}

// SpeechChunk returns one 512-sample chunk that classifies as speech under
// the default energy threshold.
func SpeechChunk() []int16 {
	return Tone(512, 440, 0.5, 16000)
}

// SilenceChunk returns one 512-sample chunk of silence.
func SilenceChunk() []int16 {
	return Silence(512)
}
