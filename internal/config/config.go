package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/leonardotrapani/whisperflow/internal/audio"
	"github.com/leonardotrapani/whisperflow/internal/engine"
	"github.com/leonardotrapani/whisperflow/internal/output"
	"github.com/leonardotrapani/whisperflow/internal/segment"
)

type Config struct {
	Audio         AudioConfig         `toml:"audio"`
	VAD           VADConfig           `toml:"vad"`
	Engine        EngineConfig        `toml:"engine"`
	Output        OutputConfig        `toml:"output"`
	Hotkey        HotkeyConfig        `toml:"hotkey"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type AudioConfig struct {
	SampleRate        int    `toml:"sample_rate"`
	Channels          int    `toml:"channels"`
	Format            string `toml:"format"`
	ChunkSize         int    `toml:"chunk_size"`
	Device            string `toml:"device"`
	ChannelBufferSize int    `toml:"channel_buffer_size"`
}

type VADConfig struct {
	ModelPath       string        `toml:"model_path"`
	Threshold       float64       `toml:"threshold"`
	EnergyThreshold float64       `toml:"energy_threshold"`
	PauseThreshold  time.Duration `toml:"pause_threshold"`
	MinUtterance    time.Duration `toml:"min_utterance"`
}

type EngineConfig struct {
	Provider     string `toml:"provider"`
	BinaryPath   string `toml:"binary_path"`
	ModelPath    string `toml:"model_path"`
	VADModelPath string `toml:"vad_model_path"`
	Language     string `toml:"language"`
	Threads      int    `toml:"threads"`
	APIKey       string `toml:"api_key"`
	Model        string `toml:"model"`
	TempDir      string `toml:"temp_dir"`
}

type OutputConfig struct {
	Mode       string        `toml:"mode"`
	PasteDelay time.Duration `toml:"paste_delay"`
}

type HotkeyConfig struct {
	StopKey string `toml:"stop_key"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}

func (c *Config) ToRecorderConfig() audio.Config {
	return audio.Config{
		SampleRate:        c.Audio.SampleRate,
		Channels:          c.Audio.Channels,
		Format:            c.Audio.Format,
		ChunkSize:         c.Audio.ChunkSize,
		Device:            c.Audio.Device,
		ChannelBufferSize: c.Audio.ChannelBufferSize,
	}
}

func (c *Config) ToSegmenterConfig() segment.Config {
	return segment.Config{
		SampleRate:     c.Audio.SampleRate,
		ChunkSize:      c.Audio.ChunkSize,
		PauseThreshold: c.VAD.PauseThreshold,
		MinUtterance:   c.VAD.MinUtterance,
	}
}

func (c *Config) ToEngineConfig() engine.Config {
	config := engine.Config{
		Provider:     c.Engine.Provider,
		BinaryPath:   c.Engine.BinaryPath,
		ModelPath:    c.Engine.ModelPath,
		VADModelPath: c.Engine.VADModelPath,
		VADThreshold: c.VAD.Threshold,
		Threads:      c.Engine.Threads,
		TempDir:      c.Engine.TempDir,
		APIKey:       c.Engine.APIKey,
		Model:        c.Engine.Model,
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return config
}

func (c *Config) ToSinkConfig() output.Config {
	return output.Config{
		Mode:       c.Output.Mode,
		PasteDelay: c.Output.PasteDelay,
	}
}

func (c *Config) Validate() error {
	// Audio
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid audio.sample_rate: %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels != 1 {
		return fmt.Errorf("invalid audio.channels: %d (mono capture only)", c.Audio.Channels)
	}
	if c.Audio.ChunkSize <= 0 {
		return fmt.Errorf("invalid audio.chunk_size: %d", c.Audio.ChunkSize)
	}
	if c.Audio.ChannelBufferSize <= 0 {
		return fmt.Errorf("invalid audio.channel_buffer_size: %d", c.Audio.ChannelBufferSize)
	}
	if c.Audio.Format == "" {
		return fmt.Errorf("invalid audio.format: empty")
	}

	// VAD
	if c.VAD.Threshold <= 0 || c.VAD.Threshold >= 1 {
		return fmt.Errorf("invalid vad.threshold: %v (must be in (0, 1))", c.VAD.Threshold)
	}
	if c.VAD.EnergyThreshold <= 0 {
		return fmt.Errorf("invalid vad.energy_threshold: %v", c.VAD.EnergyThreshold)
	}
	if c.VAD.PauseThreshold <= 0 {
		return fmt.Errorf("invalid vad.pause_threshold: %v", c.VAD.PauseThreshold)
	}
	if c.VAD.MinUtterance <= 0 {
		return fmt.Errorf("invalid vad.min_utterance: %v", c.VAD.MinUtterance)
	}

	// Engine
	switch c.Engine.Provider {
	case "whisper-cpp":
		if c.Engine.ModelPath == "" {
			return fmt.Errorf("engine.model_path required for whisper-cpp")
		}
	case "openai":
		apiKey := c.Engine.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (engine.api_key) or environment variable (OPENAI_API_KEY)")
		}
	case "":
		return fmt.Errorf("invalid engine.provider: empty")
	default:
		return fmt.Errorf("invalid engine.provider: %s (must be whisper-cpp or openai)", c.Engine.Provider)
	}
	if c.Engine.Language != "auto" && !isValidLanguageCode(c.Engine.Language) {
		return fmt.Errorf("invalid engine.language: %s (use \"auto\" or an ISO-639-1 code like 'en', 'es', 'fr')", c.Engine.Language)
	}

	// Output
	validModes := map[string]bool{"clipboard": true, "paste": true, "fallback": true}
	if !validModes[c.Output.Mode] {
		return fmt.Errorf("invalid output.mode: %s (must be clipboard, paste, or fallback)", c.Output.Mode)
	}
	if c.Output.PasteDelay < 0 {
		return fmt.Errorf("invalid output.paste_delay: %v", c.Output.PasteDelay)
	}

	// Hotkey
	if c.Hotkey.StopKey == "" {
		return fmt.Errorf("invalid hotkey.stop_key: empty")
	}

	// Notifications
	validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
	if !validTypes[c.Notifications.Type] {
		return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
	}

	return nil
}

func isValidLanguageCode(code string) bool {
	validCodes := map[string]bool{
		"en": true, "es": true, "fr": true, "de": true, "it": true, "pt": true,
		"ru": true, "ja": true, "ko": true, "zh": true, "ar": true, "hi": true,
		"nl": true, "sv": true, "da": true, "no": true, "fi": true, "pl": true,
		"tr": true, "he": true, "th": true, "vi": true, "id": true, "ms": true,
		"uk": true, "cs": true, "hu": true, "ro": true, "bg": true, "hr": true,
		"sk": true, "sl": true, "et": true, "lv": true, "lt": true, "el": true,
		"ca": true, "eu": true, "gl": true, "is": true, "fa": true, "ur": true,
		"bn": true, "ta": true, "te": true, "ml": true, "kn": true, "mr": true,
		"sw": true, "af": true,
	}
	return validCodes[code]
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appDir := filepath.Join(configDir, "whisperflow")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config: no config file found at %s, creating with defaults", configPath)
		if err := SaveDefaultConfig(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return Load()
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return &config, nil
}

func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	configContent := `# Whisperflow Configuration
# This file is automatically generated with defaults.
# Changes apply to the next dictation session; a running session keeps the
# settings it started with.

# Audio Capture Configuration
[audio]
  sample_rate = 16000          # Audio sample rate in Hz (16000 recommended for speech)
  channels = 1                 # Mono capture only
  format = "s16"               # Audio format (s16 = 16-bit signed integers)
  chunk_size = 512             # Samples per VAD analysis chunk (512 = 32ms at 16kHz)
  device = ""                  # PipeWire audio device (empty = default microphone)
  channel_buffer_size = 32     # Chunks buffered between capture and segmentation

# Voice Activity Detection Configuration
[vad]
  model_path = ""              # Silero VAD ONNX model (empty = energy detection only)
  threshold = 0.6              # Speech probability threshold for the model
  energy_threshold = 0.01      # RMS threshold for the energy fallback
  pause_threshold = "600ms"    # Silence after speech that finalizes an utterance
  min_utterance = "500ms"      # Segments shorter than this are discarded

# Speech Recognition Engine Configuration
[engine]
  provider = "whisper-cpp"     # "whisper-cpp" (local CLI) or "openai"
  binary_path = ""             # Path to whisper-cli (empty = search PATH)
  model_path = ""              # whisper.cpp model file (e.g. ggml-large-v3-turbo.bin)
  vad_model_path = ""          # whisper.cpp VAD model for its internal VAD pass
  language = "auto"            # "auto" or an ISO-639-1 code; sticky once known
  threads = 2                  # CPU threads for local transcription
  api_key = ""                 # OpenAI API key (or set OPENAI_API_KEY)
  model = "whisper-1"          # OpenAI model name
  temp_dir = ""                # Directory for transient WAV files (empty = system temp)

# Text Output Configuration
[output]
  mode = "fallback"            # "clipboard", "paste", or "fallback"
  paste_delay = "80ms"         # Settle time between clipboard write and paste keystroke

# Stop Key Configuration
[hotkey]
  stop_key = "ctrl"            # Key that stops a recording session

# Desktop Notification Configuration
[notifications]
  enabled = true               # Enable notifications
  type = "desktop"             # "desktop", "log", or "none"

# Mode explanations:
# - "clipboard": copy each fragment to the clipboard only
# - "paste": copy and send a paste keystroke into the focused application
# - "fallback": try pasting, leave text on the clipboard if the keystroke fails
`

	if _, err := file.WriteString(configContent); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}

	return nil
}
