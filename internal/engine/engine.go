// Package engine wraps the external speech-recognition backends. Each call
// transcribes one finalized utterance; the engine blocks for the duration of
// the call and is never cancelled mid-utterance.
package engine

import (
	"context"
	"fmt"
)

// Request carries one utterance's audio plus the session hints.
type Request struct {
	Samples    []int16
	SampleRate int
	Language   string // ISO-639-1 code or "auto"
	Prompt     string // recent-context hint, at most 100 words, may be empty
}

type Engine interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}

type Config struct {
	Provider string // "whisper-cpp" or "openai"

	// whisper-cpp
	BinaryPath   string // path to whisper-cli, or "" to use PATH
	ModelPath    string
	VADModelPath string
	VADThreshold float64
	Threads      int
	TempDir      string // transient per-utterance WAV files

	// openai
	APIKey string
	Model  string
}

func New(config Config) (Engine, error) {
	switch config.Provider {
	case "whisper-cpp":
		if config.ModelPath == "" {
			return nil, fmt.Errorf("whisper-cpp model path required")
		}
		return NewWhisperCpp(config), nil
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAI(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
