package engine

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/audio"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI transcribes utterances through the OpenAI audio API. The WAV blob
// is built in memory; no temp file is needed.
type OpenAI struct {
	client *openai.Client
	config Config
}

func NewOpenAI(config Config) *OpenAI {
	if config.Model == "" {
		config.Model = openai.Whisper1
	}
	return &OpenAI{
		client: openai.NewClient(config.APIKey),
		config: config,
	}
}

func (e *OpenAI) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.Samples) == 0 {
		return "", nil
	}

	wavData := audio.EncodeWAV(req.Samples, req.SampleRate)

	// The API auto-detects when no language is given.
	lang := req.Language
	if lang == "auto" {
		lang = ""
	}

	apiReq := openai.AudioRequest{
		Model:    e.config.Model,
		Reader:   bytes.NewReader(wavData),
		FilePath: "utterance.wav",
		Language: lang,
		Prompt:   req.Prompt,
	}

	start := time.Now()
	resp, err := e.client.CreateTranscription(ctx, apiReq)
	duration := time.Since(start)

	if err != nil {
		log.Printf("Engine: OpenAI call failed after %v: %v", duration, err)
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	log.Printf("Engine: transcribed %d samples in %v: %q", len(req.Samples), duration, resp.Text)
	return resp.Text, nil
}
