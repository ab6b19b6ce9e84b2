package engine

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/audio"
)

// WhisperCpp invokes the local whisper-cli binary once per utterance with a
// transient WAV file. The decoding flags are fixed, tuned for low-latency
// live dictation.
type WhisperCpp struct {
	config Config
}

func NewWhisperCpp(config Config) *WhisperCpp {
	if config.VADThreshold == 0 {
		config.VADThreshold = 0.6
	}
	if config.Threads == 0 {
		config.Threads = 2
	}
	return &WhisperCpp{config: config}
}

func (e *WhisperCpp) Transcribe(ctx context.Context, req Request) (string, error) {
	if len(req.Samples) == 0 {
		return "", nil
	}

	if _, err := os.Stat(e.config.ModelPath); os.IsNotExist(err) {
		return "", fmt.Errorf("model file not found: %s", e.config.ModelPath)
	}

	binary := e.config.BinaryPath
	if binary == "" {
		path, err := exec.LookPath("whisper-cli")
		if err != nil {
			return "", fmt.Errorf("whisper-cli not found: install whisper.cpp first")
		}
		binary = path
	}

	wavPath, err := audio.WriteWAV(e.config.TempDir, req.Samples, req.SampleRate)
	if err != nil {
		return "", fmt.Errorf("write temp wav: %w", err)
	}
	defer os.Remove(wavPath)

	lang := req.Language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"--model", e.config.ModelPath,
		"--file", wavPath,
		"--language", lang,
		"--beam-size", "1",
		"--no-timestamps",
		"--max-context", "1024",
		"--max-len", "500",
		"--audio-ctx", "1000",
		"--split-on-word",
		"--threads", strconv.Itoa(e.config.Threads),
		"--no-fallback",
		"--temperature", "0.0",
	}
	if e.config.VADModelPath != "" {
		args = append(args,
			"--vad",
			"--vad-model", e.config.VADModelPath,
			"--vad-threshold", strconv.FormatFloat(e.config.VADThreshold, 'f', -1, 64),
		)
	}
	if req.Prompt != "" {
		args = append(args, "--prompt", req.Prompt)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("Engine: whisper-cli failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return "", fmt.Errorf("whisper-cli failed: %w", err)
	}

	// With --no-timestamps whisper-cli prints the transcription text directly.
	text := strings.TrimSpace(stdout.String())

	log.Printf("Engine: transcribed %d samples in %v: %q", len(req.Samples), duration, text)
	return text, nil
}
