package vad

import (
	"fmt"
	"sync"

	"github.com/streamer45/silero-vad-go/speech"
)

// Silero classifies chunks with the Silero VAD model through onnxruntime.
// A chunk is speech iff the model reports a speech segment for it, i.e. the
// speech probability exceeded the configured threshold.
type Silero struct {
	mu       sync.Mutex // the underlying detector is not safe for concurrent use
	detector *speech.Detector
}

func NewSilero(modelPath string, sampleRate int, threshold float32) (*Silero, error) {
	sd, err := speech.NewDetector(speech.DetectorConfig{
		ModelPath:            modelPath,
		SampleRate:           sampleRate,
		Threshold:            threshold,
		MinSilenceDurationMs: 0,
		SpeechPadMs:          0,
	})
	if err != nil {
		return nil, fmt.Errorf("create silero detector: %w", err)
	}
	return &Silero{detector: sd}, nil
}

func (s *Silero) Classify(chunk []int16) (bool, error) {
	samples := normalize(chunk)

	s.mu.Lock()
	defer s.mu.Unlock()

	segments, err := s.detector.Detect(samples)
	if err != nil {
		return false, fmt.Errorf("silero detect: %w", err)
	}
	if err := s.detector.Reset(); err != nil {
		return false, fmt.Errorf("silero reset: %w", err)
	}
	return len(segments) > 0, nil
}

func (s *Silero) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detector == nil {
		return nil
	}
	err := s.detector.Destroy()
	s.detector = nil
	return err
}
