// Package segment turns a continuous chunk stream into finalized utterances
// using pause detection over per-chunk VAD results.
package segment

import (
	"log"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/vad"
)

// Utterance is a finalized speech segment queued for transcription. Seq is
// assigned in finalize order, which equals chronological speech order.
type Utterance struct {
	Samples []int16
	Seq     uint64
}

// Duration returns the audio length at the given sample rate.
func (u Utterance) Duration(sampleRate int) time.Duration {
	return time.Duration(len(u.Samples)) * time.Second / time.Duration(sampleRate)
}

type Config struct {
	SampleRate     int
	ChunkSize      int
	PauseThreshold time.Duration // continuous silence after speech that finalizes a segment
	MinUtterance   time.Duration // buffers shorter than this are discarded
}

func DefaultConfig() Config {
	return Config{
		SampleRate:     16000,
		ChunkSize:      vad.WindowSize,
		PauseThreshold: 600 * time.Millisecond,
		MinUtterance:   500 * time.Millisecond,
	}
}

// Segmenter accumulates samples, classifies each fixed-size chunk through
// the detector, and emits an Utterance when speech is followed by a pause of
// at least PauseThreshold. It is not safe for concurrent use: the pipeline
// funnels all chunks through a single consumer goroutine.
type Segmenter struct {
	cfg      Config
	detector vad.Detector
	emit     func(Utterance)
	now      func() time.Time

	buffer  []int16 // samples since the last finalized utterance
	partial []int16 // tail smaller than one analysis chunk

	seq              uint64
	speechInSession  bool
	speechSinceReset bool
	silenceStart     time.Time // zero while speaking or idle
}

func New(cfg Config, detector vad.Detector, emit func(Utterance)) *Segmenter {
	return &Segmenter{
		cfg:      cfg,
		detector: detector,
		emit:     emit,
		now:      time.Now,
	}
}

// Push appends captured samples and processes every complete analysis chunk.
func (s *Segmenter) Push(samples []int16) {
	s.partial = append(s.partial, samples...)

	for len(s.partial) >= s.cfg.ChunkSize {
		chunk := s.partial[:s.cfg.ChunkSize]
		s.processChunk(chunk)
		s.buffer = append(s.buffer, chunk...)
		s.partial = s.partial[s.cfg.ChunkSize:]
	}
}

func (s *Segmenter) processChunk(chunk []int16) {
	speech, err := s.detector.Classify(chunk)
	if err != nil {
		log.Printf("Segmenter: classification error, treating chunk as silence: %v", err)
		speech = false
	}

	now := s.now()

	if speech {
		s.speechInSession = true
		s.speechSinceReset = true
		s.silenceStart = time.Time{}
	} else if s.speechSinceReset && s.silenceStart.IsZero() {
		s.silenceStart = now
	}

	if !s.silenceStart.IsZero() &&
		now.Sub(s.silenceStart) >= s.cfg.PauseThreshold &&
		s.speechSinceReset &&
		len(s.buffer) > 0 {
		s.finalizeSegment()
	}
}

// Finalize flushes any remaining buffered speech at session end, applying
// the same speech-presence and minimum-duration checks as a pause-triggered
// finalize. Calling it with an empty buffer is a no-op.
func (s *Segmenter) Finalize() {
	s.buffer = append(s.buffer, s.partial...)
	s.partial = nil

	if len(s.buffer) == 0 {
		return
	}
	s.finalizeSegment()
}

func (s *Segmenter) finalizeSegment() {
	defer s.reset()

	if !s.speechInSession {
		log.Printf("Segmenter: no speech detected in session, discarding %d samples", len(s.buffer))
		return
	}

	duration := time.Duration(len(s.buffer)) * time.Second / time.Duration(s.cfg.SampleRate)
	if duration < s.cfg.MinUtterance {
		log.Printf("Segmenter: segment too short (%v), discarding", duration)
		return
	}

	utt := Utterance{
		Samples: append([]int16(nil), s.buffer...),
		Seq:     s.seq,
	}
	s.seq++

	log.Printf("Segmenter: finalized utterance #%d (%v)", utt.Seq, duration)
	s.emit(utt)
}

// reset clears the buffer and pause state; the session-wide speech flag and
// the sequence counter survive resets.
func (s *Segmenter) reset() {
	s.buffer = s.buffer[:0]
	s.speechSinceReset = false
	s.silenceStart = time.Time{}
}
