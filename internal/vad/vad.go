// Package vad classifies fixed-size audio chunks as speech or silence.
//
// Two strategies exist: a Silero neural model and an RMS energy fallback.
// The Loader composes them so the pipeline can start segmenting immediately
// while the model loads in the background.
package vad

import "math"

// WindowSize is the number of samples the Silero model consumes per
// classification at 16 kHz. Chunks of any other length are zero-padded or
// truncated before inference.
const WindowSize = 512

// DefaultThreshold is the speech probability above which a chunk counts as
// speech in model mode.
const DefaultThreshold = 0.6

// DefaultEnergyThreshold applies to RMS amplitude over samples normalized
// to [-1, 1].
const DefaultEnergyThreshold = 0.01

// Detector classifies one chunk of mono PCM16 samples.
type Detector interface {
	Classify(chunk []int16) (bool, error)
}

// Energy is the fallback detector: speech iff the chunk's root-mean-square
// amplitude exceeds a fixed threshold. It is a pure function of the chunk
// and never fails.
type Energy struct {
	Threshold float64
}

func NewEnergy() Energy {
	return Energy{Threshold: DefaultEnergyThreshold}
}

func (e Energy) Classify(chunk []int16) (bool, error) {
	return RMS(chunk) > e.Threshold, nil
}

// RMS computes the root-mean-square amplitude of a chunk, with samples
// normalized to [-1, 1].
func RMS(chunk []int16) float64 {
	if len(chunk) == 0 {
		return 0
	}
	var sum float64
	for _, s := range chunk {
		v := float64(s) / 32768.0
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(chunk)))
}

// normalize converts PCM16 samples to float32 in [-1, 1], padded or
// truncated to exactly WindowSize samples.
func normalize(chunk []int16) []float32 {
	out := make([]float32, WindowSize)
	n := len(chunk)
	if n > WindowSize {
		n = WindowSize
	}
	for i := 0; i < n; i++ {
		out[i] = float32(chunk[i]) / 32768.0
	}
	return out
}
