package vad

import (
	"log"
	"sync"
	"sync/atomic"
)

// Loader starts in energy-fallback mode and silently upgrades to model mode
// once the Silero model finishes loading in the background. Classification
// consults readiness with a single atomic load, so Classify is always cheap
// and never blocks on the loading goroutine.
type Loader struct {
	energy Energy
	model  atomic.Pointer[Silero]
	failed atomic.Bool
	wg     sync.WaitGroup
}

func NewLoader(energy Energy) *Loader {
	return &Loader{energy: energy}
}

// Load begins loading the model asynchronously. A load failure is logged
// once and leaves the loader in fallback mode for the rest of the session.
func (l *Loader) Load(modelPath string, sampleRate int, threshold float32) {
	if modelPath == "" {
		log.Printf("VAD: no model path configured, using energy detection")
		l.failed.Store(true)
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		model, err := NewSilero(modelPath, sampleRate, threshold)
		if err != nil {
			log.Printf("VAD: failed to load model, using energy detection: %v", err)
			l.failed.Store(true)
			return
		}
		l.model.Store(model)
		log.Printf("VAD: model loaded")
	}()
}

// Ready reports whether model mode is active.
func (l *Loader) Ready() bool {
	return l.model.Load() != nil
}

// Classify uses the model when loaded and falls back to energy detection
// before the model is ready or when the model errors on a given chunk.
// The fallback is per-chunk: a model error does not disable model mode.
func (l *Loader) Classify(chunk []int16) (bool, error) {
	if model := l.model.Load(); model != nil {
		speech, err := model.Classify(chunk)
		if err == nil {
			return speech, nil
		}
		log.Printf("VAD: model error, falling back to energy detection: %v", err)
	}
	return l.energy.Classify(chunk)
}

// Close waits for any in-flight load and releases the model.
func (l *Loader) Close() {
	l.wg.Wait()
	if model := l.model.Swap(nil); model != nil {
		if err := model.Close(); err != nil {
			log.Printf("VAD: close model: %v", err)
		}
	}
}
