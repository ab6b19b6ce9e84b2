package vad

import (
	"math"
	"testing"
)

func TestRMS(t *testing.T) {
	tests := []struct {
		name  string
		chunk []int16
		want  float64
	}{
		{
			name:  "empty chunk",
			chunk: nil,
			want:  0,
		},
		{
			name:  "silence",
			chunk: make([]int16, 512),
			want:  0,
		},
		{
			name:  "full scale",
			chunk: []int16{-32768, -32768, -32768, -32768},
			want:  1.0,
		},
		{
			name:  "constant half scale",
			chunk: []int16{16384, 16384},
			want:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RMS(tt.chunk)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergy_Classify(t *testing.T) {
	e := NewEnergy()

	loud := make([]int16, WindowSize)
	for i := range loud {
		loud[i] = 8000
	}
	quiet := make([]int16, WindowSize)
	for i := range quiet {
		quiet[i] = 100 // RMS ~0.003, below the threshold
	}

	speech, err := e.Classify(loud)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if !speech {
		t.Error("expected loud chunk to classify as speech")
	}

	speech, err = e.Classify(quiet)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if speech {
		t.Error("expected quiet chunk to classify as silence")
	}
}

func TestEnergy_ClassifyIsPure(t *testing.T) {
	// The same chunk must always classify the same way regardless of what
	// came before it.
	e := NewEnergy()
	chunk := make([]int16, WindowSize)
	for i := range chunk {
		chunk[i] = 8000
	}

	first, _ := e.Classify(chunk)
	e.Classify(make([]int16, WindowSize))
	second, _ := e.Classify(chunk)

	if first != second {
		t.Error("classification depends on prior chunks")
	}
}

func TestNormalize(t *testing.T) {
	t.Run("pads short chunks", func(t *testing.T) {
		out := normalize([]int16{16384})
		if len(out) != WindowSize {
			t.Fatalf("expected %d samples, got %d", WindowSize, len(out))
		}
		if out[0] != 0.5 {
			t.Errorf("expected 0.5, got %v", out[0])
		}
		for i := 1; i < WindowSize; i++ {
			if out[i] != 0 {
				t.Fatalf("expected zero padding at %d, got %v", i, out[i])
			}
		}
	})

	t.Run("truncates long chunks", func(t *testing.T) {
		long := make([]int16, WindowSize*2)
		out := normalize(long)
		if len(out) != WindowSize {
			t.Errorf("expected %d samples, got %d", WindowSize, len(out))
		}
	})
}

func TestLoader_FallbackBeforeLoad(t *testing.T) {
	l := NewLoader(NewEnergy())

	loud := make([]int16, WindowSize)
	for i := range loud {
		loud[i] = 8000
	}

	if l.Ready() {
		t.Error("loader should not be ready before Load")
	}
	speech, err := l.Classify(loud)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if !speech {
		t.Error("expected energy fallback to classify loud chunk as speech")
	}
}

func TestLoader_EmptyModelPathStaysInFallback(t *testing.T) {
	l := NewLoader(NewEnergy())
	defer l.Close()

	l.Load("", 16000, DefaultThreshold)

	if l.Ready() {
		t.Error("loader must stay in fallback mode without a model path")
	}
	speech, err := l.Classify(make([]int16, WindowSize))
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if speech {
		t.Error("expected silence classification in fallback mode")
	}
}

func TestLoader_BadModelPathStaysInFallback(t *testing.T) {
	l := NewLoader(NewEnergy())
	defer l.Close()

	l.Load("/nonexistent/silero.onnx", 16000, DefaultThreshold)
	l.wg.Wait() // let the load attempt finish

	if l.Ready() {
		t.Error("loader must stay in fallback mode after a failed load")
	}
	loud := make([]int16, WindowSize)
	for i := range loud {
		loud[i] = 8000
	}
	speech, err := l.Classify(loud)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if !speech {
		t.Error("expected energy fallback after failed model load")
	}
}
