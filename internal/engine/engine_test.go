package engine

import (
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "whisper-cpp with model",
			config: Config{Provider: "whisper-cpp", ModelPath: "/tmp/model.bin"},
		},
		{
			name:    "whisper-cpp without model",
			config:  Config{Provider: "whisper-cpp"},
			wantErr: "model path",
		},
		{
			name:   "openai with key",
			config: Config{Provider: "openai", APIKey: "sk-test"},
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai"},
			wantErr: "API key",
		},
		{
			name:    "unknown provider",
			config:  Config{Provider: "carrier-pigeon"},
			wantErr: "unsupported provider",
		},
		{
			name:    "empty provider",
			config:  Config{},
			wantErr: "unsupported provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(tt.config)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if eng == nil {
					t.Fatal("expected an engine")
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewWhisperCpp_Defaults(t *testing.T) {
	e := NewWhisperCpp(Config{Provider: "whisper-cpp", ModelPath: "/tmp/m.bin"})

	if e.config.VADThreshold != 0.6 {
		t.Errorf("default VAD threshold = %v, want 0.6", e.config.VADThreshold)
	}
	if e.config.Threads != 2 {
		t.Errorf("default threads = %d, want 2", e.config.Threads)
	}

	e = NewWhisperCpp(Config{VADThreshold: 0.4, Threads: 8})
	if e.config.VADThreshold != 0.4 {
		t.Errorf("explicit VAD threshold overridden: %v", e.config.VADThreshold)
	}
	if e.config.Threads != 8 {
		t.Errorf("explicit threads overridden: %d", e.config.Threads)
	}
}

func TestWhisperCpp_EmptySamples(t *testing.T) {
	e := NewWhisperCpp(Config{ModelPath: "/tmp/m.bin"})

	text, err := e.Transcribe(context.Background(), Request{SampleRate: 16000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestWhisperCpp_MissingModel(t *testing.T) {
	e := NewWhisperCpp(Config{ModelPath: "/nonexistent/model.bin"})

	_, err := e.Transcribe(context.Background(), Request{
		Samples:    make([]int16, 8000),
		SampleRate: 16000,
	})
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
	if !strings.Contains(err.Error(), "model file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}
