package output

import (
	"context"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Mode != "fallback" {
		t.Errorf("default mode = %q, want fallback", config.Mode)
	}
	if config.PasteDelay != 80*time.Millisecond {
		t.Errorf("default paste delay = %v, want 80ms", config.PasteDelay)
	}
}

func TestDesktop_DeliverEmptyText(t *testing.T) {
	d := NewDefaultDesktop()
	if err := d.Deliver(context.Background(), "", false); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestDesktop_PublishEmptyTranscript(t *testing.T) {
	// An empty session produces no transcript; publishing nothing must not
	// touch the clipboard or fail.
	d := NewDefaultDesktop()
	if err := d.PublishTranscript(context.Background(), ""); err != nil {
		t.Errorf("empty transcript should be a no-op, got %v", err)
	}
}

func TestNop(t *testing.T) {
	var s Sink = Nop{}
	if err := s.Deliver(context.Background(), "hello", true); err != nil {
		t.Errorf("Nop.Deliver() = %v", err)
	}
	if err := s.PublishTranscript(context.Background(), "hello"); err != nil {
		t.Errorf("Nop.PublishTranscript() = %v", err)
	}
}
