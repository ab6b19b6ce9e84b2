package hotkey

import (
	"testing"
	"time"
)

func TestChan_Trigger(t *testing.T) {
	c := NewChan()
	stopCh, err := c.Start()
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	c.Trigger()

	select {
	case <-stopCh:
	case <-time.After(time.Second):
		t.Fatal("expected a stop event after Trigger")
	}
}

func TestChan_TriggerNeverBlocks(t *testing.T) {
	c := NewChan()
	// No consumer; repeated triggers collapse into one pending event.
	for i := 0; i < 10; i++ {
		c.Trigger()
	}

	stopCh, _ := c.Start()
	<-stopCh
	select {
	case <-stopCh:
		t.Error("expected exactly one pending stop event")
	default:
	}
}

func TestNewGlobal_DefaultKey(t *testing.T) {
	g := NewGlobal("")
	if g.key != DefaultStopKey {
		t.Errorf("empty key should default to %q, got %q", DefaultStopKey, g.key)
	}
	g = NewGlobal("f12")
	if g.key != "f12" {
		t.Errorf("explicit key overridden: %q", g.key)
	}
}
