package notify

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		kind string
		want Notifier
	}{
		{"desktop", Desktop{}},
		{"log", Log{}},
		{"none", Nop{}},
		{"", Nop{}},
		{"bogus", Nop{}},
	}

	for _, tt := range tests {
		t.Run("kind "+tt.kind, func(t *testing.T) {
			if got := New(tt.kind); got != tt.want {
				t.Errorf("New(%q) = %T, want %T", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLogNotifierIsSilentlyUsable(t *testing.T) {
	// Must not panic or touch the desktop.
	n := New("log")
	n.SessionStarted()
	n.SessionEnded(0)
	n.SessionEnded(42)
	n.Error("boom")
}
