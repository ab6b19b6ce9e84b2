// Package output delivers transcribed text to the user: clipboard copy plus
// a simulated paste keystroke into the focused application.
package output

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// Sink receives each transcription result as it completes, then the full
// transcript at session end.
type Sink interface {
	// Deliver emits one result's text. appended is true when the transcript
	// already had content, so live fragments read as continuous prose.
	Deliver(ctx context.Context, text string, appended bool) error
	// PublishTranscript places the full session transcript on the clipboard
	// without triggering a paste.
	PublishTranscript(ctx context.Context, text string) error
}

type Config struct {
	Mode       string        // "paste", "clipboard", "fallback"
	PasteDelay time.Duration // settle time between clipboard write and keystroke
}

func DefaultConfig() Config {
	return Config{
		Mode:       "fallback",
		PasteDelay: 80 * time.Millisecond,
	}
}

// Desktop copies text with the system clipboard and pastes it by sending a
// ctrl+V keystroke.
type Desktop struct {
	config Config
}

func NewDesktop(config Config) *Desktop {
	return &Desktop{config: config}
}

func NewDefaultDesktop() *Desktop { return NewDesktop(DefaultConfig()) }

func (d *Desktop) Deliver(ctx context.Context, text string, appended bool) error {
	if text == "" {
		return fmt.Errorf("cannot deliver empty text")
	}
	if appended {
		text = " " + text
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	switch d.config.Mode {
	case "clipboard":
		return nil

	case "paste":
		if err := d.paste(); err != nil {
			return fmt.Errorf("paste keystroke: %w", err)
		}

	case "fallback":
		if err := d.paste(); err != nil {
			// Text is already on the clipboard, so a failed keystroke still
			// leaves the user able to paste manually.
			log.Printf("Output: paste failed, text left on clipboard: %v", err)
			return nil
		}

	default:
		return fmt.Errorf("unsupported output mode: %s", d.config.Mode)
	}

	return nil
}

func (d *Desktop) PublishTranscript(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy transcript to clipboard: %w", err)
	}
	return nil
}

func (d *Desktop) paste() error {
	time.Sleep(d.config.PasteDelay)

	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}

// Nop is a Sink that does absolutely nothing. Useful in unit tests or
// headless builds.
type Nop struct{}

func (Nop) Deliver(ctx context.Context, text string, appended bool) error { return nil }
func (Nop) PublishTranscript(ctx context.Context, text string) error      { return nil }
