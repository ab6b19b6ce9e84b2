package notify

import (
	"fmt"
	"log"

	"github.com/gen2brain/beeep"
)

const appName = "Whisperflow"

type Notifier interface {
	SessionStarted()
	SessionEnded(words int)
	Error(msg string)
}

// New returns the notifier for a configured type: "desktop", "log" or "none".
func New(kind string) Notifier {
	switch kind {
	case "desktop":
		return Desktop{}
	case "log":
		return Log{}
	default:
		return Nop{}
	}
}

type Desktop struct{}

func (Desktop) SessionStarted() {
	if err := beeep.Notify(appName, "Recording started", ""); err != nil {
		log.Printf("Notify: %v", err)
	}
}

func (Desktop) SessionEnded(words int) {
	body := "Recording stopped, no speech transcribed"
	if words > 0 {
		body = fmt.Sprintf("Recording stopped, %d words on clipboard", words)
	}
	if err := beeep.Notify(appName, body, ""); err != nil {
		log.Printf("Notify: %v", err)
	}
}

func (Desktop) Error(msg string) {
	if err := beeep.Alert(appName, msg, ""); err != nil {
		log.Printf("Notify: %v", err)
	}
}

type Log struct{}

func (Log) SessionStarted()        { log.Printf("Notify: recording started") }
func (Log) SessionEnded(words int) { log.Printf("Notify: recording stopped, %d words", words) }
func (Log) Error(msg string)       { log.Printf("Notify: error: %s", msg) }

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) SessionStarted()        {}
func (Nop) SessionEnded(words int) {}
func (Nop) Error(msg string)       {}
