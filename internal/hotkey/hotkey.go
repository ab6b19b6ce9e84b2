// Package hotkey watches global keyboard input for the stop key while a
// session is recording.
package hotkey

import (
	"fmt"
	"log"
	"sync"

	hook "github.com/robotn/gohook"
)

// DefaultStopKey is a modifier so that pressing it never types anything into
// the focused application.
const DefaultStopKey = "ctrl"

// Listener raises a stop event when the configured key is pressed. Start is
// called once per session and Stop only after draining completes.
type Listener interface {
	Start() (<-chan struct{}, error)
	Stop()
}

// Global listens on the OS-wide keyboard hook.
type Global struct {
	key string

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func NewGlobal(key string) *Global {
	if key == "" {
		key = DefaultStopKey
	}
	return &Global{key: key}
}

func (g *Global) Start() (<-chan struct{}, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return nil, fmt.Errorf("listener already running")
	}

	stopCh := make(chan struct{}, 1)

	hook.Register(hook.KeyDown, []string{g.key}, func(e hook.Event) {
		select {
		case stopCh <- struct{}{}:
		default:
			// A stop is already pending; one event is enough.
		}
	})

	events := hook.Start()
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-hook.Process(events)
	}()

	g.running = true
	g.done = done
	log.Printf("Hotkey: listening for %q", g.key)
	return stopCh, nil
}

func (g *Global) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return
	}
	hook.End()
	<-g.done
	g.running = false
	log.Printf("Hotkey: listener stopped")
}

// Chan is a Listener fed manually, for tests and for daemon-only control
// where no global hook is wanted.
type Chan struct {
	ch chan struct{}
}

func NewChan() *Chan {
	return &Chan{ch: make(chan struct{}, 1)}
}

func (c *Chan) Start() (<-chan struct{}, error) { return c.ch, nil }
func (c *Chan) Stop()                           {}

// Trigger raises a stop event. It never blocks.
func (c *Chan) Trigger() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}
