// Package daemon runs the long-lived background process: it owns the control
// socket, the config manager, and at most one dictation session at a time.
package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/leonardotrapani/whisperflow/internal/bus"
	"github.com/leonardotrapani/whisperflow/internal/config"
	"github.com/leonardotrapani/whisperflow/internal/notify"
	"github.com/leonardotrapani/whisperflow/internal/pipeline"
)

type Daemon struct {
	mu       sync.Mutex
	notifier notify.Notifier
	configs  *config.Manager

	ctx    context.Context
	cancel context.CancelFunc

	pipeline pipeline.Pipeline
}

func New() (*Daemon, error) {
	configs, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		notifier: notify.New(configs.GetConfig().Notifications.Type),
		configs:  configs,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

func (d *Daemon) status() pipeline.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pipeline == nil {
		return pipeline.Idle
	}
	return d.pipeline.Status()
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.configs.StartWatching(d.ctx); err != nil {
		log.Printf("Daemon: config watch unavailable: %v", err)
	}
	defer d.configs.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	log.Printf("Daemon started, listening on socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				d.shutdown()
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

// shutdown drains any active session before the daemon exits so buffered
// speech is not lost on SIGTERM.
func (d *Daemon) shutdown() {
	d.mu.Lock()
	p := d.pipeline
	d.pipeline = nil
	d.mu.Unlock()

	if p != nil {
		log.Printf("Daemon: draining active session before exit")
		p.Stop()
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 't':
		d.toggle()
		fmt.Fprint(c, "OK toggled\n")
	case 's':
		fmt.Fprintf(c, "STATUS status=%s\n", d.status())
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

// toggle starts a session when idle and requests a graceful stop-and-drain
// when one is running. A session already stopping or draining is left alone;
// it will finish on its own.
func (d *Daemon) toggle() {
	d.mu.Lock()
	defer d.mu.Unlock()

	var current pipeline.Status = pipeline.Idle
	if d.pipeline != nil {
		current = d.pipeline.Status()
	}

	switch current {
	case pipeline.Idle:
		p, err := pipeline.New(d.configs.GetConfig())
		if err != nil {
			log.Printf("Daemon: failed to start session: %v", err)
			d.notifier.Error("Could not start dictation: " + err.Error())
			return
		}
		p.Run(d.ctx)
		d.pipeline = p

	case pipeline.Recording:
		select {
		case d.pipeline.Actions() <- pipeline.Stop:
		default:
			// A stop is already pending.
		}

	case pipeline.Stopping, pipeline.Draining:
		log.Printf("Daemon: session already finishing")
	}
}
