// Package pipeline owns a dictation session end to end: capture,
// segmentation, the transcription queue and worker, and the stop/drain
// sequence that guarantees no buffered speech is lost.
package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/leonardotrapani/whisperflow/internal/audio"
	"github.com/leonardotrapani/whisperflow/internal/config"
	"github.com/leonardotrapani/whisperflow/internal/engine"
	"github.com/leonardotrapani/whisperflow/internal/hotkey"
	"github.com/leonardotrapani/whisperflow/internal/notify"
	"github.com/leonardotrapani/whisperflow/internal/output"
	"github.com/leonardotrapani/whisperflow/internal/segment"
	"github.com/leonardotrapani/whisperflow/internal/transcript"
	"github.com/leonardotrapani/whisperflow/internal/vad"
)

type Status string
type Action string

const (
	Idle      Status = "idle"
	Recording Status = "recording"
	Stopping  Status = "stopping"
	Draining  Status = "draining"
)

const (
	Stop Action = "stop"
)

type Pipeline interface {
	Run(ctx context.Context)
	Stop()
	Status() Status
	Actions() chan<- Action
	// Done is closed when the session has fully drained and delivered.
	Done() <-chan struct{}
}

// Deps are the session collaborators. Tests swap in fakes; production wiring
// comes from New.
type Deps struct {
	Engine   engine.Engine
	Sink     output.Sink
	Listener hotkey.Listener
	Notifier notify.Notifier
}

type pipeline struct {
	cfg  *config.Config
	deps Deps

	statusMu sync.RWMutex
	status   Status

	actionCh chan Action
	done     chan struct{}
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	started  atomic.Bool

	// Read by the worker across goroutines; never raw shared variables.
	stopping  atomic.Bool
	finalized atomic.Bool
}

// New builds a single-use pipeline with production collaborators.
func New(cfg *config.Config) (Pipeline, error) {
	eng, err := engine.New(cfg.ToEngineConfig())
	if err != nil {
		return nil, err
	}
	return NewWithDeps(cfg, Deps{
		Engine:   eng,
		Sink:     output.NewDesktop(cfg.ToSinkConfig()),
		Listener: hotkey.NewGlobal(cfg.Hotkey.StopKey),
		Notifier: notify.New(cfg.Notifications.Type),
	}), nil
}

func NewWithDeps(cfg *config.Config, deps Deps) Pipeline {
	if deps.Sink == nil {
		deps.Sink = output.Nop{}
	}
	if deps.Listener == nil {
		deps.Listener = hotkey.NewChan()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	return &pipeline{
		cfg:      cfg,
		deps:     deps,
		status:   Idle,
		actionCh: make(chan Action, 1),
		done:     make(chan struct{}),
	}
}

func (p *pipeline) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *pipeline) setStatus(s Status) {
	p.statusMu.Lock()
	p.status = s
	p.statusMu.Unlock()
}

func (p *pipeline) Actions() chan<- Action {
	return p.actionCh
}

func (p *pipeline) Done() <-chan struct{} {
	return p.done
}

// Stop requests a graceful stop and waits for the drain to complete.
func (p *pipeline) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *pipeline) Run(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		log.Printf("Pipeline: already started")
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	go p.run(runCtx)
}

func (p *pipeline) run(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.done)
	defer p.setStatus(Idle)

	session := transcript.NewSession()
	session.SetLanguage(p.cfg.Engine.Language)

	recorder := audio.NewRecorder(p.cfg.ToRecorderConfig())
	chunkCh, errCh, err := recorder.Start(ctx)
	if err != nil {
		// Failure to open the device is fatal to session start.
		log.Printf("Pipeline: recording error: %v", err)
		p.deps.Notifier.Error("Could not open audio input: " + err.Error())
		return
	}
	defer recorder.Stop()

	loader := vad.NewLoader(vad.Energy{Threshold: p.cfg.VAD.EnergyThreshold})
	defer loader.Close()

	queue := NewQueue[segment.Utterance]()
	seg := segment.New(p.cfg.ToSegmenterConfig(), loader, queue.Put)

	w := &worker{
		queue:      queue,
		engine:     p.deps.Engine,
		session:    session,
		sink:       p.deps.Sink,
		sampleRate: p.cfg.Audio.SampleRate,
		language:   p.cfg.Engine.Language,
		stopping:   &p.stopping,
		finalized:  &p.finalized,
	}
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		// In-flight engine calls are never cancelled: the worker runs on a
		// background context and exits through the drain protocol instead.
		w.run(context.Background())
	}()

	stopCh, err := p.deps.Listener.Start()
	if err != nil {
		// Non-fatal: the session can still be stopped via action or signal.
		log.Printf("Pipeline: stop-key listener unavailable: %v", err)
	}

	// The VAD model loads in the background; segmentation starts in energy
	// fallback mode immediately so no early audio is missed.
	loader.Load(p.cfg.VAD.ModelPath, p.cfg.Audio.SampleRate, float32(p.cfg.VAD.Threshold))

	p.setStatus(Recording)
	p.deps.Notifier.SessionStarted()
	log.Printf("Pipeline: recording started")

	// Single-consumer loop: every chunk is segmented here, in order, off the
	// capture goroutine.
loop:
	for {
		select {
		case chunk, ok := <-chunkCh:
			if !ok {
				log.Printf("Pipeline: audio stream ended")
				break loop
			}
			seg.Push(chunk.Samples)

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			// A mid-session device error takes the same stop/drain path as
			// a normal stop so buffered utterances are not lost.
			log.Printf("Pipeline: recording error: %v", err)
			p.deps.Notifier.Error("Audio input lost: " + err.Error())
			break loop

		case <-stopCh:
			log.Printf("Pipeline: stop key pressed")
			break loop

		case action := <-p.actionCh:
			if action == Stop {
				log.Printf("Pipeline: stop requested")
				break loop
			}

		case <-ctx.Done():
			log.Printf("Pipeline: context cancelled")
			break loop
		}
	}

	p.stopping.Store(true)
	p.setStatus(Stopping)

	// Stop capture, then flush chunks that were already delivered before the
	// stop was observed.
	recorder.Stop()
	for chunk := range chunkCh {
		seg.Push(chunk.Samples)
	}
	recorder.Wait()

	seg.Finalize()
	p.finalized.Store(true)

	p.setStatus(Draining)
	log.Printf("Pipeline: draining transcription queue")
	queue.Join()
	<-workerDone

	p.deps.Listener.Stop()

	text := session.Text()
	if err := p.deps.Sink.PublishTranscript(context.Background(), text); err != nil {
		log.Printf("Pipeline: publish transcript: %v", err)
	}
	p.deps.Notifier.SessionEnded(len(strings.Fields(text)))
	log.Printf("Pipeline: session finished (%d words)", len(strings.Fields(text)))
}
