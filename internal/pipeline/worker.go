package pipeline

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/engine"
	"github.com/leonardotrapani/whisperflow/internal/output"
	"github.com/leonardotrapani/whisperflow/internal/segment"
	"github.com/leonardotrapani/whisperflow/internal/transcript"
)

const workerPollTimeout = time.Second

// worker is the single consumer of the transcription queue. It invokes the
// engine sequentially per utterance, which preserves enqueue order all the
// way to the output sink.
type worker struct {
	queue      *Queue[segment.Utterance]
	engine     engine.Engine
	session    *transcript.Session
	sink       output.Sink
	sampleRate int
	language   string // configured session language, "auto" when unset

	stopping  *atomic.Bool
	finalized *atomic.Bool
}

// run loops until a stop was requested, finalization completed and the queue
// is empty. The exit condition is checked only on poll timeout so that items
// still arriving during the drain are picked up.
func (w *worker) run(ctx context.Context) {
	log.Printf("Worker: started")
	for {
		utt, ok := w.queue.Get(workerPollTimeout)
		if !ok {
			if w.stopping.Load() && w.finalized.Load() && w.queue.Len() == 0 {
				break
			}
			continue
		}
		w.process(ctx, utt)
		w.queue.TaskDone()
	}
	log.Printf("Worker: finished")
}

func (w *worker) process(ctx context.Context, utt segment.Utterance) {
	lang := w.session.Language()
	if lang == "" {
		lang = w.language
	}

	req := engine.Request{
		Samples:    utt.Samples,
		SampleRate: w.sampleRate,
		Language:   lang,
		Prompt:     w.session.RecentContext(),
	}

	text, err := w.engine.Transcribe(ctx, req)
	if err != nil {
		// The utterance's text is treated as empty; never retried.
		log.Printf("Worker: utterance #%d failed: %v", utt.Seq, err)
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("Worker: utterance #%d produced no text", utt.Seq)
		return
	}

	appended := !w.session.Empty()
	w.session.Append(text)
	w.session.SetLanguage(lang)

	if err := w.sink.Deliver(ctx, text, appended); err != nil {
		log.Printf("Worker: deliver utterance #%d: %v", utt.Seq, err)
	}
}
