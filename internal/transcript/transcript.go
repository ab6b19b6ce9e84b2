// Package transcript holds the per-session accumulated text and the sticky
// detected language. A Session is created at recording start and discarded
// at session end; nothing persists beyond it.
package transcript

import (
	"strings"
	"sync"
)

// ContextWords caps the number of recent words handed to the engine as a
// prompt hint.
const ContextWords = 100

type Session struct {
	mu       sync.RWMutex
	text     strings.Builder
	language string
}

func NewSession() *Session {
	return &Session{}
}

// Append adds a transcribed fragment, inserting a single separating space
// when the transcript already has content. Empty fragments are ignored.
func (s *Session) Append(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.text.Len() > 0 {
		s.text.WriteString(" ")
	}
	s.text.WriteString(text)
}

// Text returns the full session transcript.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text.String()
}

// Empty reports whether anything has been transcribed yet.
func (s *Session) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text.Len() == 0
}

// RecentContext returns the last ContextWords space-delimited words of the
// transcript, or the whole transcript when shorter. Recomputed on each call.
func (s *Session) RecentContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	words := strings.Fields(s.text.String())
	if len(words) > ContextWords {
		words = words[len(words)-ContextWords:]
	}
	return strings.Join(words, " ")
}

// SetLanguage records the session language once; later calls are ignored so
// the first explicit or detected language stays sticky for the session.
func (s *Session) SetLanguage(lang string) {
	if lang == "" || lang == "auto" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.language == "" {
		s.language = lang
	}
}

// Language returns the sticky session language, or "" when still unknown.
func (s *Session) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}
