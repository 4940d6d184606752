// Package logging carries crawl progress messages from a session to whoever
// is watching it: a terminal, a structured logger, or a test recorder.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Sink receives one human-readable message per notable crawl event
type Sink interface {
	Emit(message string)
}

// SinkFunc adapts a plain function to Sink
type SinkFunc func(message string)

// Emit calls f(message)
func (f SinkFunc) Emit(message string) { f(message) }

// Discard drops every message
var Discard Sink = SinkFunc(func(string) {})

// WriterSink writes each message as a line to an io.Writer
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink that prints to w
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes message followed by a newline
func (s *WriterSink) Emit(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, message)
}

// SlogSink forwards messages to a slog.Logger at a fixed level
type SlogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogSink creates a sink backed by logger
func NewSlogSink(logger *slog.Logger, level slog.Level) *SlogSink {
	return &SlogSink{logger: logger, level: level}
}

// Emit logs message on the underlying logger
func (s *SlogSink) Emit(message string) {
	s.logger.Log(context.Background(), s.level, message)
}

// Multi fans a message out to several sinks in order
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(message string) {
		for _, s := range sinks {
			if s != nil {
				s.Emit(message)
			}
		}
	})
}

// Emitf formats and emits a message
func Emitf(s Sink, format string, args ...any) {
	if s == nil {
		return
	}
	s.Emit(fmt.Sprintf(format, args...))
}
