package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	s.Emit("visiting https://example.com/")
	s.Emit("done")

	if got := buf.String(); got != "visiting https://example.com/\ndone\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestSlogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewSlogSink(logger, slog.LevelInfo)

	s.Emit("crawl finished")

	if !strings.Contains(buf.String(), "crawl finished") {
		t.Errorf("Expected message in slog output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "level=INFO") {
		t.Errorf("Expected INFO level, got %q", buf.String())
	}
}

func TestMultiAndEmitf(t *testing.T) {
	var got []string
	a := SinkFunc(func(m string) { got = append(got, "a:"+m) })
	b := SinkFunc(func(m string) { got = append(got, "b:"+m) })

	Emitf(Multi(a, nil, b), "page %d", 3)

	if len(got) != 2 || got[0] != "a:page 3" || got[1] != "b:page 3" {
		t.Errorf("Unexpected fan-out: %v", got)
	}
}

func TestEmitfNilSink(t *testing.T) {
	Emitf(nil, "ignored %s", "message")
	Discard.Emit("also ignored")
}
