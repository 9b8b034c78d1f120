package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// Entry is one decoded JSON log record.
type Entry map[string]any

// Capture collects JSON log output written by concurrent handlers.
type Capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *Capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *Capture) Reset() {
	c.mu.Lock()
	c.buf.Reset()
	c.mu.Unlock()
}

// Entries decodes every record written so far, in order.
func (c *Capture) Entries() ([]Entry, error) {
	dec := json.NewDecoder(strings.NewReader(c.String()))
	var entries []Entry
	for {
		var e Entry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}

// WithMessage returns the records whose msg equals msg.
func (c *Capture) WithMessage(msg string) []Entry {
	entries, err := c.Entries()
	if err != nil {
		return nil
	}
	var out []Entry
	for _, e := range entries {
		if e["msg"] == msg {
			out = append(out, e)
		}
	}
	return out
}

// GetTestLogger returns a debug-level JSON logger and the capture it writes to.
func GetTestLogger(t *testing.T) (*slog.Logger, *Capture) {
	t.Helper()

	c := &Capture{}
	return slog.New(slog.NewJSONHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}

// SetupTestLogger swaps the slog default for a captured logger until the
// test ends.
func SetupTestLogger(t *testing.T) (*Capture, *slog.Logger) {
	t.Helper()

	prev := slog.Default()
	l, c := GetTestLogger(t)
	slog.SetDefault(l)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return c, l
}

// TestContext returns a background context carrying a captured logger.
func TestContext(t *testing.T) (context.Context, *Capture) {
	t.Helper()

	l, c := GetTestLogger(t)
	return WithLogger(context.Background(), l), c
}

// AssertLogContains fails the test unless the raw output contains s.
func AssertLogContains(t *testing.T, c *Capture, s string) {
	t.Helper()

	if out := c.String(); !strings.Contains(out, s) {
		t.Errorf("log output does not contain %q:\n%s", s, out)
	}
}

// AssertLogField fails the test unless some record has field == want.
func AssertLogField(t *testing.T, c *Capture, field string, want any) {
	t.Helper()

	entries, err := c.Entries()
	if err != nil {
		t.Fatalf("decode log output: %v", err)
	}
	for _, e := range entries {
		if v, ok := e[field]; ok && v == want {
			return
		}
	}
	t.Errorf("no log record has %s=%v among %d records", field, want, len(entries))
}
