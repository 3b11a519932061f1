package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// consoleHandler renders compact single-line records:
//
//	15:04:05 INFO  [repair] regenerated keyframe timestamps animation=0 sampler=3
type consoleHandler struct {
	mu     sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar) slog.Handler {
	return &consoleHandler{writer: w, level: lvl}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var component string
	kvs := make([][2]string, 0, record.NumAttrs()+len(h.attrs))
	appendAttr := func(attr slog.Attr) {
		if attr.Key == FieldComponent && component == "" {
			component = attr.Value.String()
			return
		}
		if attr.Equal(slog.Attr{}) {
			return
		}
		key := attr.Key
		for i := len(h.groups) - 1; i >= 0; i-- {
			key = h.groups[i] + "." + key
		}
		kvs = append(kvs, [2]string{key, attr.Value.String()})
	}
	for _, attr := range h.attrs {
		appendAttr(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		appendAttr(attr)
		return true
	})

	var buf bytes.Buffer
	buf.Grow(128 + len(kvs)*24)
	buf.WriteString(timestamp.Format("15:04:05"))
	fmt.Fprintf(&buf, " %-5s", record.Level.String())
	if component != "" {
		fmt.Fprintf(&buf, " [%s]", component)
	}
	buf.WriteByte(' ')
	buf.WriteString(record.Message)
	for _, kv := range kvs {
		fmt.Fprintf(&buf, " %s=%s", kv[0], kv[1])
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}
