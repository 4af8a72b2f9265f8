// Package logging builds the process logger: a text handler on stderr and,
// when a Seq URL is configured, a Seq handler receiving the same records.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	slogseq "github.com/sokkalf/slog-seq"
)

type (
	Options struct {
		Level  string
		SeqURL string
		Output io.Writer
	}
	// multiHandler forwards log records to multiple handlers
	multiHandler struct {
		handlers []slog.Handler
	}
)

const RunIDKey = "run_id"

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf(`logging.ParseLevel error: unknown level "%s"`, s)
}

// Setup returns a logger tagged with a fresh run id, and a function that
// flushes pending records.
func Setup(options Options) (*slog.Logger, func(), error) {
	level, err := ParseLevel(options.Level)
	if err != nil {
		return nil, nil, err
	}
	handlerOptions := &slog.HandlerOptions{Level: level}
	output := options.Output
	if output == nil {
		output = os.Stderr
	}
	consoleHandler := slog.NewTextHandler(output, handlerOptions)
	runID := slog.String(RunIDKey, uuid.NewString())

	if options.SeqURL == "" {
		return slog.New(consoleHandler).With(runID), func() {}, nil
	}

	_, seqHandler := slogseq.NewLogger(
		options.SeqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(handlerOptions),
	)
	if seqHandler == nil {
		return slog.New(consoleHandler).With(runID), func() {}, nil
	}

	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}
	closeFn := func() {
		seqHandler.Close()
	}
	return slog.New(multi).With(runID), closeFn, nil
}
