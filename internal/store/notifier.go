package store

import (
	"io"
	"log/slog"
)

// Notifier receives fire-and-forget user-facing notices: the toast surface of
// whatever front end sits on the store.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NoopNotifier discards all notices.
type NoopNotifier struct{}

func (NoopNotifier) Success(string) {}
func (NoopNotifier) Error(string)   {}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes notices to the provided writer as structured log
// lines. Used when no interactive surface is attached.
func NewLogNotifier(w io.Writer) Notifier {
	if w == nil {
		return NoopNotifier{}
	}
	return &logNotifier{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (n *logNotifier) Success(msg string) {
	n.logger.Info("notice", "kind", "success", "msg", msg)
}

func (n *logNotifier) Error(msg string) {
	n.logger.Error("notice", "kind", "error", "msg", msg)
}
