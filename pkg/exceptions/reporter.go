package exceptions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
)

// Reporter receives errors that were absorbed instead of propagated, e.g.
// webhook processing failures that must still be answered with 200.
type Reporter interface {
	Capture(ctx context.Context, err error)
}

type logReporter struct {
	log *logrus.Logger
}

func NewLogReporter(log *logrus.Logger) Reporter {
	return &logReporter{log: log}
}

func (r *logReporter) Capture(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if entry, ok := composables.TryUseLogger(ctx); ok {
		entry.WithError(err).Error("captured exception")
		return
	}
	if r.log != nil {
		r.log.WithError(err).Error("captured exception")
	}
}

// Nop discards every capture. Used in tests.
func Nop() Reporter {
	return nopReporter{}
}

type nopReporter struct{}

func (nopReporter) Capture(context.Context, error) {}
