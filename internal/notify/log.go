package notify

import (
	"go.uber.org/zap"
)

// Log delivers notifications as structured log entries.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Notify implements settings.Notifier.
func (l *Log) Notify(title, description string) {
	l.logger.Info("notification",
		zap.String("title", title),
		zap.String("description", description),
	)
}
