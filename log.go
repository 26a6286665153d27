package roadnet

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates logger with timestamp formatting which filters messages at given level
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func loggerOrDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}

// progress tracks the start time of a build step and logs completion with elapsed duration
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(logger *log.Logger, msg string) *progress {
	logger.Info(msg)
	return &progress{logger: logger, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...interface{}) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
