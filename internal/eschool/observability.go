package eschool

import "log/slog"

// CallEvent records metadata about a single portal request.
type CallEvent struct {
	Endpoint  string
	Method    string
	Status    int // 0 when no response was received
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about portal calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a slog logger at debug level, and
// failures at warn level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"endpoint", event.Endpoint,
		"method", event.Method,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("eschool_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Debug("eschool_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
