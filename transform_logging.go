package params

import (
	"fmt"
	"time"

	"github.com/goliatone/go-params/pkg/eventlog"
)

// TransformLogEvent describes one transform attempt for logging.
type TransformLogEvent struct {
	Engine   string
	Expr     string
	Name     string
	Duration time.Duration
	Err      error
}

// TransformLogger records transform attempts.
type TransformLogger interface {
	LogTransform(TransformLogEvent)
}

// TransformLoggerFunc adapts a function to TransformLogger.
type TransformLoggerFunc func(TransformLogEvent)

// LogTransform implements TransformLogger.
func (f TransformLoggerFunc) LogTransform(event TransformLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopTransformLogger struct{}

func (noopTransformLogger) LogTransform(TransformLogEvent) {}

// SinkTransformLogger routes transform attempts into an event sink as silent
// entries, so rule activity lands in the same history as store mutations.
func SinkTransformLogger(sink eventlog.Sink) TransformLogger {
	return TransformLoggerFunc(func(event TransformLogEvent) {
		if sink == nil {
			return
		}
		message := fmt.Sprintf("Transforming '%s' via %s rule %q in %s", event.Name, event.Engine, event.Expr, event.Duration)
		if event.Err != nil {
			message = fmt.Sprintf("Transform of '%s' via %s rule %q failed: %v", event.Name, event.Engine, event.Expr, event.Err)
		}
		_ = sink.Post(eventlog.NewEntry(message, true))
	})
}
