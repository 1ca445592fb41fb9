package logsink

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// Verbosity selects how much of a run is logged.
type Verbosity int

const (
	// Quiet logs failures only.
	Quiet Verbosity = iota
	// Normal logs every progress event.
	Normal
	// Verbose adds timestamps and debug detail such as document indexes.
	Verbose
)

// LogSink implements domain.EventSink on top of charmbracelet/log.
type LogSink struct {
	logger *log.Logger
}

// New creates a sink writing to w.
func New(w io.Writer, v Verbosity) *LogSink {
	opts := log.Options{Prefix: "yamlvalidator", Level: log.InfoLevel}
	switch v {
	case Quiet:
		opts.Level = log.ErrorLevel
	case Verbose:
		opts.Level = log.DebugLevel
		opts.ReportTimestamp = true
	}
	return &LogSink{logger: log.NewWithOptions(w, opts)}
}

// Logger exposes the underlying logger for messages outside the event stream.
func (s *LogSink) Logger() *log.Logger {
	return s.logger
}

func (s *LogSink) Emit(e domain.Event) {
	switch e.Kind {
	case domain.EventFileFailed:
		keyvals := []interface{}{"cause", e.Err}
		if e.Document > 0 {
			keyvals = append(keyvals, "document", e.Document)
		}
		s.logger.Error(e.Message(), keyvals...)
	case domain.EventDocumentValid:
		s.logger.Info(e.Message())
		s.logger.Debug("document parsed", "file", e.Path, "document", e.Document)
	default:
		s.logger.Info(e.Message())
	}
}
