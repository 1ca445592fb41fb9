package domain

import "fmt"

// EventKind identifies a progress event emitted during a run.
type EventKind string

const (
	EventDirectoryStarted EventKind = "directory_started"
	EventFileStarted      EventKind = "file_started"
	EventDocumentValid    EventKind = "document_valid"
	EventFileValid        EventKind = "file_valid"
	EventFileFailed       EventKind = "file_failed"
)

// Event is a single progress notification.
type Event struct {
	Kind      EventKind `json:"kind"`
	Path      string    `json:"path"`
	Document  int       `json:"document,omitempty"`
	Recursive bool      `json:"recursive,omitempty"`
	Err       error     `json:"-"`
}

// Message renders the fixed-format text for the event.
func (e Event) Message() string {
	switch e.Kind {
	case EventDirectoryStarted:
		if e.Recursive {
			return fmt.Sprintf("Starting validation of YAML files in directory '%s' recursively.", e.Path)
		}
		return fmt.Sprintf("Starting validation of YAML files in directory '%s'.", e.Path)
	case EventFileStarted:
		return fmt.Sprintf("Starting validation of YAML file '%s'.", e.Path)
	case EventDocumentValid:
		return fmt.Sprintf("Document %d of '%s' is valid", e.Document, e.Path)
	case EventFileValid:
		return fmt.Sprintf("Validation of YAML file '%s' successful.", e.Path)
	case EventFileFailed:
		return fmt.Sprintf("Validation of YAML file '%s' failed.", e.Path)
	default:
		return fmt.Sprintf("unknown event %q for '%s'", e.Kind, e.Path)
	}
}

// EventSink consumes events synchronously as a run progresses.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

// DiscardSink drops every event.
var DiscardSink EventSink = EventSinkFunc(func(Event) {})

// EventRecorder keeps every event in emission order.
type EventRecorder struct {
	Events []Event
}

func (r *EventRecorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Messages returns the rendered message of every recorded event.
func (r *EventRecorder) Messages() []string {
	msgs := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		msgs = append(msgs, e.Message())
	}
	return msgs
}

// MultiSink fans every event out to each sink in order.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
