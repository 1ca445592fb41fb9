package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

func TestEvent_Message(t *testing.T) {
	tests := []struct {
		event domain.Event
		want  string
	}{
		{
			domain.Event{Kind: domain.EventDirectoryStarted, Path: "/res"},
			"Starting validation of YAML files in directory '/res'.",
		},
		{
			domain.Event{Kind: domain.EventDirectoryStarted, Path: "/res", Recursive: true},
			"Starting validation of YAML files in directory '/res' recursively.",
		},
		{
			domain.Event{Kind: domain.EventFileStarted, Path: "/res/a.yaml"},
			"Starting validation of YAML file '/res/a.yaml'.",
		},
		{
			domain.Event{Kind: domain.EventDocumentValid, Path: "/res/a.yaml", Document: 2},
			"Document 2 of '/res/a.yaml' is valid",
		},
		{
			domain.Event{Kind: domain.EventFileValid, Path: "/res/a.yaml"},
			"Validation of YAML file '/res/a.yaml' successful.",
		},
		{
			domain.Event{Kind: domain.EventFileFailed, Path: "/res/a.yaml"},
			"Validation of YAML file '/res/a.yaml' failed.",
		},
	}
	for _, tt := range tests {
		t.Run(string(tt.event.Kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Message())
		})
	}
}

func TestEventRecorder(t *testing.T) {
	rec := &domain.EventRecorder{}
	var seen []domain.EventKind
	sink := domain.MultiSink{rec, domain.EventSinkFunc(func(e domain.Event) {
		seen = append(seen, e.Kind)
	})}

	sink.Emit(domain.Event{Kind: domain.EventFileStarted, Path: "/a.yml"})
	sink.Emit(domain.Event{Kind: domain.EventFileValid, Path: "/a.yml"})

	assert.Equal(t, []string{
		"Starting validation of YAML file '/a.yml'.",
		"Validation of YAML file '/a.yml' successful.",
	}, rec.Messages())
	assert.Equal(t, []domain.EventKind{domain.EventFileStarted, domain.EventFileValid}, seen)
}
