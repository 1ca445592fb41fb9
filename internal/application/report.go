package application

import (
	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// Report is the machine-readable summary of a run, shared by the JSON
// output of the CLI and the MCP tool.
type Report struct {
	Status   domain.RunState      `json:"status"`
	Files    []domain.FileOutcome `json:"files"`
	Failure  *domain.FileOutcome  `json:"failure,omitempty"`
	Error    string               `json:"error,omitempty"`
	Revision *domain.Revision     `json:"revision,omitempty"`
	Events   []string             `json:"events,omitempty"`
}

// NewReport summarizes the result of ValidateService.Validate. An aborted
// run has no outcome and reports err instead.
func NewReport(run *domain.RunOutcome, err error) *Report {
	if err != nil {
		return &Report{
			Status: domain.StateFailed,
			Files:  []domain.FileOutcome{},
			Error:  err.Error(),
		}
	}

	r := &Report{
		Status:  run.State,
		Files:   run.Files,
		Failure: run.Failure,
	}
	if r.Files == nil {
		r.Files = []domain.FileOutcome{}
	}
	if fail := run.Err(); fail != nil {
		r.Error = fail.Error()
	}
	return r
}

// Passed reports whether the run behind r succeeded.
func (r *Report) Passed() bool {
	return r.Status == domain.StateSucceeded
}

// AttachRevision records the revision of the repository containing path.
// Directories outside version control leave the report unchanged.
func (r *Report) AttachRevision(reader domain.RevisionReader, path string) {
	rev, err := reader.Revision(path)
	if err != nil {
		return
	}
	r.Revision = rev
}
