package application

import (
	"errors"
	"io"

	"github.com/yamlvalidator/yamlvalidator/internal/domain"
)

// ValidateService orchestrates a validation run:
// resolve search path -> discover candidates -> validate documents -> report.
// The first failing file ends the whole run.
type ValidateService struct {
	resolver   domain.PathResolver
	discoverer domain.FileDiscoverer
	opener     domain.FileOpener
	validator  domain.DocumentValidator
	sink       domain.EventSink
}

// NewValidateService wires a service. A nil sink discards events.
func NewValidateService(
	resolver domain.PathResolver,
	discoverer domain.FileDiscoverer,
	opener domain.FileOpener,
	validator domain.DocumentValidator,
	sink domain.EventSink,
) *ValidateService {
	if sink == nil {
		sink = domain.DiscardSink
	}
	return &ValidateService{
		resolver:   resolver,
		discoverer: discoverer,
		opener:     opener,
		validator:  validator,
		sink:       sink,
	}
}

// Validate runs cfg to completion. A failing file is reported through the
// returned outcome with State Failed. Path resolution and invariant errors
// abort the run and are returned as the error.
func (s *ValidateService) Validate(cfg domain.ValidationConfig) (*domain.RunOutcome, error) {
	m := domain.NewRunMachine()
	run := &domain.RunOutcome{State: m.State()}

	for _, searchPath := range cfg.SearchPaths {
		if err := m.Transition(domain.StateResolvingPath); err != nil {
			return nil, err
		}
		entry, err := s.resolver.Resolve(searchPath)
		if err != nil {
			return nil, abort(m, err)
		}

		if err := m.Transition(domain.StateDiscovering); err != nil {
			return nil, err
		}
		if entry.Kind == domain.EntryDirectory {
			s.sink.Emit(domain.Event{
				Kind:      domain.EventDirectoryStarted,
				Path:      entry.Path,
				Recursive: cfg.Recursive,
			})
		}

		for candidate, err := range s.discoverer.Discover(entry, cfg.Recursive) {
			if err != nil {
				return nil, abort(m, err)
			}
			if err := m.Transition(domain.StateValidatingFile); err != nil {
				return nil, err
			}

			outcome := s.validateFile(candidate, cfg.AllowDuplicateKeys)
			run.Files = append(run.Files, outcome)
			if !outcome.Success {
				if err := m.Transition(domain.StateFailed); err != nil {
					return nil, err
				}
				run.State = m.State()
				run.Failure = &run.Files[len(run.Files)-1]
				return run, nil
			}
		}
	}

	if err := m.Transition(domain.StateSucceeded); err != nil {
		return nil, err
	}
	run.State = m.State()
	return run, nil
}

func abort(m *domain.RunMachine, err error) error {
	// Failing is allowed from every non-terminal state.
	_ = m.Transition(domain.StateFailed)
	return err
}

func (s *ValidateService) validateFile(c domain.FileCandidate, allowDuplicateKeys bool) domain.FileOutcome {
	s.sink.Emit(domain.Event{Kind: domain.EventFileStarted, Path: c.Path})

	outcome := domain.FileOutcome{Path: c.Path, Success: true}
	s.readDocuments(c, allowDuplicateKeys, &outcome)

	if outcome.Success {
		s.sink.Emit(domain.Event{Kind: domain.EventFileValid, Path: c.Path})
	} else {
		s.sink.Emit(domain.Event{
			Kind:     domain.EventFileFailed,
			Path:     c.Path,
			Document: outcome.Document,
			Err:      outcome.Err,
		})
	}
	return outcome
}

// readDocuments validates the documents of c into outcome. The content
// stream is closed before it returns, on every path.
func (s *ValidateService) readDocuments(c domain.FileCandidate, allowDuplicateKeys bool, outcome *domain.FileOutcome) {
	rc, err := s.opener.Open(c)
	if err != nil {
		outcome.Fail(0, asReadError(c.Path, err))
		return
	}
	defer rc.Close()

	r := &trackingReader{r: rc}
	for doc := range s.validator.Documents(r, allowDuplicateKeys) {
		if !doc.Valid && r.err != nil {
			doc = domain.InvalidDocument(doc.Index, &domain.ReadError{Path: c.Path, Err: r.err})
		}
		outcome.Documents = append(outcome.Documents, doc)
		if !doc.Valid {
			outcome.Fail(doc.Index, doc.Err)
			return
		}
		s.sink.Emit(domain.Event{Kind: domain.EventDocumentValid, Path: c.Path, Document: doc.Index})
	}

	if r.err != nil {
		outcome.Fail(0, &domain.ReadError{Path: c.Path, Err: r.err})
	}
}

func asReadError(path string, err error) error {
	if errors.Is(err, domain.ErrRead) {
		return err
	}
	return &domain.ReadError{Path: path, Err: err}
}

// trackingReader remembers the first non-EOF read error so that I/O
// failures are not reported as YAML syntax errors.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
