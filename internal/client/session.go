package client

import (
	"context"
	"errors"
	"sync"

	"github.com/BerylCAtieno/business-idea-generator/internal/models"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateShowResult State = "show_result"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrResultShown        = errors.New("reset the session before submitting again")
)

// IdeaFetcher is satisfied by *Client.
type IdeaFetcher interface {
	FetchBusinessIdea(ctx context.Context, req models.IdeaRequest) (*models.BusinessIdea, error)
}

// Session tracks one form: Idle, Submitting, then ShowResult on success or
// back to Idle with the error on failure. Reset returns to Idle.
type Session struct {
	fetcher IdeaFetcher

	mu     sync.Mutex
	state  State
	result *models.BusinessIdea
	err    error
}

func NewSession(fetcher IdeaFetcher) *Session {
	return &Session{fetcher: fetcher, state: StateIdle}
}

func (s *Session) Submit(ctx context.Context, req models.IdeaRequest) (*models.BusinessIdea, error) {
	s.mu.Lock()
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case StateShowResult:
		s.mu.Unlock()
		return nil, ErrResultShown
	}
	s.state = StateSubmitting
	s.err = nil
	s.mu.Unlock()

	idea, err := s.fetcher.FetchBusinessIdea(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		s.err = err
		return nil, err
	}
	s.state = StateShowResult
	s.result = idea
	return idea, nil
}

// Reset leaves the result view. It does nothing while a submission is in flight.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return
	}
	s.state = StateIdle
	s.result = nil
	s.err = nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Result() *models.BusinessIdea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err is the last failure, shown next to the form until the next submit.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
