//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
)

// StubFetchRepository implements repositories.FetchRepository by returning a
// fixed session state.
type StubFetchRepository struct {
	State entities.PaginationState
	Err   error

	// spy: calls received
	Endpoints []string
	Options   []entities.FetchOptions
}

var _ repositories.FetchRepository = (*StubFetchRepository)(nil)

func (s *StubFetchRepository) Fetch(
	_ context.Context,
	endpoint string,
	opts entities.FetchOptions,
) repositories.FetchSession {
	s.Endpoints = append(s.Endpoints, endpoint)
	s.Options = append(s.Options, opts)
	return &StubFetchSession{PaginationState: s.State, FetchErr: s.Err}
}

// StubFetchSession implements repositories.FetchSession over a fixed state.
type StubFetchSession struct {
	PaginationState entities.PaginationState
	FetchErr        error

	// spy: call counters
	NextPageCalls int
	RefetchCalls  int
	ResetCalls    int
}

var _ repositories.FetchSession = (*StubFetchSession)(nil)

func (s *StubFetchSession) ID() string                      { return "stub-session" }
func (s *StubFetchSession) State() entities.PaginationState { return s.PaginationState }
func (s *StubFetchSession) Err() error                      { return s.FetchErr }
func (s *StubFetchSession) HasNextPage() bool               { return s.PaginationState.HasNextPage() }

func (s *StubFetchSession) FetchNextPage(_ context.Context) {
	s.NextPageCalls++
}

func (s *StubFetchSession) Refetch(_ context.Context) {
	s.RefetchCalls++
}

func (s *StubFetchSession) Reset() {
	s.ResetCalls++
	s.PaginationState = entities.PaginationState{}
	s.FetchErr = nil
}
