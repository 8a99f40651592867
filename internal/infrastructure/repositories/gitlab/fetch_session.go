package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// fetchSession holds the state of one paginated fetch. Every fetch round
// captures the generation it started under; a result whose generation is no
// longer current belongs to a reset or superseded round and is dropped.
type fetchSession struct {
	id       string
	fetcher  *Fetcher
	endpoint string
	opts     entities.FetchOptions

	mu          sync.Mutex
	generation  uint64
	currentPage int
	totalPages  int
	total       int
	isLoading   bool
	err         error
	loaded      bool
	isList      bool
	document    json.RawMessage
	items       []json.RawMessage
}

func newFetchSession(fetcher *Fetcher, endpoint string, opts entities.FetchOptions) *fetchSession {
	return &fetchSession{
		id:       uuid.NewString(),
		fetcher:  fetcher,
		endpoint: endpoint,
		opts:     opts,
	}
}

func (s *fetchSession) ID() string {
	return s.id
}

func (s *fetchSession) State() entities.PaginationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := entities.PaginationState{
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPages,
		Total:       s.total,
		IsLoading:   s.isLoading,
		Data:        s.dataLocked(),
		Items:       slices.Clone(s.items),
	}
	if s.err != nil {
		state.Error = s.err.Error()
	}
	return state
}

func (s *fetchSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fetchSession) HasNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage < s.totalPages
}

// FetchNextPage requests currentPage+1. It does nothing while a round is in
// flight or when no further page exists.
func (s *fetchSession) FetchNextPage(ctx context.Context) {
	s.mu.Lock()
	if s.isLoading || s.currentPage >= s.totalPages {
		s.mu.Unlock()
		return
	}
	generation := s.generation
	next := s.currentPage + 1
	s.isLoading = true
	s.err = nil
	s.mu.Unlock()

	result, err := s.fetcher.requestPage(ctx, s.fetcher.buildURL(s.endpoint, s.opts, next), s.opts.Headers)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return
	}
	s.isLoading = false
	if err != nil {
		s.failLocked(err, "Error fetching next page")
		return
	}
	s.applyTotalsLocked(result)
	if s.isList && result.isList {
		s.items = append(s.items, result.items...)
	}
	s.currentPage = next
}

func (s *fetchSession) Refetch(ctx context.Context) {
	s.fetchAll(ctx)
}

func (s *fetchSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.clearLocked()
}

func (s *fetchSession) fetchAll(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.clearLocked()
	s.isLoading = true
	s.mu.Unlock()

	first, err := s.fetcher.requestPage(ctx, s.fetcher.buildURL(s.endpoint, s.opts, 1), s.opts.Headers)

	s.mu.Lock()
	if generation != s.generation {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.isLoading = false
		s.failLocked(err, "Error fetching data")
		s.mu.Unlock()
		return
	}
	s.applyTotalsLocked(first)
	s.loaded = true
	s.isList = first.isList
	s.document = first.document
	s.items = first.items
	s.currentPage = 1
	totalPages := s.totalPages
	s.mu.Unlock()

	if s.opts.FetchAllPages() && totalPages > 1 {
		s.fetchRemaining(ctx, generation, totalPages)
	}

	s.mu.Lock()
	if generation == s.generation {
		s.isLoading = false
	}
	s.mu.Unlock()
}

// fetchRemaining loads pages 2..totalPages concurrently. Pages are merged in
// the order they settle. After the first failure, pages that settle later are
// not merged; the ones merged before it stay.
func (s *fetchSession) fetchRemaining(ctx context.Context, generation uint64, totalPages int) {
	group := new(errgroup.Group)
	if s.fetcher.concurrency > 0 {
		group.SetLimit(s.fetcher.concurrency)
	}

	for page := 2; page <= totalPages; page++ {
		group.Go(func() error {
			result, err := s.fetcher.requestPage(ctx, s.fetcher.buildURL(s.endpoint, s.opts, page), s.opts.Headers)

			s.mu.Lock()
			defer s.mu.Unlock()
			if generation != s.generation {
				return nil
			}
			if err != nil {
				if s.err == nil {
					s.failLocked(err, "Error fetching data")
				}
				return err
			}
			if s.err != nil {
				return nil
			}
			s.applyTotalsLocked(result)
			if s.isList && result.isList {
				s.items = append(s.items, result.items...)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation == s.generation && s.err == nil {
		s.currentPage = totalPages
	}
}

// applyTotalsLocked keeps the previous totals when a header is missing.
func (s *fetchSession) applyTotalsLocked(result pageResult) {
	if result.hasTotal {
		s.total = result.total
	}
	if result.hasTotalPages {
		s.totalPages = result.totalPages
	}
}

func (s *fetchSession) failLocked(err error, message string) {
	s.err = err
	s.fetcher.metrics.ObserveFailure(failureReason(err))
	logger.WithField("session", s.id).Errorf("%s: %v", message, err)
}

func (s *fetchSession) clearLocked() {
	s.currentPage = 0
	s.totalPages = 0
	s.total = 0
	s.isLoading = false
	s.err = nil
	s.loaded = false
	s.isList = false
	s.document = nil
	s.items = nil
}

func (s *fetchSession) dataLocked() json.RawMessage {
	if !s.loaded {
		return nil
	}
	if !s.isList {
		return s.document
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range s.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(item)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
