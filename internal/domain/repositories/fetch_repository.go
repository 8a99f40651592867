package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
)

// FetchRepository retrieves one logical JSON resource, transparently handling
// pagination. Every call to Fetch starts an independent session.
//
// The final item set of a session is independent of the order in which pages
// settle; the positional order of items beyond page 1 is not preserved.
type FetchRepository interface {
	// Fetch requests page 1 and, unless opts.SinglePage is set, every remaining
	// page before returning. Failures never surface as a return value: they are
	// recorded in the session state.
	Fetch(ctx context.Context, endpoint string, opts entities.FetchOptions) FetchSession
}

// FetchSession is the observable state of one paginated fetch.
type FetchSession interface {
	// ID identifies the session in logs.
	ID() string

	// State returns a snapshot of the pagination state.
	State() entities.PaginationState

	// Err returns the error behind State().Error, or nil.
	Err() error

	// HasNextPage reports whether FetchNextPage would request anything.
	HasNextPage() bool

	// FetchNextPage requests the page after CurrentPage. It is a no-op while a
	// request is in flight or when no next page exists.
	FetchNextPage(ctx context.Context)

	// Refetch clears the state and fetches again with the original options.
	Refetch(ctx context.Context)

	// Reset clears the state without issuing a request. Responses of requests
	// started before the reset are discarded.
	Reset()
}
