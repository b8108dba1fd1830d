package frontend

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// User-facing notifications.
const (
	MsgFetchFailed         = "Failed to fetch restaurants. Please try again later."
	MsgDetailFetchFailed   = "Failed to fetch restaurant details."
	MsgLocationUnavailable = "Unable to retrieve your location."
)

// ErrStaleResponse is returned when a newer filter change superseded the
// fetch. The response was dropped.
var ErrStaleResponse = errors.New("stale response discarded")

// Fetcher loads one page of search results.
type Fetcher interface {
	FetchRestaurants(ctx context.Context, params url.Values) (*domain.PagedResult, error)
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

type discardNotifier struct{}

func (discardNotifier) Notify(string) {}

// ResultAccumulator builds the display list from successive result pages.
//
// FilterChanged starts a new generation and replaces the list with page one.
// LoadMore appends the next page of the current generation. Any response
// belonging to an older generation is dropped, so only the latest filter
// set can mutate the list. Network calls run outside the lock.
type ResultAccumulator struct {
	fetcher  Fetcher
	notifier Notifier

	mu         sync.Mutex
	items      []domain.RestaurantSummary
	token      string
	params     url.Values
	generation uint64
	loading    bool
}

// NewResultAccumulator creates an empty accumulator. A nil notifier
// discards messages.
func NewResultAccumulator(f Fetcher, n Notifier) *ResultAccumulator {
	if n == nil {
		n = discardNotifier{}
	}
	return &ResultAccumulator{fetcher: f, notifier: n}
}

// FilterChanged fetches the first page for params and replaces the display
// list with it. On failure the list is left as it was.
func (a *ResultAccumulator) FilterChanged(ctx context.Context, params url.Values) error {
	first := cloneValues(params)
	first.Del(domain.ParamPageToken)

	a.mu.Lock()
	a.generation++
	gen := a.generation
	prev := a.params
	a.params = first
	a.loading = true
	a.mu.Unlock()

	page, err := a.fetcher.FetchRestaurants(ctx, cloneValues(first))

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return ErrStaleResponse
	}
	a.loading = false
	if err != nil {
		// Keep paging the list that is still on screen.
		a.params = prev
		a.notifier.Notify(MsgFetchFailed)
		return err
	}

	a.items = append([]domain.RestaurantSummary(nil), pageItems(page)...)
	a.token = pageToken(page)
	return nil
}

// LoadMore fetches the next page and appends it. It reports false without
// fetching when there is no continuation token or a fetch is in flight.
func (a *ResultAccumulator) LoadMore(ctx context.Context) (bool, error) {
	a.mu.Lock()
	if a.token == "" || a.loading {
		a.mu.Unlock()
		return false, nil
	}
	gen := a.generation
	params := cloneValues(a.params)
	params.Set(domain.ParamPageToken, a.token)
	a.loading = true
	a.mu.Unlock()

	page, err := a.fetcher.FetchRestaurants(ctx, params)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return true, ErrStaleResponse
	}
	a.loading = false
	if err != nil {
		a.notifier.Notify(MsgFetchFailed)
		return true, err
	}

	// Duplicate place ids across pages are kept as received.
	a.items = append(a.items, pageItems(page)...)
	a.token = pageToken(page)
	return true, nil
}

// Items returns a copy of the display list.
func (a *ResultAccumulator) Items() []domain.RestaurantSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.RestaurantSummary(nil), a.items...)
}

// Token returns the continuation token, empty at the end of pagination.
func (a *ResultAccumulator) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// CanLoadMore reports whether LoadMore would fetch.
func (a *ResultAccumulator) CanLoadMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token != "" && !a.loading
}

// Loading reports whether a fetch is in flight.
func (a *ResultAccumulator) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func pageItems(p *domain.PagedResult) []domain.RestaurantSummary {
	if p == nil {
		return nil
	}
	return p.Items
}

func pageToken(p *domain.PagedResult) string {
	if p == nil {
		return ""
	}
	return p.ContinuationToken
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
