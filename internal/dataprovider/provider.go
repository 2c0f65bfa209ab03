// Package dataprovider pages table rows out of a filtered backing query.
package dataprovider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/metrics"
)

// Query is the backing store of a table. Count and Fetch must apply the same
// filter predicate.
type Query[T any] interface {
	Count(ctx context.Context, filter string) (int64, error)
	Fetch(ctx context.Context, filter string, offset, limit int) ([]T, error)
}

// QueryFuncs adapts a pair of functions to Query.
type QueryFuncs[T any] struct {
	CountFunc func(ctx context.Context, filter string) (int64, error)
	FetchFunc func(ctx context.Context, filter string, offset, limit int) ([]T, error)
}

func (q QueryFuncs[T]) Count(ctx context.Context, filter string) (int64, error) {
	return q.CountFunc(ctx, filter)
}

func (q QueryFuncs[T]) Fetch(ctx context.Context, filter string, offset, limit int) ([]T, error) {
	return q.FetchFunc(ctx, filter, offset, limit)
}

// RefreshListener is called with the new filter after it changed.
type RefreshListener func(filter string)

type Provider[T any] struct {
	name  string
	query Query[T]

	mu        sync.Mutex
	filter    string
	listeners []RefreshListener
}

func New[T any](name string, query Query[T]) *Provider[T] {
	return &Provider[T]{name: name, query: query}
}

func (p *Provider[T]) Name() string {
	return p.name
}

func (p *Provider[T]) Filter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

func (p *Provider[T]) OnRefresh(listener RefreshListener) {
	if listener == nil {
		return
	}
	p.mu.Lock()
	p.listeners = append(p.listeners, listener)
	p.mu.Unlock()
}

// SetFilter stores the trimmed filter and notifies listeners when it changed.
func (p *Provider[T]) SetFilter(filter string) bool {
	filter = strings.TrimSpace(filter)

	p.mu.Lock()
	if filter == p.filter {
		p.mu.Unlock()
		return false
	}
	p.filter = filter
	listeners := append([]RefreshListener(nil), p.listeners...)
	p.mu.Unlock()

	for _, listener := range listeners {
		listener(filter)
	}
	return true
}

// Page counts, then fetches rows [offset, offset+limit) under the current filter.
func (p *Provider[T]) Page(ctx context.Context, offset, limit int) (Page[T], error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 1
	}
	filter := p.Filter()
	started := time.Now()
	defer func() {
		metrics.DataProviderQueryDuration.WithLabelValues(p.name).Observe(time.Since(started).Seconds())
	}()

	total, err := p.count(ctx, filter)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := p.fetch(ctx, filter, offset, limit)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Total: total, Offset: offset, Limit: limit}, nil
}

// PageNumber loads a 1-based page, clamping it into the available range.
func (p *Provider[T]) PageNumber(ctx context.Context, page, perPage int) (Page[T], error) {
	if perPage < 1 {
		perPage = 1
	}
	filter := p.Filter()
	started := time.Now()
	defer func() {
		metrics.DataProviderQueryDuration.WithLabelValues(p.name).Observe(time.Since(started).Seconds())
	}()

	total, err := p.count(ctx, filter)
	if err != nil {
		return Page[T]{}, err
	}
	_, _, offset := Paginate(total, page, perPage)
	items, err := p.fetch(ctx, filter, offset, perPage)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Total: total, Offset: offset, Limit: perPage}, nil
}

func (p *Provider[T]) count(ctx context.Context, filter string) (int64, error) {
	metrics.DataProviderQueriesTotal.WithLabelValues(p.name, "count").Inc()
	total, err := p.query.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", p.name, err)
	}
	return total, nil
}

func (p *Provider[T]) fetch(ctx context.Context, filter string, offset, limit int) ([]T, error) {
	metrics.DataProviderQueriesTotal.WithLabelValues(p.name, "fetch").Inc()
	items, err := p.query.Fetch(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch: %w", p.name, err)
	}
	return items, nil
}
