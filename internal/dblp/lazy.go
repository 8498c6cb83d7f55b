package dblp

import (
	"context"
	"sync"
)

// loadFunc fetches and parses the complete field set for a record.
type loadFunc[T any] func(ctx context.Context) (*T, error)

// lazyData defers loading of a record's fields until first access. A
// record is either fully unloaded (nil data) or fully loaded; no
// partial population is ever observable. The mutex serializes
// concurrent first accesses so the record is fetched at most once. A
// failed load leaves the record unloaded and the next access retries.
type lazyData[T any] struct {
	mu   sync.Mutex
	data *T
}

func (l *lazyData[T]) ensure(ctx context.Context, load loadFunc[T]) (*T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.data != nil {
		return l.data, nil
	}
	data, err := load(ctx)
	if err != nil {
		return nil, err
	}
	l.data = data
	return data, nil
}

func (l *lazyData[T]) loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data != nil
}
