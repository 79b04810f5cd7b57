// Package inflight guards mutating requests so that the same record is never
// updated or deleted by two overlapping requests.
//
// Keys look like "product/12". A Guard hands out a release function on
// success; callers must invoke it once the request has finished.
package inflight

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned when a request for the same key is still running.
var ErrInFlight = errors.New("a request for this record is already in flight")

// Guard serializes mutating requests per key.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// BusyError reports which key was already held.
type BusyError struct {
	Key string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInFlight.Error(), e.Key)
}

func (e *BusyError) Is(target error) bool {
	return target == ErrInFlight
}

// Memory is an in-process Guard.
type Memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemory creates an empty in-process guard.
func NewMemory() *Memory {
	return &Memory{held: make(map[string]struct{})}
}

// Acquire marks key as in flight or fails with *BusyError.
func (m *Memory) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.held[key]; ok {
		return nil, &BusyError{Key: key}
	}
	m.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.held, key)
			m.mu.Unlock()
		})
	}, nil
}

// Held reports whether key is currently in flight.
func (m *Memory) Held(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.held[key]
	return ok
}

// Noop never blocks.
type Noop struct{}

func (Noop) Acquire(context.Context, string) (func(), error) {
	return func() {}, nil
}

// Chain acquires every guard in order and releases them in reverse. If one
// refuses, the guards already acquired are released.
type Chain []Guard

func (c Chain) Acquire(ctx context.Context, key string) (func(), error) {
	releases := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, g := range c {
		if g == nil {
			continue
		}
		release, err := g.Acquire(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}
	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}
