/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
)

// Registry is a thread-safe store of mapping values of type V addressed by Key.
// Each mapping domain owns exactly one Registry.
type Registry[V any] struct {
	name    string
	logger  *zap.Logger
	mu      sync.RWMutex
	entries map[Key]V
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger mutations are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an empty Registry. name identifies the mapping domain in errors and logs.
func New[V any](name string, opts ...Option) *Registry[V] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Registry[V]{
		name:    name,
		logger:  o.logger.With(zap.String("registry", name)),
		entries: make(map[Key]V),
	}
}

// Name returns the mapping domain name.
func (r *Registry[V]) Name() string {
	return r.name
}

// Add stores value under key. If key is taken and force is false it fails with
// errors.ErrMappingAlreadyExists and leaves the existing value untouched; with force
// the value is replaced. The check and the write happen under one lock, so a forced
// add is a single atomic upsert.
func (r *Registry[V]) Add(key Key, value V, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.entries[key]
	if exists && !force {
		r.logger.Debug("mapping rejected", zap.Stringer("key", key))
		return errors.NewMappingExistsError(r.name, key.String())
	}

	r.entries[key] = value
	r.logger.Debug("mapping added",
		zap.Stringer("key", key),
		zap.Bool("force", force),
		zap.Bool("replaced", exists))
	return nil
}

// Get returns the value stored under key.
func (r *Registry[V]) Get(key Key) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.entries[key]
	return v, ok
}

// Remove deletes the value stored under key. Removing an absent key is a no-op.
func (r *Registry[V]) Remove(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; !exists {
		return
	}
	delete(r.entries, key)
	r.logger.Debug("mapping removed", zap.Stringer("key", key))
}

// Clear deletes every entry of this registry.
func (r *Registry[V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	r.entries = make(map[Key]V)
	r.logger.Debug("registry cleared", zap.Int("removed", n))
}

// Len returns the number of entries.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns all keys currently stored, in no particular order.
func (r *Registry[V]) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}
