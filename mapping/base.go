/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
	"github.com/suparena/entitymap/registry"
)

// Option configures a mapper.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger reports registry mutations to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newRegistry[V any](domain string, opts []Option) *registry.Registry[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return registry.New[V](domain, registry.WithLogger(o.logger))
}

// typeLevel is the add/get/remove path shared by the mappers keyed by a type alone.
type typeLevel[V any] struct {
	reg *registry.Registry[V]
	// entity makes pointer types share the entry of their element type.
	entity bool
}

func (b *typeLevel[V]) key(t reflect.Type) registry.Key {
	if b.entity {
		t = property.Indirect(t)
	}
	return registry.KeyForType(t)
}

func (b *typeLevel[V]) add(t reflect.Type, v V, force bool) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	return b.reg.Add(b.key(t), v, force)
}

func (b *typeLevel[V]) get(t reflect.Type) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	return b.reg.Get(b.key(t))
}

func (b *typeLevel[V]) remove(t reflect.Type) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	b.reg.Remove(b.key(t))
	return nil
}

// Clear removes every mapping of this domain.
func (b *typeLevel[V]) Clear() {
	b.reg.Clear()
}

// Len returns the number of mappings of this domain.
func (b *typeLevel[V]) Len() int {
	return b.reg.Len()
}

// propertyLevel is the add/get/remove path shared by the mappers keyed by a
// (type, property) pair. Properties are always resolved through the property cache
// before a key is computed.
type propertyLevel[V any] struct {
	reg *registry.Registry[V]
}

func (b *propertyLevel[V]) resolve(t reflect.Type, sel property.Selector) (reflect.Type, *property.Property, error) {
	if t == nil {
		return nil, nil, errors.NewNullArgumentError("type")
	}
	t = property.Indirect(t)
	p, err := property.Resolve(t, sel)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

func (b *propertyLevel[V]) add(t reflect.Type, p *property.Property, v V, force bool) error {
	return b.reg.Add(registry.KeyForProperty(t, p), v, force)
}

func (b *propertyLevel[V]) get(t reflect.Type, sel property.Selector) (V, bool, error) {
	var zero V
	t, p, err := b.resolve(t, sel)
	if err != nil {
		return zero, false, err
	}
	v, ok := b.reg.Get(registry.KeyForProperty(t, p))
	return v, ok, nil
}

func (b *propertyLevel[V]) getProperty(t reflect.Type, p *property.Property) (V, bool) {
	var zero V
	if p == nil {
		return zero, false
	}
	t, p, err := b.resolve(t, p)
	if err != nil {
		return zero, false
	}
	return b.reg.Get(registry.KeyForProperty(t, p))
}

func (b *propertyLevel[V]) remove(t reflect.Type, sel property.Selector) error {
	t, p, err := b.resolve(t, sel)
	if err != nil {
		return err
	}
	b.reg.Remove(registry.KeyForProperty(t, p))
	return nil
}

// Clear removes every mapping of this domain.
func (b *propertyLevel[V]) Clear() {
	b.reg.Clear()
}

// Len returns the number of mappings of this domain.
func (b *propertyLevel[V]) Len() int {
	return b.reg.Len()
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
