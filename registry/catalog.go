/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// Catalog maps type names used in mapping definitions (like "Customer") to Go types.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		types: make(map[string]reflect.Type),
	}
}

// Register associates name with t. Registering the same pair twice is a no-op;
// registering a taken name for another type fails with errors.ErrMappingAlreadyExists.
func (c *Catalog) Register(name string, t reflect.Type) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	if name == "" {
		return errors.NewInvalidArgumentError("name", "must not be blank")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.types[name]; exists {
		if existing == t {
			return nil
		}
		return errors.NewMappingExistsError("catalog", name)
	}
	c.types[name] = t
	return nil
}

// RegisterType registers T under name.
func RegisterType[T any](c *Catalog, name string) error {
	return c.Register(name, property.TypeOf[T]())
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (reflect.Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.types[name]
	if !ok {
		return nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no type registered for name %q", name))
	}
	return t, nil
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
