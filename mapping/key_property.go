/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"

	"github.com/suparena/entitymap/property"
)

// keyPropertyMapper designates one property of an entity type, e.g. its primary key.
// The entry is keyed by the type; the value is the resolved property handle.
type keyPropertyMapper struct {
	typeLevel[*property.Property]
}

func newKeyPropertyMapper(domain string, opts []Option) keyPropertyMapper {
	return keyPropertyMapper{typeLevel[*property.Property]{reg: newRegistry[*property.Property](domain, opts), entity: true}}
}

// Add designates the property of t selected by sel.
func (m *keyPropertyMapper) Add(t reflect.Type, sel property.Selector, force bool) error {
	p, err := property.Resolve(t, sel)
	if err != nil {
		return err
	}
	return m.add(t, p, force)
}

// Get returns the property designated for t.
func (m *keyPropertyMapper) Get(t reflect.Type) (*property.Property, bool) {
	return m.get(t)
}

// Remove deletes the designation of t, if any.
func (m *keyPropertyMapper) Remove(t reflect.Type) error {
	return m.remove(t)
}

// PrimaryMapper designates the primary key property of entity types.
type PrimaryMapper struct {
	keyPropertyMapper
}

// NewPrimaryMapper creates an empty PrimaryMapper.
func NewPrimaryMapper(opts ...Option) *PrimaryMapper {
	return &PrimaryMapper{newKeyPropertyMapper("primary", opts)}
}

// IdentityMapper designates the identity (database-generated) property of entity types.
type IdentityMapper struct {
	keyPropertyMapper
}

// NewIdentityMapper creates an empty IdentityMapper.
func NewIdentityMapper(opts ...Option) *IdentityMapper {
	return &IdentityMapper{newKeyPropertyMapper("identity", opts)}
}

// AddPrimary designates the property of T selected by sel as its primary key.
func AddPrimary[T any](m *PrimaryMapper, sel property.Selector, force bool) error {
	return m.Add(property.TypeOf[T](), sel, force)
}

// GetPrimary returns the primary key property of T.
func GetPrimary[T any](m *PrimaryMapper) (*property.Property, bool) {
	return m.Get(property.TypeOf[T]())
}

// RemovePrimary deletes the primary key designation of T.
func RemovePrimary[T any](m *PrimaryMapper) error {
	return m.Remove(property.TypeOf[T]())
}

// AddIdentity designates the property of T selected by sel as its identity.
func AddIdentity[T any](m *IdentityMapper, sel property.Selector, force bool) error {
	return m.Add(property.TypeOf[T](), sel, force)
}

// GetIdentity returns the identity property of T.
func GetIdentity[T any](m *IdentityMapper) (*property.Property, bool) {
	return m.Get(property.TypeOf[T]())
}

// RemoveIdentity deletes the identity designation of T.
func RemoveIdentity[T any](m *IdentityMapper) error {
	return m.Remove(property.TypeOf[T]())
}
