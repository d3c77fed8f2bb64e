/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entitymap

import (
	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

// EntityDefinition describes the mappings of entity type T in one chain. Each method
// delegates to exactly one mapper call of the underlying Mappers; the first error is
// kept and reported by Err.
type EntityDefinition[T any] struct {
	mappers *mapping.Mappers
	err     error
}

// For starts a definition of T against m.
func For[T any](m *mapping.Mappers) *EntityDefinition[T] {
	d := &EntityDefinition[T]{mappers: m}
	if m == nil {
		d.err = errors.NewNullArgumentError("mappers")
	}
	return d
}

// Entity starts a definition of T against mapping.Default().
func Entity[T any]() *EntityDefinition[T] {
	return For[T](mapping.Default())
}

func forced(force []bool) bool {
	return len(force) > 0 && force[0]
}

func (d *EntityDefinition[T]) record(err error) *EntityDefinition[T] {
	if err != nil && d.err == nil {
		d.err = err
	}
	return d
}

// Table maps T to table name.
func (d *EntityDefinition[T]) Table(name string, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddTable[T](d.mappers.Table, name, forced(force)))
}

// Column maps the selected property to column name.
func (d *EntityDefinition[T]) Column(sel property.Selector, name string, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddColumn[T](d.mappers.Column, sel, name, forced(force)))
}

// Primary designates the selected property as the primary key of T.
func (d *EntityDefinition[T]) Primary(sel property.Selector, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddPrimary[T](d.mappers.Primary, sel, forced(force)))
}

// Identity designates the selected property as the identity of T.
func (d *EntityDefinition[T]) Identity(sel property.Selector, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddIdentity[T](d.mappers.Identity, sel, forced(force)))
}

// DbType maps the selected property to dbType.
func (d *EntityDefinition[T]) DbType(sel property.Selector, dbType mapping.DbType, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddPropertyDbType[T](d.mappers.PropertyType, sel, dbType, forced(force)))
}

// ClassHandler maps T to handler.
func (d *EntityDefinition[T]) ClassHandler(handler mapping.ClassHandler[T], force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddClassHandler[T](d.mappers.ClassHandler, handler, forced(force)))
}

// PropertyHandler maps the selected property to handler, which must implement
// mapping.PropertyHandler with a Go-side type assignable to the property type.
func (d *EntityDefinition[T]) PropertyHandler(sel property.Selector, handler any, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(d.mappers.PropertyHandler.Add(property.TypeOf[T](), sel, handler, forced(force)))
}

// PropertyValueAttributes maps the selected property to attrs.
func (d *EntityDefinition[T]) PropertyValueAttributes(sel property.Selector, attrs []mapping.Attribute, force ...bool) *EntityDefinition[T] {
	if d.mappers == nil {
		return d
	}
	return d.record(mapping.AddAttributes[T](d.mappers.PropertyValueAttribute, sel, attrs, forced(force)))
}

// Err returns the first error recorded by the chain.
func (d *EntityDefinition[T]) Err() error {
	return d.err
}
