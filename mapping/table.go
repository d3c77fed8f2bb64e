/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"
	"strings"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// TableMapper maps entity types to database table names.
type TableMapper struct {
	typeLevel[string]
}

// NewTableMapper creates an empty TableMapper.
func NewTableMapper(opts ...Option) *TableMapper {
	return &TableMapper{typeLevel[string]{reg: newRegistry[string]("table", opts), entity: true}}
}

// Add maps t to table name. A blank name fails with errors.ErrInvalidArgument.
func (m *TableMapper) Add(t reflect.Type, name string, force bool) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	if strings.TrimSpace(name) == "" {
		return errors.NewInvalidArgumentError("table", "must not be blank")
	}
	return m.add(t, name, force)
}

// Get returns the table name mapped to t.
func (m *TableMapper) Get(t reflect.Type) (string, bool) {
	return m.get(t)
}

// Remove deletes the table mapping of t, if any.
func (m *TableMapper) Remove(t reflect.Type) error {
	return m.remove(t)
}

// AddTable maps T to table name.
func AddTable[T any](m *TableMapper, name string, force bool) error {
	return m.Add(property.TypeOf[T](), name, force)
}

// GetTable returns the table name mapped to T.
func GetTable[T any](m *TableMapper) (string, bool) {
	return m.Get(property.TypeOf[T]())
}

// RemoveTable deletes the table mapping of T.
func RemoveTable[T any](m *TableMapper) error {
	return m.Remove(property.TypeOf[T]())
}
