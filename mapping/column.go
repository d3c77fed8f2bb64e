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

// ColumnMapper maps entity properties to database column names.
type ColumnMapper struct {
	propertyLevel[string]
}

// NewColumnMapper creates an empty ColumnMapper.
func NewColumnMapper(opts ...Option) *ColumnMapper {
	return &ColumnMapper{propertyLevel[string]{reg: newRegistry[string]("column", opts)}}
}

// Add maps the property of t selected by sel to column name.
func (m *ColumnMapper) Add(t reflect.Type, sel property.Selector, name string, force bool) error {
	t, p, err := m.resolve(t, sel)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.NewInvalidArgumentError("column", "must not be blank")
	}
	return m.add(t, p, name, force)
}

// Get returns the column name mapped to the selected property. The error reports
// selectors that do not resolve; an unmapped property is not an error.
func (m *ColumnMapper) Get(t reflect.Type, sel property.Selector) (string, bool, error) {
	return m.get(t, sel)
}

// GetProperty returns the column name mapped to p on t.
func (m *ColumnMapper) GetProperty(t reflect.Type, p *property.Property) (string, bool) {
	return m.getProperty(t, p)
}

// Remove deletes the column mapping of the selected property, if any.
func (m *ColumnMapper) Remove(t reflect.Type, sel property.Selector) error {
	return m.remove(t, sel)
}

// AddColumn maps the property of T selected by sel to column name.
func AddColumn[T any](m *ColumnMapper, sel property.Selector, name string, force bool) error {
	return m.Add(property.TypeOf[T](), sel, name, force)
}

// GetColumn returns the column name mapped to the property of T selected by sel.
func GetColumn[T any](m *ColumnMapper, sel property.Selector) (string, bool, error) {
	return m.Get(property.TypeOf[T](), sel)
}

// RemoveColumn deletes the column mapping of the property of T selected by sel.
func RemoveColumn[T any](m *ColumnMapper, sel property.Selector) error {
	return m.Remove(property.TypeOf[T](), sel)
}
