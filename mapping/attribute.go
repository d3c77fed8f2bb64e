/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"
	"slices"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// Attribute is a named value applied to a database parameter when a property is bound.
type Attribute interface {
	Name() string
	Value() any
}

// NameAttribute overrides the parameter name.
type NameAttribute string

func (a NameAttribute) Name() string { return "ParameterName" }
func (a NameAttribute) Value() any   { return string(a) }

// DbTypeAttribute sets the parameter DbType.
type DbTypeAttribute DbType

func (a DbTypeAttribute) Name() string { return "DbType" }
func (a DbTypeAttribute) Value() any   { return DbType(a) }

// SizeAttribute sets the parameter size.
type SizeAttribute int

func (a SizeAttribute) Name() string { return "Size" }
func (a SizeAttribute) Value() any   { return int(a) }

// PrecisionAttribute sets the parameter precision.
type PrecisionAttribute uint8

func (a PrecisionAttribute) Name() string { return "Precision" }
func (a PrecisionAttribute) Value() any   { return uint8(a) }

// ScaleAttribute sets the parameter scale.
type ScaleAttribute uint8

func (a ScaleAttribute) Name() string { return "Scale" }
func (a ScaleAttribute) Value() any   { return uint8(a) }

// IsNullableAttribute marks the parameter as nullable or not.
type IsNullableAttribute bool

func (a IsNullableAttribute) Name() string { return "IsNullable" }
func (a IsNullableAttribute) Value() any   { return bool(a) }

// ParameterAttribute is a free-form name/value pair for provider specific parameter
// settings.
type ParameterAttribute struct {
	Key string
	Val any
}

func (a ParameterAttribute) Name() string { return a.Key }
func (a ParameterAttribute) Value() any   { return a.Val }

// PropertyValueAttributeMapper maps properties, or every property of a given Go type,
// to parameter attributes. Lists are copied on the way in and out.
type PropertyValueAttributeMapper struct {
	propertyLevel[[]Attribute]
	types typeLevel[[]Attribute]
}

// NewPropertyValueAttributeMapper creates an empty PropertyValueAttributeMapper.
func NewPropertyValueAttributeMapper(opts ...Option) *PropertyValueAttributeMapper {
	return &PropertyValueAttributeMapper{
		propertyLevel: propertyLevel[[]Attribute]{reg: newRegistry[[]Attribute]("property value attribute", opts)},
		types:         typeLevel[[]Attribute]{reg: newRegistry[[]Attribute]("type value attribute", opts)},
	}
}

func checkAttributes(attrs []Attribute) error {
	if len(attrs) == 0 {
		return errors.NewNullArgumentError("attributes")
	}
	for _, a := range attrs {
		if a == nil {
			return errors.NewNullArgumentError("attribute")
		}
	}
	return nil
}

// Add maps the property of t selected by sel to attrs.
func (m *PropertyValueAttributeMapper) Add(t reflect.Type, sel property.Selector, attrs []Attribute, force bool) error {
	t, p, err := m.resolve(t, sel)
	if err != nil {
		return err
	}
	if err := checkAttributes(attrs); err != nil {
		return err
	}
	return m.add(t, p, slices.Clone(attrs), force)
}

// Get returns the attributes mapped to the selected property.
func (m *PropertyValueAttributeMapper) Get(t reflect.Type, sel property.Selector) ([]Attribute, bool, error) {
	attrs, ok, err := m.get(t, sel)
	return slices.Clone(attrs), ok, err
}

// GetProperty returns the attributes mapped to p on t.
func (m *PropertyValueAttributeMapper) GetProperty(t reflect.Type, p *property.Property) ([]Attribute, bool) {
	attrs, ok := m.getProperty(t, p)
	return slices.Clone(attrs), ok
}

// Remove deletes the attribute mapping of the selected property, if any.
func (m *PropertyValueAttributeMapper) Remove(t reflect.Type, sel property.Selector) error {
	return m.remove(t, sel)
}

// AddType maps every property of Go type propertyType to attrs.
func (m *PropertyValueAttributeMapper) AddType(propertyType reflect.Type, attrs []Attribute, force bool) error {
	if propertyType == nil {
		return errors.NewNullArgumentError("type")
	}
	if err := checkAttributes(attrs); err != nil {
		return err
	}
	return m.types.add(propertyType, slices.Clone(attrs), force)
}

// GetType returns the attributes mapped to Go type propertyType.
func (m *PropertyValueAttributeMapper) GetType(propertyType reflect.Type) ([]Attribute, bool) {
	attrs, ok := m.types.get(propertyType)
	return slices.Clone(attrs), ok
}

// RemoveType deletes the attribute mapping of Go type propertyType, if any.
func (m *PropertyValueAttributeMapper) RemoveType(propertyType reflect.Type) error {
	return m.types.remove(propertyType)
}

// Find returns the effective attributes of p on t: the property mapping if there is
// one, otherwise the mapping of p's Go type.
func (m *PropertyValueAttributeMapper) Find(t reflect.Type, p *property.Property) ([]Attribute, bool) {
	if attrs, ok := m.GetProperty(t, p); ok {
		return attrs, true
	}
	if p == nil {
		return nil, false
	}
	return m.GetType(p.Type)
}

// Clear removes every property and type mapping.
func (m *PropertyValueAttributeMapper) Clear() {
	m.propertyLevel.Clear()
	m.types.Clear()
}

// Len returns the number of property and type mappings.
func (m *PropertyValueAttributeMapper) Len() int {
	return m.propertyLevel.Len() + m.types.Len()
}

// AddAttributes maps the property of T selected by sel to attrs.
func AddAttributes[T any](m *PropertyValueAttributeMapper, sel property.Selector, attrs []Attribute, force bool) error {
	return m.Add(property.TypeOf[T](), sel, attrs, force)
}

// GetAttributes returns the attributes mapped to the property of T selected by sel.
func GetAttributes[T any](m *PropertyValueAttributeMapper, sel property.Selector) ([]Attribute, bool, error) {
	return m.Get(property.TypeOf[T](), sel)
}

// RemoveAttributes deletes the attribute mapping of the property of T selected by sel.
func RemoveAttributes[T any](m *PropertyValueAttributeMapper, sel property.Selector) error {
	return m.Remove(property.TypeOf[T](), sel)
}
