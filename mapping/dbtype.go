/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// DbType is the database type a value is converted to before it is sent to a provider.
type DbType int

const (
	DbTypeAnsiString DbType = iota
	DbTypeBinary
	DbTypeByte
	DbTypeBoolean
	DbTypeCurrency
	DbTypeDate
	DbTypeDateTime
	DbTypeDecimal
	DbTypeDouble
	DbTypeGuid
	DbTypeInt16
	DbTypeInt32
	DbTypeInt64
	DbTypeObject
	DbTypeSByte
	DbTypeSingle
	DbTypeString
	DbTypeTime
	DbTypeUInt16
	DbTypeUInt32
	DbTypeUInt64
	DbTypeVarNumeric
	DbTypeAnsiStringFixedLength
	DbTypeStringFixedLength
	DbTypeXml
	DbTypeDateTime2
	DbTypeDateTimeOffset
)

var dbTypeNames = [...]string{
	"AnsiString",
	"Binary",
	"Byte",
	"Boolean",
	"Currency",
	"Date",
	"DateTime",
	"Decimal",
	"Double",
	"Guid",
	"Int16",
	"Int32",
	"Int64",
	"Object",
	"SByte",
	"Single",
	"String",
	"Time",
	"UInt16",
	"UInt32",
	"UInt64",
	"VarNumeric",
	"AnsiStringFixedLength",
	"StringFixedLength",
	"Xml",
	"DateTime2",
	"DateTimeOffset",
}

func (d DbType) String() string {
	if !d.IsValid() {
		return "DbType(" + strconv.Itoa(int(d)) + ")"
	}
	return dbTypeNames[d]
}

// IsValid reports whether d is one of the declared DbType constants.
func (d DbType) IsValid() bool {
	return d >= 0 && int(d) < len(dbTypeNames)
}

// DbTypeCount is the number of declared DbType constants.
const DbTypeCount = len(dbTypeNames)

// ParseDbType returns the DbType named name, case-insensitively.
func ParseDbType(name string) (DbType, error) {
	for i, n := range dbTypeNames {
		if strings.EqualFold(n, name) {
			return DbType(i), nil
		}
	}
	return 0, errors.NewInvalidArgumentError("dbType", "unknown DbType "+name)
}

func validDbType(d DbType) error {
	if !d.IsValid() {
		return errors.NewInvalidArgumentError("dbType", d.String()+" is not a DbType")
	}
	return nil
}

// TypeMapper maps Go types to the DbType their values are stored as. Unlike the
// entity mappers, pointer types keep their own entries.
type TypeMapper struct {
	typeLevel[DbType]
}

// NewTypeMapper creates an empty TypeMapper.
func NewTypeMapper(opts ...Option) *TypeMapper {
	return &TypeMapper{typeLevel[DbType]{reg: newRegistry[DbType]("type", opts)}}
}

// Add maps t to dbType.
func (m *TypeMapper) Add(t reflect.Type, dbType DbType, force bool) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	if err := validDbType(dbType); err != nil {
		return err
	}
	return m.add(t, dbType, force)
}

// Get returns the DbType mapped to t.
func (m *TypeMapper) Get(t reflect.Type) (DbType, bool) {
	return m.get(t)
}

// Remove deletes the DbType mapping of t, if any.
func (m *TypeMapper) Remove(t reflect.Type) error {
	return m.remove(t)
}

// AddDbType maps T to dbType.
func AddDbType[T any](m *TypeMapper, dbType DbType, force bool) error {
	return m.Add(property.TypeOf[T](), dbType, force)
}

// GetDbType returns the DbType mapped to T.
func GetDbType[T any](m *TypeMapper) (DbType, bool) {
	return m.Get(property.TypeOf[T]())
}

// RemoveDbType deletes the DbType mapping of T.
func RemoveDbType[T any](m *TypeMapper) error {
	return m.Remove(property.TypeOf[T]())
}

// PropertyTypeMapper maps entity properties to DbTypes, overriding TypeMapper for
// that one property.
type PropertyTypeMapper struct {
	propertyLevel[DbType]
}

// NewPropertyTypeMapper creates an empty PropertyTypeMapper.
func NewPropertyTypeMapper(opts ...Option) *PropertyTypeMapper {
	return &PropertyTypeMapper{propertyLevel[DbType]{reg: newRegistry[DbType]("property type", opts)}}
}

// Add maps the property of t selected by sel to dbType.
func (m *PropertyTypeMapper) Add(t reflect.Type, sel property.Selector, dbType DbType, force bool) error {
	t, p, err := m.resolve(t, sel)
	if err != nil {
		return err
	}
	if err := validDbType(dbType); err != nil {
		return err
	}
	return m.add(t, p, dbType, force)
}

// Get returns the DbType mapped to the selected property.
func (m *PropertyTypeMapper) Get(t reflect.Type, sel property.Selector) (DbType, bool, error) {
	return m.get(t, sel)
}

// GetProperty returns the DbType mapped to p on t.
func (m *PropertyTypeMapper) GetProperty(t reflect.Type, p *property.Property) (DbType, bool) {
	return m.getProperty(t, p)
}

// Remove deletes the DbType mapping of the selected property, if any.
func (m *PropertyTypeMapper) Remove(t reflect.Type, sel property.Selector) error {
	return m.remove(t, sel)
}

// AddPropertyDbType maps the property of T selected by sel to dbType.
func AddPropertyDbType[T any](m *PropertyTypeMapper, sel property.Selector, dbType DbType, force bool) error {
	return m.Add(property.TypeOf[T](), sel, dbType, force)
}

// GetPropertyDbType returns the DbType mapped to the property of T selected by sel.
func GetPropertyDbType[T any](m *PropertyTypeMapper, sel property.Selector) (DbType, bool, error) {
	return m.Get(property.TypeOf[T](), sel)
}

// RemovePropertyDbType deletes the DbType mapping of the property of T selected by sel.
func RemovePropertyDbType[T any](m *PropertyTypeMapper, sel property.Selector) error {
	return m.Remove(property.TypeOf[T](), sel)
}
