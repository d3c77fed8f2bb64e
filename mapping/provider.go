/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"reflect"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

// DbSetting describes the dialect of a connection type.
type DbSetting interface {
	Dialect() string
	ParameterPrefix() string
	QuoteIdentifier(name string) string
}

// DbHelper converts values for a connection type.
type DbHelper interface {
	// ConvertValue converts v to the provider representation of dbType.
	ConvertValue(v any, dbType DbType) (any, error)
	// DbTypeOf returns the default DbType of Go type t.
	DbTypeOf(t reflect.Type) (DbType, bool)
}

// StatementBuilder builds provider requests for a connection type. The concrete
// request types belong to the provider.
type StatementBuilder interface {
	CreateGet(t reflect.Type, key any) (any, error)
	CreatePut(entity any) (any, error)
	CreateDelete(t reflect.Type, key any) (any, error)
}

// serviceMapper maps connection types to a provider service S. Connection types are
// used as given, so *Conn and Conn are distinct keys.
type serviceMapper[S any] struct {
	typeLevel[S]
	capability string
}

func newServiceMapper[S any](domain, capability string, opts []Option) serviceMapper[S] {
	return serviceMapper[S]{
		typeLevel:  typeLevel[S]{reg: newRegistry[S](domain, opts)},
		capability: capability,
	}
}

// Add maps connection type conn to service.
func (m *serviceMapper[S]) Add(conn reflect.Type, service S, force bool) error {
	if conn == nil {
		return errors.NewNullArgumentError("type")
	}
	if any(service) == nil {
		return errors.NewNullArgumentError(m.capability)
	}
	return m.add(conn, service, force)
}

// AddValue maps connection type conn to v, which must implement the service
// interface of this mapper.
func (m *serviceMapper[S]) AddValue(conn reflect.Type, v any, force bool) error {
	if conn == nil {
		return errors.NewNullArgumentError("type")
	}
	if v == nil {
		return errors.NewNullArgumentError(m.capability)
	}
	service, ok := v.(S)
	if !ok {
		return errors.NewInvalidMappingTypeError(m.reg.Name(), typeName(reflect.TypeOf(v)), m.capability)
	}
	return m.add(conn, service, force)
}

// Get returns the service mapped to connection type conn.
func (m *serviceMapper[S]) Get(conn reflect.Type) (S, bool) {
	return m.get(conn)
}

// Remove deletes the mapping of connection type conn, if any.
func (m *serviceMapper[S]) Remove(conn reflect.Type) error {
	return m.remove(conn)
}

// DbSettingMapper maps connection types to DbSetting.
type DbSettingMapper struct {
	serviceMapper[DbSetting]
}

// NewDbSettingMapper creates an empty DbSettingMapper.
func NewDbSettingMapper(opts ...Option) *DbSettingMapper {
	return &DbSettingMapper{newServiceMapper[DbSetting]("db setting", "DbSetting", opts)}
}

// DbHelperMapper maps connection types to DbHelper.
type DbHelperMapper struct {
	serviceMapper[DbHelper]
}

// NewDbHelperMapper creates an empty DbHelperMapper.
func NewDbHelperMapper(opts ...Option) *DbHelperMapper {
	return &DbHelperMapper{newServiceMapper[DbHelper]("db helper", "DbHelper", opts)}
}

// StatementBuilderMapper maps connection types to StatementBuilder.
type StatementBuilderMapper struct {
	serviceMapper[StatementBuilder]
}

// NewStatementBuilderMapper creates an empty StatementBuilderMapper.
func NewStatementBuilderMapper(opts ...Option) *StatementBuilderMapper {
	return &StatementBuilderMapper{newServiceMapper[StatementBuilder]("statement builder", "StatementBuilder", opts)}
}

// AddDbSetting maps connection type C to setting.
func AddDbSetting[C any](m *DbSettingMapper, setting DbSetting, force bool) error {
	return m.Add(property.TypeOf[C](), setting, force)
}

// GetDbSetting returns the DbSetting mapped to connection type C.
func GetDbSetting[C any](m *DbSettingMapper) (DbSetting, bool) {
	return m.Get(property.TypeOf[C]())
}

// RemoveDbSetting deletes the DbSetting mapping of connection type C.
func RemoveDbSetting[C any](m *DbSettingMapper) error {
	return m.Remove(property.TypeOf[C]())
}

// AddDbHelper maps connection type C to helper.
func AddDbHelper[C any](m *DbHelperMapper, helper DbHelper, force bool) error {
	return m.Add(property.TypeOf[C](), helper, force)
}

// GetDbHelper returns the DbHelper mapped to connection type C.
func GetDbHelper[C any](m *DbHelperMapper) (DbHelper, bool) {
	return m.Get(property.TypeOf[C]())
}

// RemoveDbHelper deletes the DbHelper mapping of connection type C.
func RemoveDbHelper[C any](m *DbHelperMapper) error {
	return m.Remove(property.TypeOf[C]())
}

// AddStatementBuilder maps connection type C to builder.
func AddStatementBuilder[C any](m *StatementBuilderMapper, builder StatementBuilder, force bool) error {
	return m.Add(property.TypeOf[C](), builder, force)
}

// GetStatementBuilder returns the StatementBuilder mapped to connection type C.
func GetStatementBuilder[C any](m *StatementBuilderMapper) (StatementBuilder, bool) {
	return m.Get(property.TypeOf[C]())
}

// RemoveStatementBuilder deletes the StatementBuilder mapping of connection type C.
func RemoveStatementBuilder[C any](m *StatementBuilderMapper) error {
	return m.Remove(property.TypeOf[C]())
}
