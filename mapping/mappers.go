/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"sync"
)

// Mappers holds one mapper per mapping domain. Sets built with New are isolated
// from each other and from Default.
type Mappers struct {
	Table                  *TableMapper
	Column                 *ColumnMapper
	Identity               *IdentityMapper
	Primary                *PrimaryMapper
	Type                   *TypeMapper
	PropertyType           *PropertyTypeMapper
	ClassHandler           *ClassHandlerMapper
	PropertyHandler        *PropertyHandlerMapper
	PropertyValueAttribute *PropertyValueAttributeMapper
	DbSetting              *DbSettingMapper
	DbHelper               *DbHelperMapper
	StatementBuilder       *StatementBuilderMapper
}

// New creates an empty, isolated set of mappers.
func New(opts ...Option) *Mappers {
	return &Mappers{
		Table:                  NewTableMapper(opts...),
		Column:                 NewColumnMapper(opts...),
		Identity:               NewIdentityMapper(opts...),
		Primary:                NewPrimaryMapper(opts...),
		Type:                   NewTypeMapper(opts...),
		PropertyType:           NewPropertyTypeMapper(opts...),
		ClassHandler:           NewClassHandlerMapper(opts...),
		PropertyHandler:        NewPropertyHandlerMapper(opts...),
		PropertyValueAttribute: NewPropertyValueAttributeMapper(opts...),
		DbSetting:              NewDbSettingMapper(opts...),
		DbHelper:               NewDbHelperMapper(opts...),
		StatementBuilder:       NewStatementBuilderMapper(opts...),
	}
}

var (
	defaultOnce    sync.Once
	defaultMappers *Mappers
)

// Default returns the process-wide set of mappers.
func Default() *Mappers {
	defaultOnce.Do(func() {
		defaultMappers = New()
	})
	return defaultMappers
}

// Clear removes every mapping of every domain.
func (m *Mappers) Clear() {
	m.Table.Clear()
	m.Column.Clear()
	m.Identity.Clear()
	m.Primary.Clear()
	m.Type.Clear()
	m.PropertyType.Clear()
	m.ClassHandler.Clear()
	m.PropertyHandler.Clear()
	m.PropertyValueAttribute.Clear()
	m.DbSetting.Clear()
	m.DbHelper.Clear()
	m.StatementBuilder.Clear()
}

// Len returns the total number of mappings across all domains.
func (m *Mappers) Len() int {
	return m.Table.Len() + m.Column.Len() + m.Identity.Len() + m.Primary.Len() +
		m.Type.Len() + m.PropertyType.Len() + m.ClassHandler.Len() + m.PropertyHandler.Len() +
		m.PropertyValueAttribute.Len() + m.DbSetting.Len() + m.DbHelper.Len() + m.StatementBuilder.Len()
}
