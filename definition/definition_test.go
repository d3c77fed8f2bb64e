/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package definition

import (
	"path/filepath"
	"testing"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/internal/testmodels"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
	"github.com/suparena/entitymap/registry"
)

const customerYAML = `
version: "1"
entities:
  - type: Customer
    table: "[sales].[Customer]"
    primary: ID
    identity: id
    columns:
      Email: email_address
      Name: customer_name
    dbtypes:
      Name: AnsiString
    attributes:
      Email:
        size: 256
        nullable: false
  - type: Order
    table: Orders
    primary: OrderID
    dbtypes:
      PlacedOn: date
types:
  DateTime: DateTimeOffset
`

func newCatalog(t *testing.T) *registry.Catalog {
	t.Helper()
	c := registry.NewCatalog()
	require.NoError(t, registry.RegisterType[testmodels.Customer](c, "Customer"))
	require.NoError(t, registry.RegisterType[testmodels.Order](c, "Order"))
	require.NoError(t, registry.RegisterType[strfmt.DateTime](c, "DateTime"))
	return c
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(customerYAML))
	require.NoError(t, err)

	require.Len(t, f.Entities, 2)
	customer := f.Entities[0]
	assert.Equal(t, "Customer", customer.Type)
	assert.Equal(t, "[sales].[Customer]", customer.Table)
	assert.Equal(t, map[string]string{"Email": "email_address", "Name": "customer_name"}, customer.Columns)
	require.NotNil(t, customer.Attributes["Email"].Size)
	assert.Equal(t, 256, *customer.Attributes["Email"].Size)

	assert.Equal(t, Stats{Entities: 2, Tables: 2, Keys: 3, Columns: 2, DbTypes: 2, Attributes: 1, Types: 1}, f.Stats())
	require.NoError(t, Validate(f))
}

func TestParseDefaultsAndErrors(t *testing.T) {
	f, err := Parse([]byte("entities: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)

	f, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Entities)

	_, err = Parse([]byte("entities:\n  - type: Customer\n    tabel: Customers\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tabel")

	_, err = Parse([]byte("entities: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	f := &File{
		Version: "2",
		Entities: []Entity{
			{Type: "Customer", Table: "  ", Columns: map[string]string{"Email": ""}},
			{Type: "Customer", DbTypes: map[string]string{"Name": "Varchar"}},
			{Type: "", Attributes: map[string]Attributes{"Email": {}}},
		},
		Types: map[string]string{"DateTime": "Timestamp"},
	}

	err := Validate(f)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	for _, want := range []string{
		`unsupported version "2"`,
		"Customer.table",
		`property "Email": names must not be blank`,
		"duplicate entity definition",
		`unknown DbType "Varchar"`,
		"type must not be blank",
		`property "Email": no attributes`,
		`unknown DbType "Timestamp"`,
	} {
		assert.Contains(t, err.Error(), want)
	}

	assert.True(t, errors.IsNullArgument(Validate(nil)))
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(customerYAML))
	require.NoError(t, err)

	m := mapping.New()
	require.NoError(t, Apply(f, newCatalog(t), m))

	table, ok := mapping.GetTable[testmodels.Customer](m.Table)
	require.True(t, ok)
	assert.Equal(t, "[sales].[Customer]", table)

	column, ok, err := mapping.GetColumn[testmodels.Customer](m.Column,
		property.Expr(func(c *testmodels.Customer) any { return &c.Email }))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "email_address", column)

	identity, ok := mapping.GetIdentity[testmodels.Customer](m.Identity)
	require.True(t, ok)
	assert.Equal(t, "ID", identity.Name)

	dbType, ok, err := mapping.GetPropertyDbType[testmodels.Order](m.PropertyType, property.Name("PlacedOn"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mapping.DbTypeDate, dbType)

	attrs, ok, err := mapping.GetAttributes[testmodels.Customer](m.PropertyValueAttribute, property.Name("Email"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []mapping.Attribute{mapping.SizeAttribute(256), mapping.IsNullableAttribute(false)}, attrs)

	dt, ok := mapping.GetDbType[strfmt.DateTime](m.Type)
	require.True(t, ok)
	assert.Equal(t, mapping.DbTypeDateTimeOffset, dt)

	assert.Equal(t, f.Stats().Tables+f.Stats().Keys+f.Stats().Columns+f.Stats().DbTypes+
		f.Stats().Attributes+f.Stats().Types, m.Len())
}

func TestApplyJoinsDirectiveErrors(t *testing.T) {
	f := &File{
		Version: CurrentVersion,
		Entities: []Entity{
			{Type: "Customer", Table: "Customers", Columns: map[string]string{"Missing": "missing", "Name": "name"}},
			{Type: "Unknown", Table: "Unknowns"},
		},
	}

	core, logs := observer.New(zapcore.WarnLevel)
	m := mapping.New()
	err := Apply(f, newCatalog(t), m, WithLogger(zap.New(core)))
	require.Error(t, err)
	assert.True(t, errors.IsPropertyNotFound(err))
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "Customer.columns.Missing")
	assert.Equal(t, 2, logs.FilterMessage("directive failed").Len())

	// The good directives of the same entity were applied.
	_, ok := mapping.GetTable[testmodels.Customer](m.Table)
	assert.True(t, ok)
	column, ok, _ := mapping.GetColumn[testmodels.Customer](m.Column, property.Name("Name"))
	require.True(t, ok)
	assert.Equal(t, "name", column)

	// Applying again without force conflicts; with force it replaces.
	err = Apply(&File{Entities: []Entity{{Type: "Customer", Table: "Clients"}}}, newCatalog(t), m)
	assert.True(t, errors.IsMappingAlreadyExists(err))
	require.NoError(t, Apply(&File{Entities: []Entity{{Type: "Customer", Table: "Clients", Force: true}}}, newCatalog(t), m))
	table, _ := mapping.GetTable[testmodels.Customer](m.Table)
	assert.Equal(t, "Clients", table)

	assert.True(t, errors.IsNullArgument(Apply(f, nil, m)))
	assert.True(t, errors.IsNullArgument(Apply(f, newCatalog(t), nil)))
}

func TestApplyForceTypes(t *testing.T) {
	m := mapping.New()
	require.NoError(t, Apply(&File{Types: map[string]string{"DateTime": "DateTime"}}, newCatalog(t), m))

	err := Apply(&File{Types: map[string]string{"DateTime": "DateTimeOffset"}}, newCatalog(t), m)
	assert.True(t, errors.IsMappingAlreadyExists(err))
	dt, _ := mapping.GetDbType[strfmt.DateTime](m.Type)
	assert.Equal(t, mapping.DbTypeDateTime, dt)

	f, err := Parse([]byte("version: \"1\"\nforcetypes: true\ntypes:\n  DateTime: DateTimeOffset\n"))
	require.NoError(t, err)
	require.True(t, f.ForceTypes)
	require.NoError(t, Apply(f, newCatalog(t), m))
	dt, _ = mapping.GetDbType[strfmt.DateTime](m.Type)
	assert.Equal(t, mapping.DbTypeDateTimeOffset, dt)
}

func TestWriteFileRoundTrip(t *testing.T) {
	f, err := Parse([]byte(customerYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
