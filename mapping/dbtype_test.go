/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"testing"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/property"
)

func TestParseDbType(t *testing.T) {
	for d := DbTypeAnsiString; d <= DbTypeDateTimeOffset; d++ {
		parsed, err := ParseDbType(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	d, err := ParseDbType("datetime2")
	require.NoError(t, err)
	assert.Equal(t, DbTypeDateTime2, d)

	_, err = ParseDbType("Varchar")
	assert.True(t, errors.IsInvalidArgument(err))

	assert.False(t, DbType(99).IsValid())
	assert.Equal(t, "DbType(99)", DbType(99).String())
}

func TestTypeMappers(t *testing.T) {
	m := New()

	require.NoError(t, AddDbType[strfmt.DateTime](m.Type, DbTypeDateTimeOffset, false))
	d, ok := GetDbType[strfmt.DateTime](m.Type)
	require.True(t, ok)
	assert.Equal(t, DbTypeDateTimeOffset, d)

	// Type-level DbTypes are keyed by the exact Go type.
	_, ok = GetDbType[*strfmt.DateTime](m.Type)
	assert.False(t, ok)

	require.NoError(t, AddPropertyDbType[Customer](m.PropertyType, property.Name("CreatedAt"), DbTypeDateTime2, false))
	d, ok, err := GetPropertyDbType[*Customer](m.PropertyType, property.Expr(func(c *Customer) any { return &c.CreatedAt }))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DbTypeDateTime2, d)

	err = AddPropertyDbType[Customer](m.PropertyType, property.Name("Name"), DbType(-3), false)
	assert.True(t, errors.IsInvalidArgument(err))

	require.NoError(t, RemoveDbType[strfmt.DateTime](m.Type))
	require.NoError(t, RemovePropertyDbType[Customer](m.PropertyType, property.Name("createdat")))
	assert.Equal(t, 0, m.Len())
}
