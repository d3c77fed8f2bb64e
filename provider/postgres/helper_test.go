/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
)

func TestSetting(t *testing.T) {
	s := Setting{}
	assert.Equal(t, "postgres", s.Dialect())
	assert.Equal(t, "$", s.ParameterPrefix())
	assert.Equal(t, "$3", s.Parameter(3))
	assert.Equal(t, `"customers"`, s.QuoteIdentifier("customers"))
	assert.Equal(t, `"sales"."customers"`, s.QuoteIdentifier("sales.customers"))
	assert.Equal(t, `"odd""name"`, s.QuoteIdentifier(`odd"name`))
}

func TestHelperConvertValue(t *testing.T) {
	h := Helper{}
	ts := time.Date(2025, 3, 14, 15, 9, 26, 535_000_000, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	name := "Ada"

	tests := []struct {
		name   string
		value  any
		dbType mapping.DbType
		want   any
	}{
		{"Text", "Ada", mapping.DbTypeString, pgtype.Text{String: "Ada", Valid: true}},
		{"TextPointer", &name, mapping.DbTypeAnsiString, pgtype.Text{String: "Ada", Valid: true}},
		{"TextNil", (*string)(nil), mapping.DbTypeString, pgtype.Text{}},
		{"Stringer", id, mapping.DbTypeString, pgtype.Text{String: id.String(), Valid: true}},
		{"Bool", true, mapping.DbTypeBoolean, pgtype.Bool{Bool: true, Valid: true}},
		{"BoolYes", " Yes", mapping.DbTypeBoolean, pgtype.Bool{Bool: true, Valid: true}},
		{"Int2", uint8(200), mapping.DbTypeByte, pgtype.Int2{Int16: 200, Valid: true}},
		{"Int4", 42, mapping.DbTypeInt32, pgtype.Int4{Int32: 42, Valid: true}},
		{"Int8String", "9000000000", mapping.DbTypeInt64, pgtype.Int8{Int64: 9_000_000_000, Valid: true}},
		{"Int8Nil", nil, mapping.DbTypeInt64, pgtype.Int8{}},
		{"Float4", 1.5, mapping.DbTypeSingle, pgtype.Float4{Float32: 1.5, Valid: true}},
		{"Float8", int32(3), mapping.DbTypeDouble, pgtype.Float8{Float64: 3, Valid: true}},
		{"Timestamptz", ts, mapping.DbTypeDateTime, pgtype.Timestamptz{Time: ts, Valid: true}},
		{"StrfmtTimestamptz", strfmt.DateTime(ts), mapping.DbTypeDateTimeOffset, pgtype.Timestamptz{Time: ts, Valid: true}},
		{"Timestamp", ts, mapping.DbTypeDateTime2, pgtype.Timestamp{Time: ts, Valid: true}},
		{"Date", strfmt.DateTime(ts), mapping.DbTypeDate, pgtype.Date{Time: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), Valid: true}},
		{"Time", ts, mapping.DbTypeTime, pgtype.Time{Microseconds: 54_566_535_000, Valid: true}},
		{"UUID", strfmt.UUID(id.String()), mapping.DbTypeGuid, pgtype.UUID{Bytes: id, Valid: true}},
		{"UUIDString", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", mapping.DbTypeGuid, pgtype.UUID{Bytes: id, Valid: true}},
		{"Bytea", "aGk=", mapping.DbTypeBinary, []byte("hi")},
		{"Object", map[string]int{"a": 1}, mapping.DbTypeObject, map[string]int{"a": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ConvertValue(tt.value, tt.dbType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelperConvertNumeric(t *testing.T) {
	h := Helper{}

	for _, v := range []any{"12.50", 12.5, float32(12.5)} {
		got, err := h.ConvertValue(v, mapping.DbTypeDecimal)
		require.NoError(t, err)
		n, ok := got.(pgtype.Numeric)
		require.True(t, ok)
		f, err := n.Float64Value()
		require.NoError(t, err)
		assert.Equal(t, 12.5, f.Float64)
	}

	got, err := h.ConvertValue(uint64(18_446_744_073_709_551_615), mapping.DbTypeUInt64)
	require.NoError(t, err)
	assert.True(t, got.(pgtype.Numeric).Valid)
}

func TestHelperConvertValueErrors(t *testing.T) {
	h := Helper{}

	tests := []struct {
		name   string
		value  any
		dbType mapping.DbType
	}{
		{"Int2Overflow", 40000, mapping.DbTypeInt16},
		{"Int8Overflow", uint64(1) << 63, mapping.DbTypeInt64},
		{"IntFromFloat", 1.5, mapping.DbTypeInt32},
		{"BadBool", "maybe", mapping.DbTypeBoolean},
		{"BadUUID", "not-a-uuid", mapping.DbTypeGuid},
		{"BadTime", 42, mapping.DbTypeDateTime},
		{"BadNumeric", "twelve", mapping.DbTypeDecimal},
		{"BadBinary", 42, mapping.DbTypeBinary},
		{"UnknownDbType", "x", mapping.DbType(99)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.ConvertValue(tt.value, tt.dbType)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestHelperOID(t *testing.T) {
	h := Helper{}

	tests := []struct {
		dbType mapping.DbType
		want   uint32
	}{
		{mapping.DbTypeString, pgtype.TextOID},
		{mapping.DbTypeAnsiString, pgtype.VarcharOID},
		{mapping.DbTypeBoolean, pgtype.BoolOID},
		{mapping.DbTypeInt64, pgtype.Int8OID},
		{mapping.DbTypeDouble, pgtype.Float8OID},
		{mapping.DbTypeDateTime, pgtype.TimestamptzOID},
		{mapping.DbTypeGuid, pgtype.UUIDOID},
		{mapping.DbTypeDate, pgtype.DateOID},
		{mapping.DbTypeDecimal, pgtype.NumericOID},
	}
	for _, tt := range tests {
		t.Run(tt.dbType.String(), func(t *testing.T) {
			oid, ok := h.OID(tt.dbType)
			require.True(t, ok)
			assert.Equal(t, tt.want, oid)
		})
	}

	_, ok := h.OID(mapping.DbType(99))
	assert.False(t, ok)
}

func TestHelperDbTypeOf(t *testing.T) {
	h := Helper{}

	d, ok := h.DbTypeOf(reflect.TypeOf((*strfmt.DateTime)(nil)))
	require.True(t, ok)
	assert.Equal(t, mapping.DbTypeDateTime, d)

	d, ok = h.DbTypeOf(reflect.TypeOf(strfmt.UUID("")))
	require.True(t, ok)
	assert.Equal(t, mapping.DbTypeGuid, d)

	_, ok = h.DbTypeOf(reflect.TypeOf(struct{}{}))
	assert.False(t, ok)
}
