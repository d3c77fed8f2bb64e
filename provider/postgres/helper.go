/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

// Helper is the mapping.DbHelper of PostgreSQL. ConvertValue returns pgtype
// values; nil input converts to the invalid (NULL) value of the target type.
type Helper struct{}

var oids = map[mapping.DbType]uint32{
	mapping.DbTypeAnsiString:            pgtype.VarcharOID,
	mapping.DbTypeAnsiStringFixedLength: pgtype.BPCharOID,
	mapping.DbTypeString:                pgtype.TextOID,
	mapping.DbTypeStringFixedLength:     pgtype.BPCharOID,
	mapping.DbTypeXml:                   pgtype.XMLOID,
	mapping.DbTypeBinary:                pgtype.ByteaOID,
	mapping.DbTypeBoolean:               pgtype.BoolOID,
	mapping.DbTypeByte:                  pgtype.Int2OID,
	mapping.DbTypeSByte:                 pgtype.Int2OID,
	mapping.DbTypeInt16:                 pgtype.Int2OID,
	mapping.DbTypeUInt16:                pgtype.Int4OID,
	mapping.DbTypeInt32:                 pgtype.Int4OID,
	mapping.DbTypeUInt32:                pgtype.Int8OID,
	mapping.DbTypeInt64:                 pgtype.Int8OID,
	mapping.DbTypeUInt64:                pgtype.NumericOID,
	mapping.DbTypeSingle:                pgtype.Float4OID,
	mapping.DbTypeDouble:                pgtype.Float8OID,
	mapping.DbTypeDecimal:               pgtype.NumericOID,
	mapping.DbTypeCurrency:              pgtype.NumericOID,
	mapping.DbTypeVarNumeric:            pgtype.NumericOID,
	mapping.DbTypeDate:                  pgtype.DateOID,
	mapping.DbTypeTime:                  pgtype.TimeOID,
	mapping.DbTypeDateTime:              pgtype.TimestamptzOID,
	mapping.DbTypeDateTime2:             pgtype.TimestampOID,
	mapping.DbTypeDateTimeOffset:        pgtype.TimestamptzOID,
	mapping.DbTypeGuid:                  pgtype.UUIDOID,
	mapping.DbTypeObject:                pgtype.JSONOID,
}

var defaultDbTypes = map[reflect.Type]mapping.DbType{
	reflect.TypeOf(""):                mapping.DbTypeString,
	reflect.TypeOf(false):             mapping.DbTypeBoolean,
	reflect.TypeOf(int8(0)):           mapping.DbTypeSByte,
	reflect.TypeOf(int16(0)):          mapping.DbTypeInt16,
	reflect.TypeOf(int32(0)):          mapping.DbTypeInt32,
	reflect.TypeOf(int64(0)):          mapping.DbTypeInt64,
	reflect.TypeOf(0):                 mapping.DbTypeInt64,
	reflect.TypeOf(uint8(0)):          mapping.DbTypeByte,
	reflect.TypeOf(uint16(0)):         mapping.DbTypeUInt16,
	reflect.TypeOf(uint32(0)):         mapping.DbTypeUInt32,
	reflect.TypeOf(uint64(0)):         mapping.DbTypeUInt64,
	reflect.TypeOf(float32(0)):        mapping.DbTypeSingle,
	reflect.TypeOf(float64(0)):        mapping.DbTypeDouble,
	reflect.TypeOf([]byte(nil)):       mapping.DbTypeBinary,
	reflect.TypeOf(time.Time{}):       mapping.DbTypeDateTime,
	reflect.TypeOf(strfmt.DateTime{}): mapping.DbTypeDateTime,
	reflect.TypeOf(strfmt.Date{}):     mapping.DbTypeDate,
	reflect.TypeOf(strfmt.UUID("")):   mapping.DbTypeGuid,
	reflect.TypeOf(uuid.UUID{}):       mapping.DbTypeGuid,
}

// OID returns the PostgreSQL type OID dbType is sent as.
func (Helper) OID(dbType mapping.DbType) (uint32, bool) {
	oid, ok := oids[dbType]
	return oid, ok
}

// DbTypeOf returns the default DbType of Go type t. Pointer types map like their
// element type.
func (Helper) DbTypeOf(t reflect.Type) (mapping.DbType, bool) {
	d, ok := defaultDbTypes[property.Indirect(t)]
	return d, ok
}

// ConvertValue converts v to the pgtype value of dbType.
func (Helper) ConvertValue(v any, dbType mapping.DbType) (any, error) {
	if !dbType.IsValid() {
		return nil, errors.NewInvalidArgumentError("dbType", fmt.Sprintf("unknown DbType %d", int(dbType)))
	}

	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return null(dbType), nil
	}
	v = rv.Interface()

	switch dbType {
	case mapping.DbTypeString, mapping.DbTypeAnsiString, mapping.DbTypeStringFixedLength,
		mapping.DbTypeAnsiStringFixedLength, mapping.DbTypeXml:
		return pgtype.Text{String: toString(v), Valid: true}, nil

	case mapping.DbTypeBoolean:
		b, err := toBool(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Bool{Bool: b, Valid: true}, nil

	case mapping.DbTypeByte, mapping.DbTypeSByte, mapping.DbTypeInt16:
		i, err := toInt64(rv, math.MinInt16, math.MaxInt16)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Int2{Int16: int16(i), Valid: true}, nil

	case mapping.DbTypeInt32, mapping.DbTypeUInt16:
		i, err := toInt64(rv, math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Int4{Int32: int32(i), Valid: true}, nil

	case mapping.DbTypeInt64, mapping.DbTypeUInt32:
		i, err := toInt64(rv, math.MinInt64, math.MaxInt64)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Int8{Int64: i, Valid: true}, nil

	case mapping.DbTypeSingle:
		f, err := toFloat64(rv)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Float4{Float32: float32(f), Valid: true}, nil

	case mapping.DbTypeDouble:
		f, err := toFloat64(rv)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Float8{Float64: f, Valid: true}, nil

	case mapping.DbTypeDecimal, mapping.DbTypeCurrency, mapping.DbTypeVarNumeric, mapping.DbTypeUInt64:
		var n pgtype.Numeric
		if err := n.Scan(numericText(rv)); err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return n, nil

	case mapping.DbTypeDate:
		t, err := toTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		y, mo, d := t.Date()
		return pgtype.Date{Time: time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), Valid: true}, nil

	case mapping.DbTypeTime:
		t, err := toTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return pgtype.Time{Microseconds: t.Sub(midnight).Microseconds(), Valid: true}, nil

	case mapping.DbTypeDateTime, mapping.DbTypeDateTimeOffset:
		t, err := toTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Timestamptz{Time: t, Valid: true}, nil

	case mapping.DbTypeDateTime2:
		t, err := toTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.Timestamp{Time: t, Valid: true}, nil

	case mapping.DbTypeGuid:
		id, err := toUUID(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return pgtype.UUID{Bytes: id, Valid: true}, nil

	case mapping.DbTypeBinary:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			decoded, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return nil, conversionError(v, dbType, err)
			}
			return decoded, nil
		}

	case mapping.DbTypeObject:
		return v, nil
	}

	return nil, conversionError(v, dbType, nil)
}

// null returns the NULL value of dbType.
func null(dbType mapping.DbType) any {
	switch dbType {
	case mapping.DbTypeString, mapping.DbTypeAnsiString, mapping.DbTypeStringFixedLength,
		mapping.DbTypeAnsiStringFixedLength, mapping.DbTypeXml:
		return pgtype.Text{}
	case mapping.DbTypeBoolean:
		return pgtype.Bool{}
	case mapping.DbTypeByte, mapping.DbTypeSByte, mapping.DbTypeInt16:
		return pgtype.Int2{}
	case mapping.DbTypeInt32, mapping.DbTypeUInt16:
		return pgtype.Int4{}
	case mapping.DbTypeInt64, mapping.DbTypeUInt32:
		return pgtype.Int8{}
	case mapping.DbTypeSingle:
		return pgtype.Float4{}
	case mapping.DbTypeDouble:
		return pgtype.Float8{}
	case mapping.DbTypeDecimal, mapping.DbTypeCurrency, mapping.DbTypeVarNumeric, mapping.DbTypeUInt64:
		return pgtype.Numeric{}
	case mapping.DbTypeDate:
		return pgtype.Date{}
	case mapping.DbTypeTime:
		return pgtype.Time{}
	case mapping.DbTypeDateTime, mapping.DbTypeDateTimeOffset:
		return pgtype.Timestamptz{}
	case mapping.DbTypeDateTime2:
		return pgtype.Timestamp{}
	case mapping.DbTypeGuid:
		return pgtype.UUID{}
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case []byte:
		return string(s)
	}
	return fmt.Sprint(v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
		return false, fmt.Errorf("unrecognized boolean %q", b)
	}
	return false, fmt.Errorf("unsupported type %T", v)
}

func toInt64(rv reflect.Value, lo, hi int64) (int64, error) {
	var i int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows", u)
		}
		i = int64(u)
	case reflect.String:
		parsed, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return 0, err
		}
		i = parsed
	default:
		return 0, fmt.Errorf("unsupported type %s", rv.Type())
	}
	if i < lo || i > hi {
		return 0, fmt.Errorf("%d is out of range [%d, %d]", i, lo, hi)
	}
	return i, nil
}

func toFloat64(rv reflect.Value) (float64, error) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		return strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
	}
	return 0, fmt.Errorf("unsupported type %s", rv.Type())
}

// numericText renders rv as the decimal text pgtype.Numeric scans.
func numericText(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return strings.TrimSpace(rv.String())
	}
	return fmt.Sprint(rv.Interface())
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case strfmt.DateTime:
		return time.Time(t), nil
	case strfmt.Date:
		return time.Time(t), nil
	case string:
		dt, err := strfmt.ParseDateTime(t)
		if err != nil {
			return time.Time{}, err
		}
		return time.Time(dt), nil
	}
	return time.Time{}, fmt.Errorf("unsupported type %T", v)
}

func toUUID(v any) (uuid.UUID, error) {
	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case [16]byte:
		return uuid.UUID(id), nil
	case []byte:
		return uuid.FromBytes(id)
	case strfmt.UUID:
		return uuid.Parse(string(id))
	case string:
		return uuid.Parse(id)
	}
	return uuid.Nil, fmt.Errorf("unsupported type %T", v)
}

func conversionError(v any, dbType mapping.DbType, cause error) error {
	msg := fmt.Sprintf("cannot convert %T to %s", v, dbType)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return errors.NewInvalidArgumentError("value", msg)
}
