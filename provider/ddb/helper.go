/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

// Helper is the mapping.DbHelper of DynamoDB. DynamoDB has no temporal or UUID
// types, so those are stored as strings in the strfmt formats.
type Helper struct{}

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

// DbTypeOf returns the default DbType of Go type t. Pointer types map like their
// element type.
func (Helper) DbTypeOf(t reflect.Type) (mapping.DbType, bool) {
	d, ok := defaultDbTypes[property.Indirect(t)]
	return d, ok
}

// ConvertValue converts v to the value stored for dbType. Nil and nil pointers
// convert to nil.
func (h Helper) ConvertValue(v any, dbType mapping.DbType) (any, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, nil
	}
	v = rv.Interface()

	switch dbType {
	case mapping.DbTypeDateTime, mapping.DbTypeDateTime2, mapping.DbTypeDateTimeOffset:
		dt, err := toDateTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return dt.String(), nil

	case mapping.DbTypeDate:
		dt, err := toDateTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return strfmt.Date(time.Time(dt)).String(), nil

	case mapping.DbTypeTime:
		dt, err := toDateTime(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return time.Time(dt).Format("15:04:05.000"), nil

	case mapping.DbTypeGuid:
		id, err := toUUID(v)
		if err != nil {
			return nil, conversionError(v, dbType, err)
		}
		return id.String(), nil

	case mapping.DbTypeString, mapping.DbTypeAnsiString, mapping.DbTypeStringFixedLength,
		mapping.DbTypeAnsiStringFixedLength, mapping.DbTypeXml:
		switch s := v.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		case []byte:
			return string(s), nil
		}
		return fmt.Sprint(v), nil

	case mapping.DbTypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, conversionError(v, dbType, err)
			}
			return parsed, nil
		}

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

	case mapping.DbTypeByte, mapping.DbTypeSByte, mapping.DbTypeInt16, mapping.DbTypeInt32,
		mapping.DbTypeInt64, mapping.DbTypeUInt16, mapping.DbTypeUInt32, mapping.DbTypeUInt64,
		mapping.DbTypeDecimal, mapping.DbTypeDouble, mapping.DbTypeSingle,
		mapping.DbTypeCurrency, mapping.DbTypeVarNumeric:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return v, nil
		case reflect.String:
			// Stored as a DynamoDB number, which is a decimal string on the wire.
			if _, err := strconv.ParseFloat(rv.String(), 64); err != nil {
				return nil, conversionError(v, dbType, err)
			}
			return attributevalue.Number(rv.String()), nil
		}

	case mapping.DbTypeObject:
		return v, nil
	}

	return nil, conversionError(v, dbType, nil)
}

// Marshal converts v to a DynamoDB attribute value.
func (Helper) Marshal(v any) (types.AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return av, nil
}

func toDateTime(v any) (strfmt.DateTime, error) {
	switch t := v.(type) {
	case strfmt.DateTime:
		return t, nil
	case strfmt.Date:
		return strfmt.DateTime(time.Time(t)), nil
	case time.Time:
		return strfmt.DateTime(t), nil
	case string:
		return strfmt.ParseDateTime(t)
	}
	return strfmt.DateTime{}, fmt.Errorf("unsupported type %T", v)
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
