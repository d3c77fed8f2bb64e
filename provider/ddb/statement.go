/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
	"github.com/suparena/entitymap/registry"
)

var clientType = reflect.TypeOf((*sdk.Client)(nil))

// StatementBuilder builds DynamoDB requests from the mappings of a mapping.Mappers:
// table names, primary keys, column names, DbTypes, and class and property handlers.
// Entities with an index map get their PK, SK and GSI attributes from macro
// templates instead of a primary key property.
type StatementBuilder struct {
	mappers   *mapping.Mappers
	indexMaps *registry.Registry[map[string]string]
	logger    *zap.Logger
}

// Option configures a StatementBuilder.
type Option func(*StatementBuilder)

// WithLogger sets the logger of the builder and its index map registry.
func WithLogger(logger *zap.Logger) Option {
	return func(b *StatementBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewStatementBuilder creates a StatementBuilder reading the mappings of m.
func NewStatementBuilder(m *mapping.Mappers, opts ...Option) *StatementBuilder {
	b := &StatementBuilder{mappers: m, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	b.indexMaps = registry.New[map[string]string]("index map", registry.WithLogger(b.logger))
	return b
}

// AddIndexMap sets the key templates of entity type t, e.g.
//
//	{"PK": "USER#{ID}", "SK": "PROFILE", "GSI1PK": "EMAIL#{Email}"}
//
// Macros name attributes of the stored item, i.e. mapped column names.
func (b *StatementBuilder) AddIndexMap(t reflect.Type, indexMap map[string]string, force bool) error {
	if t == nil {
		return errors.NewNullArgumentError("type")
	}
	if len(indexMap) == 0 {
		return errors.NewNullArgumentError("indexMap")
	}
	cp := make(map[string]string, len(indexMap))
	for k, v := range indexMap {
		cp[k] = v
	}
	return b.indexMaps.Add(registry.KeyForType(property.Indirect(t)), cp, force)
}

// AddIndexMap sets the key templates of T.
func AddIndexMap[T any](b *StatementBuilder, indexMap map[string]string, force bool) error {
	return b.AddIndexMap(property.TypeOf[T](), indexMap, force)
}

// IndexMap returns the key templates of entity type t.
func (b *StatementBuilder) IndexMap(t reflect.Type) (map[string]string, bool) {
	if t == nil {
		return nil, false
	}
	return b.indexMaps.Get(registry.KeyForType(property.Indirect(t)))
}

// CreateGet implements mapping.StatementBuilder.
func (b *StatementBuilder) CreateGet(t reflect.Type, key any) (any, error) {
	return b.GetItem(t, key)
}

// CreatePut implements mapping.StatementBuilder.
func (b *StatementBuilder) CreatePut(entity any) (any, error) {
	return b.PutItem(entity)
}

// CreateDelete implements mapping.StatementBuilder.
func (b *StatementBuilder) CreateDelete(t reflect.Type, key any) (any, error) {
	return b.DeleteItem(t, key)
}

// GetItem builds the GetItem request of the entity of type t identified by key.
// key is the primary key value, an entity of type t, or, for types with an index
// map, a string substituted into every macro.
func (b *StatementBuilder) GetItem(t reflect.Type, key any) (*sdk.GetItemInput, error) {
	t, table, err := b.table(t)
	if err != nil {
		return nil, err
	}
	keyMap, err := b.key(t, key)
	if err != nil {
		return nil, err
	}
	return &sdk.GetItemInput{TableName: table, Key: keyMap}, nil
}

// DeleteItem builds the DeleteItem request of the entity of type t identified by key.
func (b *StatementBuilder) DeleteItem(t reflect.Type, key any) (*sdk.DeleteItemInput, error) {
	t, table, err := b.table(t)
	if err != nil {
		return nil, err
	}
	keyMap, err := b.key(t, key)
	if err != nil {
		return nil, err
	}
	return &sdk.DeleteItemInput{TableName: table, Key: keyMap}, nil
}

// PutItem builds the PutItem request of entity. The class handler of the entity
// type, if any, runs first.
func (b *StatementBuilder) PutItem(entity any) (*sdk.PutItemInput, error) {
	if entity == nil {
		return nil, errors.NewNullArgumentError("entity")
	}
	t, table, err := b.table(reflect.TypeOf(entity))
	if err != nil {
		return nil, err
	}

	if h, ok := b.mappers.ClassHandler.Get(t); ok {
		entity, err = mapping.CallClassSet(h, entity, mapping.ClassHandlerOptions{EntityType: t, Dialect: Dialect})
		if err != nil {
			return nil, fmt.Errorf("class handler of %s: %w", t, err)
		}
	}

	item, err := b.item(t, entity)
	if err != nil {
		return nil, err
	}

	if indexMap, ok := b.IndexMap(t); ok {
		// Incomplete templates are skipped so that sparse GSIs stay sparse.
		expanded, _ := expandMacros(indexMap, item)
		for k, v := range expanded {
			item[k] = &types.AttributeValueMemberS{Value: v}
		}
	}

	b.logger.Debug("put item built", zap.Stringer("type", t), zap.Int("attributes", len(item)))
	return &sdk.PutItemInput{TableName: table, Item: item}, nil
}

// UpdateItem builds a conditional UpdateItem request. Update fields naming a
// property of t are stored under its column name and converted like PutItem does;
// other fields are used as attribute names verbatim. An empty condition is omitted.
func (b *StatementBuilder) UpdateItem(t reflect.Type, key any, updates map[string]any, condition string) (*sdk.UpdateItemInput, error) {
	t, table, err := b.table(t)
	if err != nil {
		return nil, err
	}
	keyMap, err := b.key(t, key)
	if err != nil {
		return nil, err
	}

	values := make(map[string]types.AttributeValue, len(updates))
	for field, v := range updates {
		name := field
		var av types.AttributeValue
		if p, lookupErr := property.Lookup(t, field); lookupErr == nil {
			name = b.attributeName(t, p)
			av, err = b.convert(t, p, v)
		} else {
			av, err = Helper{}.Marshal(v)
		}
		if err != nil {
			return nil, fmt.Errorf("update field %s: %w", field, err)
		}
		values[name] = av
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(values)
	if err != nil {
		return nil, err
	}

	input := &sdk.UpdateItemInput{
		TableName:                 table,
		Key:                       keyMap,
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueAllNew,
	}
	if condition != "" {
		input.ConditionExpression = aws.String(condition)
	}
	return input, nil
}

// UnmarshalItem decodes item into a new entity of type T, reversing column names
// and property handlers, then runs the class handler Get of T, if any.
func UnmarshalItem[T any](b *StatementBuilder, item map[string]types.AttributeValue) (*T, error) {
	t := property.TypeOf[T]()
	props, err := property.Properties(t)
	if err != nil {
		return nil, err
	}

	entity := new(T)
	ev := reflect.ValueOf(entity).Elem()
	for _, p := range props {
		av, ok := item[b.attributeName(t, p)]
		if !ok {
			continue
		}
		field, err := ev.FieldByIndexErr(p.Index)
		if err != nil {
			// Promoted through a nil embedded pointer.
			continue
		}
		if err := b.decode(t, p, av, field); err != nil {
			return nil, fmt.Errorf("property %s: %w", p, err)
		}
	}

	if h, ok := b.mappers.ClassHandler.Get(t); ok {
		out, err := mapping.CallClassGet(h, entity, mapping.ClassHandlerOptions{EntityType: t, Dialect: Dialect})
		if err != nil {
			return nil, fmt.Errorf("class handler of %s: %w", t, err)
		}
		switch v := out.(type) {
		case *T:
			return v, nil
		case T:
			return &v, nil
		}
	}
	return entity, nil
}

func (b *StatementBuilder) decode(t reflect.Type, p *property.Property, av types.AttributeValue, field reflect.Value) error {
	h, ok := b.mappers.PropertyHandler.Find(t, p)
	if !ok {
		return attributevalue.Unmarshal(av, field.Addr().Interface())
	}

	fn := reflect.ValueOf(h).MethodByName("Get")
	stored := reflect.New(fn.Type().In(0))
	if err := attributevalue.Unmarshal(av, stored.Interface()); err != nil {
		return err
	}
	out, err := mapping.CallPropertyGet(h, stored.Elem().Interface(), mapping.PropertyHandlerOptions{Property: p, Dialect: Dialect})
	if err != nil {
		return err
	}
	if out != nil {
		field.Set(reflect.ValueOf(out))
	}
	return nil
}

func (b *StatementBuilder) table(t reflect.Type) (reflect.Type, *string, error) {
	if t == nil {
		return nil, nil, errors.NewNullArgumentError("type")
	}
	if b.mappers == nil {
		return nil, nil, errors.NewNullArgumentError("mappers")
	}
	t = property.Indirect(t)
	name, ok := b.mappers.Table.Get(t)
	if !ok {
		return nil, nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no table mapped for %s", t))
	}
	return t, aws.String(name), nil
}

func (b *StatementBuilder) key(t reflect.Type, key any) (map[string]types.AttributeValue, error) {
	if key == nil {
		return nil, errors.NewNullArgumentError("key")
	}

	if indexMap, ok := b.IndexMap(t); ok {
		if s, ok := key.(string); ok {
			return buildKeyFromExpanded(expandStringKey(indexMap, s))
		}
		item, err := b.keyItem(t, key)
		if err != nil {
			return nil, err
		}
		expanded, incomplete := expandMacros(indexMap, item)
		if slices.Contains(incomplete, "PK") || slices.Contains(incomplete, "SK") {
			return nil, errors.NewInvalidArgumentError("key",
				fmt.Sprintf("key of %s lacks attributes for %v", t, incomplete))
		}
		return buildKeyFromExpanded(expanded)
	}

	p, ok := b.mappers.Primary.Get(t)
	if !ok {
		return nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no primary key or index map for %s", t))
	}
	if property.Indirect(reflect.TypeOf(key)) == t {
		f := p.ValueOf(key)
		if !f.IsValid() {
			return nil, errors.NewNullArgumentError(p.Name)
		}
		key = f.Interface()
	}
	av, err := b.convert(t, p, key)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{b.attributeName(t, p): av}, nil
}

// keyItem returns the attributes a macro key is expanded from: the item of an
// entity of type t, or a map of attribute values.
func (b *StatementBuilder) keyItem(t reflect.Type, key any) (map[string]types.AttributeValue, error) {
	if property.Indirect(reflect.TypeOf(key)) == t {
		return b.item(t, key)
	}
	item, err := attributevalue.MarshalMap(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return item, nil
}

func (b *StatementBuilder) item(t reflect.Type, entity any) (map[string]types.AttributeValue, error) {
	props, err := property.Properties(t)
	if err != nil {
		return nil, err
	}

	item := make(map[string]types.AttributeValue, len(props))
	for _, p := range props {
		v := p.ValueOf(entity)
		if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
			continue
		}
		av, err := b.convert(t, p, v.Interface())
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p, err)
		}
		item[b.attributeName(t, p)] = av
	}
	return item, nil
}

// convert applies the property handler of p or, failing that, its DbType, and
// marshals the result.
func (b *StatementBuilder) convert(t reflect.Type, p *property.Property, v any) (types.AttributeValue, error) {
	var err error
	if h, ok := b.mappers.PropertyHandler.Find(t, p); ok {
		v, err = mapping.CallPropertySet(h, v, mapping.PropertyHandlerOptions{Property: p, Dialect: Dialect})
	} else if d, ok := b.dbType(t, p); ok {
		v, err = b.helper().ConvertValue(v, d)
	}
	if err != nil {
		return nil, err
	}
	return Helper{}.Marshal(v)
}

func (b *StatementBuilder) dbType(t reflect.Type, p *property.Property) (mapping.DbType, bool) {
	if d, ok := b.mappers.PropertyType.GetProperty(t, p); ok {
		return d, true
	}
	return b.mappers.Type.Get(p.Type)
}

func (b *StatementBuilder) helper() mapping.DbHelper {
	if h, ok := b.mappers.DbHelper.Get(clientType); ok {
		return h
	}
	return Helper{}
}

func (b *StatementBuilder) attributeName(t reflect.Type, p *property.Property) string {
	if name, ok := b.mappers.Column.GetProperty(t, p); ok {
		return name
	}
	return p.Name
}
