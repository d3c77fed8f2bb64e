/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package postgres

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

var connType = reflect.TypeOf((*pgx.Conn)(nil))

// Executor runs a statement. *pgx.Conn, pgx.Tx and *pgxpool.Pool implement it.
type Executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Querier runs a statement returning one row.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Statement is a parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
	// Returning lists the properties whose columns the statement returns, in order.
	Returning []*property.Property
}

// Exec runs the statement on e.
func (s *Statement) Exec(ctx context.Context, e Executor) (pgconn.CommandTag, error) {
	return e.Exec(ctx, s.SQL, s.Args...)
}

// QueryRow runs the statement on q.
func (s *Statement) QueryRow(ctx context.Context, q Querier) pgx.Row {
	return q.QueryRow(ctx, s.SQL, s.Args...)
}

// StatementBuilder builds SQL statements from the mappings of a mapping.Mappers:
// table and column names, the primary and identity properties, DbTypes and property
// handlers. Class handlers run before INSERT and after a row is scanned.
type StatementBuilder struct {
	mappers *mapping.Mappers
	setting Setting
	logger  *zap.Logger
}

// Option configures a StatementBuilder.
type Option func(*StatementBuilder)

// WithLogger sets the logger of the builder.
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
	return b
}

// CreateGet implements mapping.StatementBuilder.
func (b *StatementBuilder) CreateGet(t reflect.Type, key any) (any, error) {
	return b.Select(t, key)
}

// CreatePut implements mapping.StatementBuilder. Types with a primary key get an
// upsert; others a plain insert.
func (b *StatementBuilder) CreatePut(entity any) (any, error) {
	if entity != nil {
		if _, ok := b.mappers.Primary.Get(reflect.TypeOf(entity)); ok {
			return b.Upsert(entity)
		}
	}
	return b.Insert(entity)
}

// CreateDelete implements mapping.StatementBuilder.
func (b *StatementBuilder) CreateDelete(t reflect.Type, key any) (any, error) {
	return b.Delete(t, key)
}

// Select builds the SELECT of the row of type t identified by key. key is the
// key value or an entity of type t.
func (b *StatementBuilder) Select(t reflect.Type, key any) (*Statement, error) {
	t, table, err := b.table(t)
	if err != nil {
		return nil, err
	}
	kp, arg, err := b.key(t, key)
	if err != nil {
		return nil, err
	}
	props, err := property.Properties(t)
	if err != nil {
		return nil, err
	}

	stmt := &Statement{
		SQL: fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
			b.columnList(t, props), table, b.column(t, kp), b.setting.Parameter(1)),
		Args:      []any{arg},
		Returning: props,
	}
	return stmt, nil
}

// Insert builds the INSERT of entity. The identity column is left to the database
// and returned.
func (b *StatementBuilder) Insert(entity any) (*Statement, error) {
	return b.insert(entity, false)
}

// Upsert builds an INSERT of entity that updates every non-key column on a
// primary key conflict.
func (b *StatementBuilder) Upsert(entity any) (*Statement, error) {
	return b.insert(entity, true)
}

func (b *StatementBuilder) insert(entity any, upsert bool) (*Statement, error) {
	if entity == nil {
		return nil, errors.NewNullArgumentError("entity")
	}
	t, table, err := b.table(reflect.TypeOf(entity))
	if err != nil {
		return nil, err
	}

	var pk *property.Property
	if upsert {
		var ok bool
		if pk, ok = b.mappers.Primary.Get(t); !ok {
			return nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no primary key mapped for %s", t))
		}
	}

	if h, ok := b.mappers.ClassHandler.Get(t); ok {
		entity, err = mapping.CallClassSet(h, entity, mapping.ClassHandlerOptions{EntityType: t, Dialect: Dialect})
		if err != nil {
			return nil, fmt.Errorf("class handler of %s: %w", t, err)
		}
	}

	props, err := property.Properties(t)
	if err != nil {
		return nil, err
	}
	identity, hasIdentity := b.mappers.Identity.Get(t)

	stmt := &Statement{}
	var columns, params, updates []string
	for _, p := range props {
		if hasIdentity && p == identity {
			continue
		}
		v := p.ValueOf(entity)
		var raw any
		if v.IsValid() {
			raw = v.Interface()
		}
		arg, err := b.convert(t, p, raw)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p, err)
		}
		col := b.column(t, p)
		stmt.Args = append(stmt.Args, arg)
		columns = append(columns, col)
		params = append(params, b.setting.Parameter(len(stmt.Args)))
		if upsert && p != pk {
			updates = append(updates, col+" = EXCLUDED."+col)
		}
	}
	if len(columns) == 0 {
		return nil, errors.NewInvalidArgumentError("entity", fmt.Sprintf("%s has no insertable columns", t))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(params, ", "))
	if upsert {
		fmt.Fprintf(&sb, " ON CONFLICT (%s) ", b.column(t, pk))
		if len(updates) == 0 {
			sb.WriteString("DO NOTHING")
		} else {
			sb.WriteString("DO UPDATE SET " + strings.Join(updates, ", "))
		}
	}
	if hasIdentity {
		sb.WriteString(" RETURNING " + b.column(t, identity))
		stmt.Returning = []*property.Property{identity}
	}
	stmt.SQL = sb.String()

	b.logger.Debug("insert built", zap.Stringer("type", t), zap.Bool("upsert", upsert), zap.Int("columns", len(columns)))
	return stmt, nil
}

// Delete builds the DELETE of the row of type t identified by key.
func (b *StatementBuilder) Delete(t reflect.Type, key any) (*Statement, error) {
	t, table, err := b.table(t)
	if err != nil {
		return nil, err
	}
	kp, arg, err := b.key(t, key)
	if err != nil {
		return nil, err
	}
	return &Statement{
		SQL:  fmt.Sprintf("DELETE FROM %s WHERE %s = %s", table, b.column(t, kp), b.setting.Parameter(1)),
		Args: []any{arg},
	}, nil
}

// ScanRow scans row, produced by a Select of T, into a new entity. Property
// handlers convert the scanned values back and the class handler Get of T, if
// any, runs last.
func ScanRow[T any](b *StatementBuilder, stmt *Statement, row pgx.Row) (*T, error) {
	t := property.TypeOf[T]()
	entity := new(T)
	ev := reflect.ValueOf(entity).Elem()

	type pending struct {
		p       *property.Property
		handler any
		stored  reflect.Value
	}
	var handled []pending

	dest := make([]any, len(stmt.Returning))
	for i, p := range stmt.Returning {
		field, err := ev.FieldByIndexErr(p.Index)
		if err != nil {
			var discard any
			dest[i] = &discard
			continue
		}
		if h, ok := b.mappers.PropertyHandler.Find(t, p); ok {
			in := reflect.ValueOf(h).MethodByName("Get").Type().In(0)
			stored := reflect.New(in)
			dest[i] = stored.Interface()
			handled = append(handled, pending{p: p, handler: h, stored: stored})
			continue
		}
		dest[i] = field.Addr().Interface()
	}

	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", t, err)
	}

	for _, h := range handled {
		out, err := mapping.CallPropertyGet(h.handler, h.stored.Elem().Interface(), mapping.PropertyHandlerOptions{Property: h.p, Dialect: Dialect})
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", h.p, err)
		}
		if out != nil {
			ev.FieldByIndex(h.p.Index).Set(reflect.ValueOf(out))
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

func (b *StatementBuilder) table(t reflect.Type) (reflect.Type, string, error) {
	if t == nil {
		return nil, "", errors.NewNullArgumentError("type")
	}
	if b.mappers == nil {
		return nil, "", errors.NewNullArgumentError("mappers")
	}
	t = property.Indirect(t)
	name, ok := b.mappers.Table.Get(t)
	if !ok {
		return nil, "", errors.NewInvalidArgumentError("type", fmt.Sprintf("no table mapped for %s", t))
	}
	return t, b.setting.QuoteIdentifier(name), nil
}

// key returns the key property of t, the primary key or else the identity, and
// the converted key argument.
func (b *StatementBuilder) key(t reflect.Type, key any) (*property.Property, any, error) {
	if key == nil {
		return nil, nil, errors.NewNullArgumentError("key")
	}
	p, ok := b.mappers.Primary.Get(t)
	if !ok {
		if p, ok = b.mappers.Identity.Get(t); !ok {
			return nil, nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("no primary key or identity mapped for %s", t))
		}
	}
	if property.Indirect(reflect.TypeOf(key)) == t {
		f := p.ValueOf(key)
		if !f.IsValid() {
			return nil, nil, errors.NewNullArgumentError(p.Name)
		}
		key = f.Interface()
	}
	arg, err := b.convert(t, p, key)
	if err != nil {
		return nil, nil, err
	}
	return p, arg, nil
}

// convert applies the property handler of p or, failing that, the DbType of p.
// Values without either are passed to pgx as they are.
func (b *StatementBuilder) convert(t reflect.Type, p *property.Property, v any) (any, error) {
	if h, ok := b.mappers.PropertyHandler.Find(t, p); ok {
		return mapping.CallPropertySet(h, v, mapping.PropertyHandlerOptions{Property: p, Dialect: Dialect})
	}
	helper := b.helper()
	d, ok := b.mappers.PropertyType.GetProperty(t, p)
	if !ok {
		d, ok = b.mappers.Type.Get(p.Type)
	}
	if !ok {
		d, ok = helper.DbTypeOf(p.Type)
	}
	if !ok {
		return v, nil
	}
	return helper.ConvertValue(v, d)
}

func (b *StatementBuilder) helper() mapping.DbHelper {
	if h, ok := b.mappers.DbHelper.Get(connType); ok {
		return h
	}
	return Helper{}
}

func (b *StatementBuilder) column(t reflect.Type, p *property.Property) string {
	name, ok := b.mappers.Column.GetProperty(t, p)
	if !ok {
		name = p.Name
	}
	return b.setting.QuoteIdentifier(name)
}

func (b *StatementBuilder) columnList(t reflect.Type, props []*property.Property) string {
	cols := make([]string, len(props))
	for i, p := range props {
		cols[i] = b.column(t, p)
	}
	return strings.Join(cols, ", ")
}
