/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides configurable provider services for testing code that
// resolves settings, helpers and statement builders from a mapping.Mappers.
package mock

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
)

// Dialect is the default dialect name of the mock provider.
const Dialect = "mock"

// Conn is the connection type the mock services are registered for.
type Conn struct{}

// Setting is a mock implementation of mapping.DbSetting
type Setting struct {
	dialect   string
	prefix    string
	quoteFunc func(string) string
}

// NewSetting creates a Setting with dialect "mock", prefix "@" and identifiers
// quoted in brackets.
func NewSetting() *Setting {
	return &Setting{dialect: Dialect, prefix: "@"}
}

// WithDialect sets the dialect name
func (s *Setting) WithDialect(dialect string) *Setting {
	s.dialect = dialect
	return s
}

// WithParameterPrefix sets the parameter prefix
func (s *Setting) WithParameterPrefix(prefix string) *Setting {
	s.prefix = prefix
	return s
}

// WithQuoteFunc sets a custom identifier quoting function
func (s *Setting) WithQuoteFunc(f func(string) string) *Setting {
	s.quoteFunc = f
	return s
}

func (s *Setting) Dialect() string         { return s.dialect }
func (s *Setting) ParameterPrefix() string { return s.prefix }

func (s *Setting) QuoteIdentifier(name string) string {
	if s.quoteFunc != nil {
		return s.quoteFunc(name)
	}
	return "[" + name + "]"
}

// Helper is a mock implementation of mapping.DbHelper. By default it returns
// values unchanged and knows no DbTypes.
type Helper struct {
	mu           sync.Mutex
	convertFunc  func(v any, dbType mapping.DbType) (any, error)
	dbTypes      map[reflect.Type]mapping.DbType
	convertError error
	calls        []Conversion
}

// Conversion records one ConvertValue call.
type Conversion struct {
	Value  any
	DbType mapping.DbType
}

// NewHelper creates a new mock Helper
func NewHelper() *Helper {
	return &Helper{dbTypes: make(map[reflect.Type]mapping.DbType)}
}

// WithConvertFunc sets a custom conversion function
func (h *Helper) WithConvertFunc(f func(v any, dbType mapping.DbType) (any, error)) *Helper {
	h.convertFunc = f
	return h
}

// WithDbType makes DbTypeOf report dbType for t
func (h *Helper) WithDbType(t reflect.Type, dbType mapping.DbType) *Helper {
	h.dbTypes[t] = dbType
	return h
}

// WithConvertError makes ConvertValue return err
func (h *Helper) WithConvertError(err error) *Helper {
	h.convertError = err
	return h
}

func (h *Helper) ConvertValue(v any, dbType mapping.DbType) (any, error) {
	h.mu.Lock()
	h.calls = append(h.calls, Conversion{Value: v, DbType: dbType})
	h.mu.Unlock()

	if h.convertError != nil {
		return nil, h.convertError
	}
	if h.convertFunc != nil {
		return h.convertFunc(v, dbType)
	}
	return v, nil
}

func (h *Helper) DbTypeOf(t reflect.Type) (mapping.DbType, bool) {
	d, ok := h.dbTypes[t]
	return d, ok
}

// Conversions returns a copy of the recorded ConvertValue calls
func (h *Helper) Conversions() []Conversion {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Conversion(nil), h.calls...)
}

// Op names a statement kind.
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpDelete Op = "delete"
)

// Request is the statement the mock StatementBuilder builds: a record of the
// call, with the table mapped for the entity type when one exists.
type Request struct {
	Op     Op
	Type   reflect.Type
	Table  string
	Key    any
	Entity any
}

// StatementBuilder is a mock implementation of mapping.StatementBuilder. It
// records every request it builds.
type StatementBuilder struct {
	mu          sync.RWMutex
	mappers     *mapping.Mappers
	requests    []Request
	getError    error
	putError    error
	deleteError error
}

// NewStatementBuilder creates a StatementBuilder. m may be nil, in which case
// requests carry no table name.
func NewStatementBuilder(m *mapping.Mappers) *StatementBuilder {
	return &StatementBuilder{mappers: m}
}

// WithGetError makes CreateGet return err
func (b *StatementBuilder) WithGetError(err error) *StatementBuilder {
	b.getError = err
	return b
}

// WithPutError makes CreatePut return err
func (b *StatementBuilder) WithPutError(err error) *StatementBuilder {
	b.putError = err
	return b
}

// WithDeleteError makes CreateDelete return err
func (b *StatementBuilder) WithDeleteError(err error) *StatementBuilder {
	b.deleteError = err
	return b
}

func (b *StatementBuilder) CreateGet(t reflect.Type, key any) (any, error) {
	if b.getError != nil {
		return nil, b.getError
	}
	return b.record(OpGet, t, key, nil)
}

func (b *StatementBuilder) CreatePut(entity any) (any, error) {
	if b.putError != nil {
		return nil, b.putError
	}
	if entity == nil {
		return nil, errors.NewNullArgumentError("entity")
	}
	return b.record(OpPut, reflect.TypeOf(entity), nil, entity)
}

func (b *StatementBuilder) CreateDelete(t reflect.Type, key any) (any, error) {
	if b.deleteError != nil {
		return nil, b.deleteError
	}
	return b.record(OpDelete, t, key, nil)
}

func (b *StatementBuilder) record(op Op, t reflect.Type, key, entity any) (Request, error) {
	if t == nil {
		return Request{}, errors.NewNullArgumentError("type")
	}
	if op != OpPut && key == nil {
		return Request{}, errors.NewNullArgumentError("key")
	}

	t = property.Indirect(t)
	req := Request{Op: op, Type: t, Key: key, Entity: entity}
	if b.mappers != nil {
		req.Table, _ = b.mappers.Table.Get(t)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	return req, nil
}

// Helper methods for testing

// Requests returns a copy of the recorded requests
func (b *StatementBuilder) Requests() []Request {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Request(nil), b.requests...)
}

// Count returns the number of recorded requests of op
func (b *StatementBuilder) Count(op Op) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, r := range b.requests {
		if r.Op == op {
			n++
		}
	}
	return n
}

// Clear removes all recorded requests
func (b *StatementBuilder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

// Services bundles the mock services installed by Register.
type Services struct {
	Setting          *Setting
	Helper           *Helper
	StatementBuilder *StatementBuilder
}

// Register installs a new mock Setting, Helper and StatementBuilder into m,
// keyed by *Conn.
func Register(m *mapping.Mappers, force bool) (*Services, error) {
	if m == nil {
		return nil, errors.NewNullArgumentError("mappers")
	}
	s := &Services{
		Setting:          NewSetting(),
		Helper:           NewHelper(),
		StatementBuilder: NewStatementBuilder(m),
	}
	err := stderrors.Join(
		mapping.AddDbSetting[*Conn](m.DbSetting, s.Setting, force),
		mapping.AddDbHelper[*Conn](m.DbHelper, s.Helper, force),
		mapping.AddStatementBuilder[*Conn](m.StatementBuilder, s.StatementBuilder, force),
	)
	if err != nil {
		return nil, fmt.Errorf("register mock services: %w", err)
	}
	return s, nil
}
