/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package definition

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/suparena/entitymap/errors"
	"github.com/suparena/entitymap/mapping"
	"github.com/suparena/entitymap/property"
	"github.com/suparena/entitymap/registry"
)

// Option configures Apply.
type Option func(*applier)

// WithLogger reports applied and failed directives to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type applier struct {
	catalog *registry.Catalog
	mappers *mapping.Mappers
	logger  *zap.Logger
	errs    []error
	applied int
}

// Apply installs the mappings of f into m, resolving type names through catalog.
// Each directive is one mapper call; failures are joined into the returned error
// and do not stop the remaining directives.
func Apply(f *File, catalog *registry.Catalog, m *mapping.Mappers, opts ...Option) error {
	switch {
	case f == nil:
		return errors.NewNullArgumentError("file")
	case catalog == nil:
		return errors.NewNullArgumentError("catalog")
	case m == nil:
		return errors.NewNullArgumentError("mappers")
	}

	a := &applier{catalog: catalog, mappers: m, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	for _, e := range f.Entities {
		a.entity(e)
	}
	for _, name := range sortedKeys(f.Types) {
		a.typeDbType(name, f.Types[name], f.ForceTypes)
	}

	a.logger.Info("definition applied",
		zap.Int("applied", a.applied),
		zap.Int("failed", len(a.errs)))
	return stderrors.Join(a.errs...)
}

func (a *applier) do(where string, err error) {
	if err != nil {
		err = fmt.Errorf("%s: %w", where, err)
		a.logger.Warn("directive failed", zap.Error(err))
		a.errs = append(a.errs, err)
		return
	}
	a.applied++
}

func (a *applier) entity(e Entity) {
	t, err := a.catalog.Lookup(e.Type)
	if err != nil {
		a.do(e.Type, err)
		return
	}

	if e.Table != "" {
		a.do(e.Type+".table", a.mappers.Table.Add(t, e.Table, e.Force))
	}
	if e.Primary != "" {
		a.do(e.Type+".primary", a.mappers.Primary.Add(t, property.Name(e.Primary), e.Force))
	}
	if e.Identity != "" {
		a.do(e.Type+".identity", a.mappers.Identity.Add(t, property.Name(e.Identity), e.Force))
	}
	for _, prop := range sortedKeys(e.Columns) {
		a.do(e.Type+".columns."+prop,
			a.mappers.Column.Add(t, property.Name(prop), e.Columns[prop], e.Force))
	}
	for _, prop := range sortedKeys(e.DbTypes) {
		a.do(e.Type+".dbtypes."+prop, a.propertyDbType(t, prop, e.DbTypes[prop], e.Force))
	}
	for _, prop := range sortedKeys(e.Attributes) {
		a.do(e.Type+".attributes."+prop, a.attributes(t, prop, e.Attributes[prop], e.Force))
	}
}

func (a *applier) propertyDbType(t reflect.Type, prop, name string, force bool) error {
	dbType, err := mapping.ParseDbType(name)
	if err != nil {
		return err
	}
	return a.mappers.PropertyType.Add(t, property.Name(prop), dbType, force)
}

func (a *applier) attributes(t reflect.Type, prop string, def Attributes, force bool) error {
	attrs, err := def.build()
	if err != nil {
		return err
	}
	return a.mappers.PropertyValueAttribute.Add(t, property.Name(prop), attrs, force)
}

func (a *applier) typeDbType(name, dbTypeName string, force bool) {
	where := "types." + name
	t, err := a.catalog.Lookup(name)
	if err != nil {
		a.do(where, err)
		return
	}
	dbType, err := mapping.ParseDbType(dbTypeName)
	if err != nil {
		a.do(where, err)
		return
	}
	a.do(where, a.mappers.Type.Add(t, dbType, force))
}

func (s Attributes) build() ([]mapping.Attribute, error) {
	var attrs []mapping.Attribute
	if s.Name != "" {
		attrs = append(attrs, mapping.NameAttribute(s.Name))
	}
	if s.DbType != "" {
		d, err := mapping.ParseDbType(s.DbType)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, mapping.DbTypeAttribute(d))
	}
	if s.Size != nil {
		attrs = append(attrs, mapping.SizeAttribute(*s.Size))
	}
	if s.Precision != nil {
		attrs = append(attrs, mapping.PrecisionAttribute(*s.Precision))
	}
	if s.Scale != nil {
		attrs = append(attrs, mapping.ScaleAttribute(*s.Scale))
	}
	if s.Nullable != nil {
		attrs = append(attrs, mapping.IsNullableAttribute(*s.Nullable))
	}
	return attrs, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
