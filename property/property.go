/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package property

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/suparena/entitymap/errors"
)

// Property is the canonical handle of one mapped field of a struct type.
// The cache hands out exactly one *Property per (owner type, field), so handles
// can be compared with ==.
type Property struct {
	// Name is the Go field name.
	Name string
	// Type is the Go type of the field.
	Type reflect.Type
	// Owner is the struct type the handle was resolved for.
	Owner reflect.Type
	// DeclaringType is the struct type that literally declares the field. It differs
	// from Owner for fields promoted from embedded structs.
	DeclaringType reflect.Type
	// Index is the index sequence for reflect.Value.FieldByIndex.
	Index []int
	// Ordinal is the position of the property in Owner's property list.
	Ordinal int
	// Tag is the struct tag of the field.
	Tag reflect.StructTag

	// direct is false when the field is reached through an embedded pointer.
	direct bool
}

// String returns "<owner>.<name>".
func (p *Property) String() string {
	return p.Owner.String() + "." + p.Name
}

// IsPromoted reports whether the field is declared by an embedded struct.
func (p *Property) IsPromoted() bool {
	return len(p.Index) > 1
}

// ValueOf returns the field value of entity, which must be a struct of the owner
// type or a pointer to one. It returns the zero Value when an embedded pointer on
// the path is nil.
func (p *Property) ValueOf(entity any) reflect.Value {
	v := reflect.Indirect(reflect.ValueOf(entity))
	f, err := v.FieldByIndexErr(p.Index)
	if err != nil {
		return reflect.Value{}
	}
	return f
}

// typeProperties is the cached property list of one struct type.
type typeProperties struct {
	list   []*Property
	byName map[string]*Property
	byFold map[string]*Property
}

var cache sync.Map // map[reflect.Type]*typeProperties

// Indirect strips pointer indirections from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Properties returns the mapped properties of struct type t in declaration order.
// Fields promoted from embedded structs are included; the embedded struct fields
// themselves and unexported fields are not.
func Properties(t reflect.Type) ([]*Property, error) {
	tp, err := load(t)
	if err != nil {
		return nil, err
	}
	return tp.list, nil
}

// Lookup returns the property of t named name. Matching is case-insensitive; an
// exact match wins over a case-folded one.
func Lookup(t reflect.Type, name string) (*Property, error) {
	tp, err := load(t)
	if err != nil {
		return nil, err
	}
	if p, ok := tp.byName[name]; ok {
		return p, nil
	}
	if p, ok := tp.byFold[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, errors.NewPropertyNotFoundError(Indirect(t).String(), name)
}

func load(t reflect.Type) (*typeProperties, error) {
	if t == nil {
		return nil, errors.NewNullArgumentError("type")
	}
	t = Indirect(t)
	if t.Kind() != reflect.Struct {
		return nil, errors.NewInvalidArgumentError("type", fmt.Sprintf("%s is not a struct type", t))
	}

	if tp, ok := cache.Load(t); ok {
		return tp.(*typeProperties), nil
	}

	tp, _ := cache.LoadOrStore(t, build(t))
	return tp.(*typeProperties), nil
}

func build(t reflect.Type) *typeProperties {
	tp := &typeProperties{
		byName: make(map[string]*Property),
		byFold: make(map[string]*Property),
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && Indirect(f.Type).Kind() == reflect.Struct {
			continue
		}

		declaring, direct := walk(t, f.Index)
		p := &Property{
			Name:          f.Name,
			Type:          f.Type,
			Owner:         t,
			DeclaringType: declaring,
			Index:         f.Index,
			Ordinal:       len(tp.list),
			Tag:           f.Tag,
			direct:        direct,
		}
		tp.list = append(tp.list, p)
		tp.byName[p.Name] = p

		folded := strings.ToLower(p.Name)
		if _, taken := tp.byFold[folded]; !taken {
			tp.byFold[folded] = p
		}
	}

	return tp
}

// walk follows index from t and returns the declaring struct type of the field and
// whether the path avoids embedded pointers.
func walk(t reflect.Type, index []int) (reflect.Type, bool) {
	direct := true
	cur := t
	for _, idx := range index[:len(index)-1] {
		f := cur.Field(idx)
		if f.Type.Kind() == reflect.Pointer {
			direct = false
		}
		cur = Indirect(f.Type)
	}
	return cur, direct
}
